package page

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sheetsite/core/internal/models"
	"github.com/sheetsite/core/internal/modules/content/snapshot"
	"github.com/sheetsite/core/internal/pkg/response"
)

// Snapshots hands out the current snapshot.
type Snapshots interface {
	Current() *snapshot.Snapshot
}

type Handler struct {
	snaps Snapshots
}

func NewHandler(snaps Snapshots) *Handler { return &Handler{snaps: snaps} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/menu", h.menu)
	rg.GET("/pages", h.pages)
	rg.GET("/pages/slug/:slug", h.pageBySlug)
	rg.GET("/pages/:id/content", h.pageContent)
	rg.GET("/folders/:slug", h.folder)
	rg.GET("/view/:folder/:page", h.view)
	rg.GET("/settings", h.settings)
	rg.GET("/settings/:key", h.setting)
	rg.GET("/templates/:id", h.template)
}

type folderResponse struct {
	Folder models.MenuItem `json:"folder"`
	Pages  []models.Page   `json:"pages"`
}

type contentResponse struct {
	PageID      string  `json:"pageId"`
	Blocks      []Block `json:"blocks"`
	Empty       bool    `json:"empty"`
	Placeholder bool    `json:"placeholder"`
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *Handler) menu(c *gin.Context) {
	response.OK(c, h.snaps.Current().GetMenu())
}

func (h *Handler) pages(c *gin.Context) {
	response.OK(c, h.snaps.Current().GetPages())
}

// loaded answers the loading panel until the first refresh has completed.
func loaded(c *gin.Context, snap *snapshot.Snapshot) bool {
	if snap.Loaded() {
		return true
	}
	response.Loading(c)
	return false
}

func (h *Handler) pageBySlug(c *gin.Context) {
	snap := h.snaps.Current()
	if !loaded(c, snap) {
		return
	}
	p, ok := snap.GetPageBySlug(c.Param("slug"))
	if !ok {
		response.NotFoundMsg(c, ErrPageNotFound.Error())
		return
	}
	response.OK(c, p)
}

func (h *Handler) pageContent(c *gin.Context) {
	id := c.Param("id")
	bs, placeholder := h.snaps.Current().GetContentForPage(id)
	response.OK(c, contentResponse{
		PageID:      id,
		Blocks:      RenderAll(bs),
		Empty:       len(bs) == 0,
		Placeholder: placeholder,
	})
}

func (h *Handler) folder(c *gin.Context) {
	snap := h.snaps.Current()
	if !loaded(c, snap) {
		return
	}
	f, ok := snap.GetFolderBySlug(c.Param("slug"))
	if !ok {
		response.NotFoundMsg(c, ErrFolderNotFound.Error())
		return
	}
	response.OK(c, folderResponse{Folder: f, Pages: snap.GetFolderPages(f.ID)})
}

func (h *Handler) view(c *gin.Context) {
	snap := h.snaps.Current()
	if !loaded(c, snap) {
		return
	}
	if snap.HasErrors() {
		response.Unavailable(c, "data load error", snap.Errors)
		return
	}
	v, err := Build(snap, c.Param("folder"), c.Param("page"))
	if errors.Is(err, ErrFolderNotFound) || errors.Is(err, ErrPageNotFound) {
		response.NotFoundMsg(c, err.Error())
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, v)
}

func (h *Handler) settings(c *gin.Context) {
	response.OK(c, h.snaps.Current().Settings)
}

func (h *Handler) setting(c *gin.Context) {
	key := c.Param("key")
	v, ok := h.snaps.Current().GetSetting(key)
	if !ok {
		response.NotFoundMsg(c, "setting not found")
		return
	}
	response.OK(c, settingResponse{Key: key, Value: v})
}

func (h *Handler) template(c *gin.Context) {
	t, ok := h.snaps.Current().GetTemplateByID(c.Param("id"))
	if !ok {
		response.NotFoundMsg(c, "template not found")
		return
	}
	response.OK(c, t)
}
