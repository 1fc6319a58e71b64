package locator

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sheetsite/core/internal/modules/content/snapshot"
	"github.com/sheetsite/core/internal/modules/sheets/source"
	"github.com/sheetsite/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/refresh", h.refresh)
	rg.GET("/source", h.source)
	rg.DELETE("/source", h.reset)
}

type refreshDTO struct {
	SourceURL string `json:"sourceUrl"`
}

type refreshResponse struct {
	Source  string   `json:"source"`
	Version string   `json:"version"`
	Errors  []string `json:"errors"`
}

type sourceResponse struct {
	URL     string `json:"url"`
	Default bool   `json:"default"`
}

func (h *Handler) refresh(c *gin.Context) {
	var dto refreshDTO
	if err := c.ShouldBindJSON(&dto); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, err.Error())
		return
	}
	snap, err := h.svc.Switch(c.Request.Context(), dto.SourceURL)
	h.reply(c, snap, err)
}

func (h *Handler) reset(c *gin.Context) {
	snap, err := h.svc.Reset(c.Request.Context())
	h.reply(c, snap, err)
}

// reply reports the rebuilt snapshot. Per-sheet fetch failures are part of
// the snapshot, not a failed request.
func (h *Handler) reply(c *gin.Context, snap *snapshot.Snapshot, err error) {
	if errors.Is(err, source.ErrInvalidLocator) {
		response.BadRequest(c, err.Error())
		return
	}
	if snap == nil {
		response.InternalError(c, err)
		return
	}
	errs := snap.Errors
	if errs == nil {
		errs = []string{}
	}
	response.OK(c, refreshResponse{Source: snap.Source, Version: snap.Version, Errors: errs})
}

func (h *Handler) source(c *gin.Context) {
	response.OK(c, sourceResponse{URL: h.svc.Current(), Default: h.svc.IsDefault()})
}
