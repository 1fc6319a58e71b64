// Package proxy exposes single sheets over HTTP as decoded gviz JSON, so
// browsers can read a spreadsheet without tripping over CORS.
package proxy

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"github.com/sheetsite/core/internal/modules/sheets/source"
	"go.uber.org/zap"
)

// Upstream resolves locators and reads sheets. *fetcher.Fetcher satisfies it.
type Upstream interface {
	Source() source.Source
	Resolve(override string) source.Locator
}

type Handler struct {
	up     Upstream
	logger *zap.Logger
	// current names the spreadsheet used when the request names none.
	current func() string
}

// NewHandler builds the proxy. current may be nil, in which case requests
// without an override read the upstream's default spreadsheet.
func NewHandler(up Upstream, current func() string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if current == nil {
		current = func() string { return "" }
	}
	return &Handler{up: up, current: current, logger: logger}
}

// RegisterRoutes mounts GET /sheets/:sheetName on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sheets/:sheetName", h.sheet)
}

func (h *Handler) sheet(c *gin.Context) {
	name := c.Param("sheetName")
	if !source.ValidSheetName(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sheet name"})
		return
	}

	override := strings.TrimSpace(c.GetHeader(source.HeaderSheetURL))
	if override == "" {
		override = strings.TrimSpace(c.Query("sheetUrl"))
	}
	if override == "" {
		override = h.current()
	}
	loc := h.up.Resolve(override)
	src := h.up.Source()
	h.logger.Debug("proxy sheet", zap.String("sheet", name), zap.String("spreadsheet", loc.String()))

	body, err := h.read(c, src, loc, name)
	if err != nil {
		var se *source.StatusError
		switch {
		case errors.As(err, &se):
			c.JSON(se.Code, gin.H{"error": "Failed to fetch data from Google Sheets: " + se.Error()})
		case errors.Is(err, gviz.ErrMalformed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract JSON data from Google Sheets response"})
		default:
			h.logger.Warn("proxy sheet failed", zap.String("sheet", name), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data from Google Sheets"})
		}
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// read prefers the untouched upstream body and re-encodes a table only for
// sources that do not speak gviz.
func (h *Handler) read(c *gin.Context, src source.Source, loc source.Locator, name string) ([]byte, error) {
	if raw, ok := src.(source.RawSource); ok {
		return raw.Raw(c.Request.Context(), loc, name)
	}
	t, err := src.Rows(c.Request.Context(), loc, name)
	if err != nil {
		return nil, err
	}
	return gviz.Encode(t)
}
