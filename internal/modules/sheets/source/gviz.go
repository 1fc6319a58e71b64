package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"golang.org/x/time/rate"
)

const (
	defaultGVizBaseURL   = "https://docs.google.com/spreadsheets/d/"
	defaultGVizUserAgent = "Mozilla/5.0 (sheetsite)"
	defaultGVizTimeout   = 10 * time.Second
	maxGVizBodyBytes     = 8 << 20
)

// GVizOptions configures the public visualization endpoint source.
type GVizOptions struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	HTTPClient    *http.Client
}

// GViz reads sheets through docs.google.com/.../gviz/tq, which needs no
// credentials for link-shared spreadsheets.
type GViz struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

func NewGViz(opts GVizOptions) *GViz {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = defaultGVizBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultGVizUserAgent
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultGVizTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &GViz{
		baseURL:   base,
		userAgent: ua,
		client:    client,
		limiter:   newLimiter(opts.RatePerSecond, opts.Burst),
	}
}

func (g *GViz) Name() string { return "gviz" }

// Endpoint returns the query URL for one sheet.
func (g *GViz) Endpoint(loc Locator, sheet string) string {
	return g.baseURL + url.PathEscape(loc.SheetID) + "/gviz/tq?tqx=out:json&sheet=" + url.QueryEscape(sheet)
}

// Raw fetches the sheet and returns the unwrapped JSON body.
func (g *GViz) Raw(ctx context.Context, loc Locator, sheet string) ([]byte, error) {
	if err := checkSheet(sheet); err != nil {
		return nil, err
	}
	if loc.SheetID == "" {
		return nil, fmt.Errorf("%w: gviz needs a spreadsheet id", ErrInvalidLocator)
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.Endpoint(loc, sheet), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml,application/json;q=0.9,*/*;q=0.8")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %s: %w", sheet, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGVizBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return gviz.Unwrap(body)
}

func (g *GViz) Rows(ctx context.Context, loc Locator, sheet string) (*gviz.Table, error) {
	body, err := g.Raw(ctx, loc, sheet)
	if err != nil {
		return nil, err
	}
	return gviz.Decode(body)
}

func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
