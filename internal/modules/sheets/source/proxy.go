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
)

// HeaderSheetURL carries the alternate data-source locator to the proxy.
const HeaderSheetURL = "x-sheet-url"

// Proxy reads sheets through a sheetsite proxy (GET /api/sheets/:name), the
// way browser clients do. The locator travels in the x-sheet-url header.
type Proxy struct {
	baseURL string
	client  *http.Client
}

func NewProxy(baseURL string, client *http.Client) *Proxy {
	if client == nil {
		client = &http.Client{Timeout: defaultGVizTimeout + 5*time.Second}
	}
	return &Proxy{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), client: client}
}

func (p *Proxy) Name() string { return "proxy" }

func (p *Proxy) Raw(ctx context.Context, loc Locator, sheet string) ([]byte, error) {
	if err := checkSheet(sheet); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/sheets/"+url.PathEscape(sheet), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if u := loc.URL(); u != "" {
		req.Header.Set(HeaderSheetURL, u)
	}
	resp, err := p.client.Do(req)
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

func (p *Proxy) Rows(ctx context.Context, loc Locator, sheet string) (*gviz.Table, error) {
	body, err := p.Raw(ctx, loc, sheet)
	if err != nil {
		return nil, err
	}
	return gviz.Decode(body)
}
