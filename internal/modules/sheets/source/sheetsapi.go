package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsAPIOptions configures the Sheets API v4 source.
type SheetsAPIOptions struct {
	APIKey        string
	Endpoint      string
	RatePerSecond float64
	Burst         int
	HTTPClient    *http.Client
}

// SheetsAPI reads sheets through spreadsheets.values.get. The first row of
// the range is taken as the column labels.
type SheetsAPI struct {
	svc     *sheets.Service
	limiter *rate.Limiter
}

func NewSheetsAPI(ctx context.Context, opts SheetsAPIOptions) (*SheetsAPI, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return nil, errors.New("sheets api: api key is required")
	}
	clientOpts := []option.ClientOption{option.WithAPIKey(key)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets api: %w", err)
	}
	return &SheetsAPI{svc: svc, limiter: newLimiter(opts.RatePerSecond, opts.Burst)}, nil
}

func (s *SheetsAPI) Name() string { return "sheetsapi" }

func (s *SheetsAPI) Rows(ctx context.Context, loc Locator, sheet string) (*gviz.Table, error) {
	if err := checkSheet(sheet); err != nil {
		return nil, err
	}
	if loc.SheetID == "" {
		return nil, fmt.Errorf("%w: sheets api needs a spreadsheet id", ErrInvalidLocator)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(loc.SheetID, sheet).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, &StatusError{Code: gerr.Code, Status: gerr.Message}
		}
		return nil, fmt.Errorf("fetch sheet %s: %w", sheet, err)
	}
	return valuesToTable(resp.Values), nil
}

func valuesToTable(values [][]interface{}) *gviz.Table {
	if len(values) == 0 {
		return &gviz.Table{}
	}
	labels := make([]string, len(values[0]))
	for i, v := range values[0] {
		labels[i] = strings.TrimSpace(gviz.FromAny(v).String())
	}
	cells := make([][]gviz.Value, 0, len(values)-1)
	for _, line := range values[1:] {
		row := make([]gviz.Value, len(line))
		for i, v := range line {
			row[i] = gviz.FromAny(v)
		}
		cells = append(cells, row)
	}
	return gviz.FromMatrix(labels, cells)
}
