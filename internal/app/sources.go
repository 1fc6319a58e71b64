package app

import (
	"context"
	"fmt"

	"github.com/sheetsite/core/internal/config"
	"github.com/sheetsite/core/internal/models"
	"github.com/sheetsite/core/internal/modules/sheets/source"
)

const placeholderText = "Welcome to our site"

// newSource picks the upstream row source named by sheets.source.
func newSource(ctx context.Context, cfg config.SheetsConfig) (source.Source, error) {
	switch cfg.Source {
	case config.SourceGViz:
		return source.NewGViz(source.GVizOptions{
			UserAgent:     cfg.UserAgent,
			Timeout:       cfg.Timeout,
			RatePerSecond: cfg.RatePerSecond,
			Burst:         cfg.Burst,
		}), nil
	case config.SourceSheetsAPI:
		return source.NewSheetsAPI(ctx, source.SheetsAPIOptions{
			APIKey:        cfg.APIKey,
			RatePerSecond: cfg.RatePerSecond,
			Burst:         cfg.Burst,
		})
	case config.SourceWorkbook:
		return source.NewWorkbook(cfg.WorkbookPath), nil
	case config.SourceProxy:
		return source.NewProxy(cfg.ProxyURL, nil), nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// placeholders builds the fallback content for pages that have none.
func placeholders(pageIDs []string) map[string][]models.ContentBlock {
	out := make(map[string][]models.ContentBlock, len(pageIDs))
	for _, id := range pageIDs {
		out[id] = []models.ContentBlock{{
			ID:           "placeholder-" + id,
			PageID:       id,
			ContentType:  models.ContentText,
			DisplayOrder: 1,
			Content:      placeholderText,
			Active:       true,
		}}
	}
	return out
}
