// Package locator owns the remembered spreadsheet the site reads from.
// Switching it persists the choice, rebuilds the snapshot and drops cached
// responses, so every sheet moves to the new source together.
package locator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sheetsite/core/internal/modules/content/snapshot"
	"github.com/sheetsite/core/internal/modules/sheets/source"
	"go.uber.org/zap"
)

// Refresher rebuilds the content snapshot from a source URL.
type Refresher interface {
	Refresh(ctx context.Context, override string) (*snapshot.Snapshot, error)
}

// Purger drops cached HTTP responses.
type Purger func(ctx context.Context) (int64, error)

type Service struct {
	store      Store
	refresher  Refresher
	purge      Purger
	defaultURL string
	logger     *zap.Logger

	mu      sync.RWMutex
	current string
}

// NewService builds the owner of the current source. purge may be nil.
func NewService(store Store, refresher Refresher, defaultURL string, purge Purger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = &MemoryStore{}
	}
	return &Service{
		store:      store,
		refresher:  refresher,
		purge:      purge,
		defaultURL: defaultURL,
		logger:     logger,
	}
}

// Load restores the remembered source. An unreadable or invalid saved value
// leaves the default in place.
func (s *Service) Load(ctx context.Context) error {
	saved, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load source locator: %w", err)
	}
	if saved == "" {
		return nil
	}
	loc, err := source.ParseLocator(saved)
	if err != nil {
		s.logger.Warn("ignoring saved source locator", zap.String("url", saved), zap.Error(err))
		return nil
	}
	s.set(loc.URL())
	return nil
}

// Current is the source URL in effect, the configured default when none has
// been chosen.
func (s *Service) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current != "" {
		return s.current
	}
	return s.defaultURL
}

// IsDefault reports whether no source has been chosen.
func (s *Service) IsDefault() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current == ""
}

func (s *Service) set(url string) {
	s.mu.Lock()
	s.current = url
	s.mu.Unlock()
}

// Refresh rebuilds the snapshot from the current source.
func (s *Service) Refresh(ctx context.Context) (*snapshot.Snapshot, error) {
	snap, err := s.refresher.Refresh(ctx, s.Current())
	s.purgeCache(ctx)
	return snap, err
}

// Switch validates raw, remembers it and refreshes from it. An empty raw
// is a plain refresh of the current source.
func (s *Service) Switch(ctx context.Context, raw string) (*snapshot.Snapshot, error) {
	if strings.TrimSpace(raw) == "" {
		return s.Refresh(ctx)
	}
	loc, err := source.ParseLocator(raw)
	if err != nil {
		return nil, err
	}
	url := loc.URL()
	if err := s.store.Save(ctx, url); err != nil {
		return nil, fmt.Errorf("save source locator: %w", err)
	}
	s.set(url)
	s.logger.Info("source locator switched", zap.String("url", url))
	return s.Refresh(ctx)
}

// Reset forgets the chosen source and refreshes from the default.
func (s *Service) Reset(ctx context.Context) (*snapshot.Snapshot, error) {
	if err := s.store.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear source locator: %w", err)
	}
	s.set("")
	return s.Refresh(ctx)
}

func (s *Service) purgeCache(ctx context.Context) {
	if s.purge == nil {
		return
	}
	n, err := s.purge(ctx)
	if err != nil {
		s.logger.Warn("purge http cache", zap.Error(err))
		return
	}
	s.logger.Debug("purged http cache", zap.Int64("keys", n))
}
