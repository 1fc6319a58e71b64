package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sheetsite/core/internal/models"
	"github.com/sheetsite/core/internal/modules/content/normalize"
	"github.com/sheetsite/core/internal/modules/content/settings"
	"github.com/sheetsite/core/internal/modules/sheets/fetcher"
	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"github.com/sheetsite/core/internal/modules/sheets/source"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// SharedKey holds the JSON of the latest snapshot for other instances.
	SharedKey = "sheetsite:snapshot"
	// InvalidateChannel carries the version of every newly published snapshot.
	InvalidateChannel = "sheetsite:invalidate"
)

// Fetcher reads one sheet, honouring an optional override locator.
type Fetcher interface {
	Fetch(ctx context.Context, sheet, override string) (*gviz.Table, error)
	Resolve(override string) source.Locator
}

// Shared is the cross-instance cache and invalidation bus. The redis client
// in internal/pkg/redis satisfies it.
type Shared interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Publish(ctx context.Context, channel string, message interface{}) error
}

// Options configures a Store.
type Options struct {
	Logger *zap.Logger
	// Shared is optional; without it the store is process-local.
	Shared    Shared
	SharedTTL time.Duration
	// Placeholders maps page ids to the blocks served when the page has no
	// content of its own.
	Placeholders map[string][]models.ContentBlock
}

// Store owns the current snapshot. Readers never block; refreshes are
// serialized and a refresh that started before the current snapshot was
// published is discarded.
type Store struct {
	fetcher      Fetcher
	logger       *zap.Logger
	shared       Shared
	sharedTTL    time.Duration
	placeholders map[string][]models.ContentBlock

	current atomic.Pointer[Snapshot]
	seq     atomic.Uint64

	mu        sync.Mutex
	published uint64
	listeners []func(*Snapshot)
}

func NewStore(f Fetcher, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	placeholders := make(map[string][]models.ContentBlock, len(opts.Placeholders))
	for id, blocks := range opts.Placeholders {
		placeholders[normalize.NormalizeID(id)] = blocks
	}
	s := &Store{
		fetcher:      f,
		logger:       logger,
		shared:       opts.Shared,
		sharedTTL:    opts.SharedTTL,
		placeholders: placeholders,
	}
	empty := Empty()
	empty.placeholders = placeholders
	s.current.Store(empty)
	return s
}

// Current returns the latest published snapshot. It is never nil.
func (s *Store) Current() *Snapshot { return s.current.Load() }

// OnPublish registers fn to run after every snapshot swap.
func (s *Store) OnPublish(fn func(*Snapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Refresh fetches all sheets concurrently and publishes the result as one
// snapshot. Sheets that fail are empty in the snapshot (settings fall back
// to defaults) and their errors are combined into the returned error; the
// snapshot is published either way, unless ctx is cancelled first.
func (s *Store) Refresh(ctx context.Context, override string) (*Snapshot, error) {
	ticket := s.seq.Add(1)
	loc := s.fetcher.Resolve(override)

	tables := make([]*gviz.Table, len(fetcher.Sheets))
	errs := make([]error, len(fetcher.Sheets))
	g, gctx := errgroup.WithContext(ctx)
	for i, sheet := range fetcher.Sheets {
		g.Go(func() error {
			tables[i], errs[i] = s.fetcher.Fetch(gctx, sheet, override)
			return nil
		})
	}
	_ = g.Wait()
	if cerr := ctx.Err(); cerr != nil {
		s.logger.Info("refresh cancelled, keeping current snapshot", zap.Error(cerr))
		return s.Current(), cerr
	}
	err := multierr.Combine(errs...)

	snap := s.build(loc, tables, err)
	if !s.publish(ticket, snap) {
		s.logger.Info("discarding superseded refresh", zap.String("version", snap.Version))
		return s.Current(), err
	}
	s.logger.Info("snapshot refreshed",
		zap.String("version", snap.Version),
		zap.String("source", snap.Source),
		zap.Int("menu", len(snap.Menu)),
		zap.Int("pages", len(snap.Pages)),
		zap.Int("content", len(snap.Content)),
		zap.Int("settings", len(snap.Settings)),
		zap.Int("templates", len(snap.Templates)),
		zap.Int("errors", len(snap.Errors)),
	)
	s.share(ctx, snap)
	return snap, err
}

func (s *Store) build(loc source.Locator, tables []*gviz.Table, err error) *Snapshot {
	snap := &Snapshot{
		Version:      uuid.NewString(),
		Source:       loc.URL(),
		FetchedAt:    time.Now(),
		Menu:         normalize.MenuItems(tables[0]),
		Pages:        normalize.Pages(tables[1]),
		Content:      normalize.ContentBlocks(tables[2]),
		Settings:     settings.Resolve(tables[3]),
		Templates:    normalize.Templates(tables[4]),
		placeholders: s.placeholders,
	}
	for _, e := range multierr.Errors(err) {
		snap.Errors = append(snap.Errors, e.Error())
	}
	return snap
}

func (s *Store) publish(ticket uint64, snap *Snapshot) bool {
	s.mu.Lock()
	if ticket < s.published {
		s.mu.Unlock()
		return false
	}
	s.published = ticket
	s.current.Store(snap)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return true
}

func (s *Store) share(ctx context.Context, snap *Snapshot) {
	if s.shared == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("encode snapshot", zap.Error(err))
		return
	}
	if err := s.shared.Set(ctx, SharedKey, string(data), s.sharedTTL); err != nil {
		s.logger.Warn("store shared snapshot", zap.Error(err))
		return
	}
	if err := s.shared.Publish(ctx, InvalidateChannel, snap.Version); err != nil {
		s.logger.Warn("broadcast invalidation", zap.Error(err))
	}
}

// ErrNoShared is returned by LoadShared when no shared snapshot is available.
var ErrNoShared = errors.New("no shared snapshot")

// LoadShared replaces the current snapshot with the one another instance
// stored, provided it carries the wanted version ("" accepts any).
func (s *Store) LoadShared(ctx context.Context, version string) error {
	if s.shared == nil {
		return ErrNoShared
	}
	raw, err := s.shared.Get(ctx, SharedKey)
	if err != nil {
		return fmt.Errorf("load shared snapshot: %w", err)
	}
	if raw == "" {
		return ErrNoShared
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return fmt.Errorf("decode shared snapshot: %w", err)
	}
	if version != "" && snap.Version != version {
		return fmt.Errorf("shared snapshot is %s, want %s: %w", snap.Version, version, ErrNoShared)
	}
	if snap.Version == s.Current().Version {
		return nil
	}
	if snap.Settings == nil {
		snap.Settings = settings.Defaults()
	}
	snap.placeholders = s.placeholders
	s.publish(s.seq.Add(1), &snap)
	return nil
}

// Follow applies invalidation messages from other instances until ctx ends
// or versions is closed.
func (s *Store) Follow(ctx context.Context, versions <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-versions:
			if !ok {
				return
			}
			if v == s.Current().Version {
				continue
			}
			if err := s.LoadShared(ctx, v); err != nil {
				s.logger.Warn("apply remote invalidation", zap.String("version", v), zap.Error(err))
			}
		}
	}
}
