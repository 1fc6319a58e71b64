package locator

import (
	"context"
	"errors"
	"sync"

	"github.com/sheetsite/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OptionName is the options-table row holding the remembered source URL.
const OptionName = "sheet_source_url"

// Store persists the remembered source URL.
type Store interface {
	// Load returns "" when nothing has been saved.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, url string) error
	Clear(ctx context.Context) error
}

// GormStore keeps the URL in the options table.
type GormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) Load(ctx context.Context) (string, error) {
	var opt models.OptionModel
	err := s.db.WithContext(ctx).Where("name = ?", OptionName).First(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return opt.Value, nil
}

func (s *GormStore) Save(ctx context.Context, url string) error {
	opt := models.OptionModel{Name: OptionName, Value: url}
	return s.upsert(ctx).Create(&opt).Error
}

func (s *GormStore) upsert(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	})
}

func (s *GormStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("name = ?", OptionName).Delete(&models.OptionModel{}).Error
}

// MemoryStore is a process-local Store, used when no database is configured.
type MemoryStore struct {
	mu  sync.Mutex
	url string
}

func (s *MemoryStore) Load(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url, nil
}

func (s *MemoryStore) Save(_ context.Context, url string) error {
	s.mu.Lock()
	s.url = url
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	return s.Save(context.Background(), "")
}
