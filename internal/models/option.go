package models

import "time"

// OptionModel is a generic key-value store for persisted runtime state.
type OptionModel struct {
	ID        uint      `json:"-"        gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"     gorm:"uniqueIndex;size:191;not null"`
	Value     string    `json:"value"    gorm:"type:longtext"` // JSON-encoded value
	UpdatedAt time.Time `json:"modified"`
}

func (OptionModel) TableName() string { return "options" }
