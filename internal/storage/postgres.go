// internal/storage/postgres.go
package storage

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one persisted key-value row
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (KVEntry) TableName() string {
	return "storefront_kv"
}

// PostgresBackend persists values in a Postgres key-value table
type PostgresBackend struct {
	db *gorm.DB
}

// NewPostgresBackend creates a Postgres-backed store
func NewPostgresBackend(db *gorm.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// Read retrieves a value by key
func (b *PostgresBackend) Read(ctx context.Context, key string) (string, error) {
	var entry KVEntry
	err := b.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// Write stores a value under key, replacing any previous value
func (b *PostgresBackend) Write(ctx context.Context, key, value string) error {
	entry := KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

// Remove deletes a key
func (b *PostgresBackend) Remove(ctx context.Context, key string) error {
	return b.db.WithContext(ctx).Where("key = ?", key).Delete(&KVEntry{}).Error
}
