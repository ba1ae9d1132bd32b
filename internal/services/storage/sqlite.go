package storage

import (
	"context"
	"errors"

	"github.com/killallgit/marathon-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore persists entries in the store_entries table
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore creates a Store backed by an already migrated database
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Read returns the value stored under key
func (s *SQLStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var entry models.StoreEntry
	err := s.db.WithContext(ctx).Where(map[string]any{"key": key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("read", err)
	}
	return entry.Value, nil
}

// Write upserts the value stored under key
func (s *SQLStore) Write(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	entry := models.StoreEntry{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return unavailable("write", err)
	}
	return nil
}

// Remove deletes key
func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Where(map[string]any{"key": key}).Delete(&models.StoreEntry{}).Error; err != nil {
		return unavailable("remove", err)
	}
	return nil
}
