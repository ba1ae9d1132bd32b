package models

import "time"

// StoreEntry is one key/value slot of the sqlite-backed persistence store
type StoreEntry struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     []byte    `gorm:"type:blob"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the StoreEntry model
func (StoreEntry) TableName() string {
	return "store_entries"
}
