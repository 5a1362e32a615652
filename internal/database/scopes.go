package database

import (
	"gorm.io/gorm"
)

// NewestFirst orders by creation time descending and caps the result.
func NewestFirst(limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC").Limit(limit)
	}
}

// OldestFirst orders by creation time ascending.
func OldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

// ByPosition orders nested board rows by their sequence index.
func ByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
