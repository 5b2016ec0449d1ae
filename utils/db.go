package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

// InitDB stores the shared handle. The CLI commands open the store exactly
// once at startup and everything downstream reads it through GetDB, so only
// the first call wins and later calls are ignored.
func InitDB(database *gorm.DB) {
	once.Do(func() {
		db = database
	})
}

// GetDB returns the handle stored by InitDB, nil before initialization.
func GetDB() *gorm.DB {
	return db
}
