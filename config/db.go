package config

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the process-wide database handle, constructed once at startup.
var DB *gorm.DB

// Connect opens the PostgreSQL connection pool. The pool bounds concurrent
// database usage; excess requests queue on it.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}
