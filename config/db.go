package config

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is a global variable to hold the database connection
var DB *gorm.DB

// ConnectDatabase opens the PostgreSQL connection. TranslateError makes the
// driver report duplicate keys and missing rows as gorm sentinel errors, so
// handlers can map them without sniffing driver strings.
func ConnectDatabase(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// StoreContext derives a context with the configured store deadline. Every
// database call goes through one of these; an expired deadline surfaces to
// the caller as a service-unavailable error.
func StoreContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, StoreTimeout)
}
