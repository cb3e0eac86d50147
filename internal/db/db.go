package db

import (
	"blogapi/internal/config"
	"blogapi/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection for the configured environment and
// runs migrations. The returned handle is passed to handlers explicitly.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.DSN()
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=blogapi port=5432 sslmode=disable"
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate creates or updates the schema. Exported so tests can run it
// against their own database.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Interaction{},
	)
}
