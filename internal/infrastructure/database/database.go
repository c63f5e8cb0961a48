package database

import (
	"strings"

	"portfolio-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens a GORM DB from DSN. Postgres URLs (Supabase pooler) go through pgx;
// "sqlite://<path>" or "file:<path>" DSNs open a local SQLite database for development.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") behind PgBouncer/Supabase poolers.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), cfg)
	case strings.HasPrefix(dsn, "file:"):
		return gorm.Open(sqlite.Open(dsn), cfg)
	}
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), cfg)
}

// Models lists every table the service owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&domain.Admin{},
		&domain.PersonalInfo{},
		&domain.Project{},
		&domain.Certificate{},
		&domain.Review{},
		&domain.ReviewCode{},
		&domain.Skill{},
		&domain.Journey{},
	}
}

// AutoMigrate creates or updates the tables for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
