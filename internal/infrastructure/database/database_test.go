package database

import (
	"path/filepath"
	"testing"

	"portfolio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteDSN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")
	db, err := Open("sqlite://" + path)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestAutoMigrate_ReviewCodeUniqueIndex(t *testing.T) {
	db, err := Open("file:" + filepath.Join(t.TempDir(), "codes.db"))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, db.Create(&domain.ReviewCode{Code: "REV-AAAAAA"}).Error)
	err = db.Create(&domain.ReviewCode{Code: "REV-AAAAAA"}).Error
	assert.Error(t, err)
}
