// Package dbtest opens throwaway databases for package tests. Only _test.go
// files import it.
package dbtest

import (
	migration "Dish-Discovery/cmd/database/migrate"
	"Dish-Discovery/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"path/filepath"
	"testing"
)

// OpenTestDB returns a migrated sqlite database living in t's temp dir.
func OpenTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
