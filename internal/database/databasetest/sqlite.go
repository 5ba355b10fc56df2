// Package databasetest provides throwaway databases for package tests.
package databasetest

import (
	"fmt"
	"testing"

	"github.com/base14/examples/gin-product-catalog/internal/database"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLite returns a migrated, private in-memory database that is closed
// when the test finishes.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), database.Options{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
