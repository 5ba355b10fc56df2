package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/base14/examples/gin-product-catalog/internal/database"
	"github.com/base14/examples/gin-product-catalog/internal/database/databasetest"
	"github.com/base14/examples/gin-product-catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCreatesProductsTable(t *testing.T) {
	db := databasetest.NewSQLite(t)

	m := db.Migrator()
	assert.True(t, m.HasTable(&models.Product{}))
	for _, col := range []string{
		"product_id", "name", "category", "description", "product_image",
		"sku", "unit_of_measure", "lead_time", "created_date", "updated_date",
	} {
		assert.True(t, m.HasColumn(&models.Product{}, col), col)
	}
	assert.True(t, m.HasIndex(&models.Product{}, "idx_products_sku"))

	// Running it again on an existing schema is a no-op.
	require.NoError(t, database.Migrate(db))
}

func TestCheckConstraintsRejectOutOfSetValues(t *testing.T) {
	db := databasetest.NewSQLite(t)

	bad := models.Product{
		Name:          "Widget",
		Category:      "obsolete",
		SKU:           "W-1",
		UnitOfMeasure: models.UnitUnit,
		LeadTime:      1,
	}
	assert.Error(t, db.Create(&bad).Error)

	bad = models.Product{
		Name:          "Widget",
		Category:      models.CategoryRaw,
		SKU:           "W-2",
		UnitOfMeasure: models.UnitUnit,
		LeadTime:      1000,
	}
	assert.Error(t, db.Create(&bad).Error)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckHealth(t *testing.T) {
	db := databasetest.NewSQLite(t)
	assert.NoError(t, database.CheckHealth(context.Background(), db))
}

func TestNowIsUTCMicroseconds(t *testing.T) {
	now := database.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
}
