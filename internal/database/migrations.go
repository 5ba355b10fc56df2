package database

import (
	"fmt"

	"github.com/base14/examples/gin-product-catalog/internal/models"
	"gorm.io/gorm"
)

// Migrate creates the products table, its unique sku index and CHECK
// constraints when they are missing. Existing data is left untouched.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("failed to migrate products: %w", err)
	}
	return nil
}
