package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/base14/examples/gin-product-catalog/internal/database"
	"github.com/base14/examples/gin-product-catalog/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// PageSize is the fixed number of products returned by List.
const PageSize = 10

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSKU    = errors.New("product with this sku already exists")
)

var tracer = otel.Tracer("product-repository")

type ProductRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db, now: database.Now}
}

// List returns at most PageSize products in product_id order, skipping the
// previous pages. Pages below 1 are treated as the first page; pages whose
// offset does not fit in an int are empty.
func (r *ProductRepository) List(ctx context.Context, page int) ([]models.Product, error) {
	ctx, span := tracer.Start(ctx, "product.list")
	defer span.End()

	if page < 1 {
		page = 1
	}
	products := make([]models.Product, 0, PageSize)
	if page-1 > math.MaxInt/PageSize {
		span.SetAttributes(attribute.Int("pagination.page", page))
		return products, nil
	}
	offset := (page - 1) * PageSize

	span.SetAttributes(
		attribute.Int("pagination.page", page),
		attribute.Int("pagination.offset", offset),
	)

	if err := r.db.WithContext(ctx).
		Order("product_id ASC").
		Offset(offset).
		Limit(PageSize).
		Find(&products).Error; err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id uint) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "product.get")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(id)))

	return r.find(r.db.WithContext(ctx), id)
}

// Create inserts p, filling in the generated id and both timestamps.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	ctx, span := tracer.Start(ctx, "product.create")
	defer span.End()

	span.SetAttributes(attribute.String("product.sku", p.SKU))

	now := r.now()
	p.ProductID = 0
	p.CreatedDate = now
	p.UpdatedDate = now

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return translate(err)
	}

	span.SetAttributes(attribute.Int64("product.id", int64(p.ProductID)))
	return nil
}

// Update applies changes (column name to value) to the product with the given
// id and returns the stored row. updated_date is always refreshed, even when
// changes is empty.
func (r *ProductRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "product.update")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product.id", int64(id)),
		attribute.Int("product.changed_fields", len(changes)),
	)

	var updated *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.find(tx, id)
		if err != nil {
			return err
		}

		updates := make(map[string]interface{}, len(changes)+1)
		for column, value := range changes {
			updates[column] = value
		}
		// updated_date must move forward even when the clock has not.
		now := r.now()
		if !now.After(current.UpdatedDate) {
			now = current.UpdatedDate.Add(time.Microsecond)
		}
		updates["updated_date"] = now

		if err := tx.Model(&models.Product{}).
			Where("product_id = ?", id).
			Updates(updates).Error; err != nil {
			return translate(err)
		}

		updated, err = r.find(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *ProductRepository) find(db *gorm.DB, id uint) (*models.Product, error) {
	var p models.Product
	if err := db.Where("product_id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSKU
	}
	return err
}
