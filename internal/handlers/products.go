package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/base14/examples/gin-product-catalog/internal/logging"
	"github.com/base14/examples/gin-product-catalog/internal/metrics"
	"github.com/base14/examples/gin-product-catalog/internal/models"
	"github.com/base14/examples/gin-product-catalog/internal/repository"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("product-handler")

// ProductStore is the storage used by ProductHandler.
type ProductStore interface {
	List(ctx context.Context, page int) ([]models.Product, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id uint, changes map[string]interface{}) (*models.Product, error)
}

type ProductHandler struct {
	store   ProductStore
	metrics *metrics.Registry
}

func NewProductHandler(store ProductStore, reg *metrics.Registry) *ProductHandler {
	return &ProductHandler{store: store, metrics: reg}
}

// ListProducts returns one page of products.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "ListProducts")
	defer span.End()

	page := 1
	if raw, ok := c.GetQuery("page"); ok {
		// Out-of-range values come back clamped to the int limits.
		n, err := strconv.Atoi(raw)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			respondError(ctx, c, http.StatusUnprocessableEntity, "page must be an integer", err)
			return
		}
		page = n
	}
	span.SetAttributes(attribute.Int("product.page", page))

	products, err := h.store.List(ctx, page)
	if err != nil {
		logging.WithFields(ctx, map[string]interface{}{
			"error":        err.Error(),
			"product.page": page,
		}).Error("Failed to list products")
		respondError(ctx, c, http.StatusInternalServerError, "failed to list products", err)
		return
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	c.JSON(http.StatusOK, models.ToResponses(products))
}

// GetProduct returns a single product by id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GetProduct")
	defer span.End()

	id, err := parseProductID(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(ctx, c, http.StatusNotFound, "Product not found", nil)
			return
		}
		respondError(ctx, c, http.StatusUnprocessableEntity, "product id must be an integer", err)
		return
	}
	span.SetAttributes(attribute.Int64("product.id", int64(id)))

	product, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(ctx, c, http.StatusNotFound, "Product not found", nil)
			return
		}
		logging.WithFields(ctx, map[string]interface{}{
			"error":      err.Error(),
			"product.id": id,
		}).Error("Failed to fetch product")
		respondError(ctx, c, http.StatusInternalServerError, "failed to fetch product", err)
		return
	}

	c.JSON(http.StatusOK, product.ToResponse())
}

// CreateProduct adds a product and returns it with its assigned id.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "CreateProduct")
	defer span.End()

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.WithFields(ctx, map[string]interface{}{
			"error": err.Error(),
		}).Warn("Rejected product payload")
		h.metrics.ProductWrite("add", metrics.OutcomeInvalid)
		respondError(ctx, c, http.StatusUnprocessableEntity, bindingDetail(err), err)
		return
	}

	product := req.ToModel()
	span.SetAttributes(
		attribute.String("product.sku", product.SKU),
		attribute.String("product.category", string(product.Category)),
	)

	if err := h.store.Create(ctx, &product); err != nil {
		if errors.Is(err, repository.ErrDuplicateSKU) {
			h.metrics.ProductWrite("add", metrics.OutcomeDuplicate)
			respondError(ctx, c, http.StatusConflict, err.Error(), err)
			return
		}
		logging.WithFields(ctx, map[string]interface{}{
			"error":       err.Error(),
			"product.sku": product.SKU,
		}).Error("Failed to create product")
		h.metrics.ProductWrite("add", metrics.OutcomeError)
		respondError(ctx, c, http.StatusInternalServerError, "failed to create product", err)
		return
	}

	span.SetAttributes(attribute.Int64("product.id", int64(product.ProductID)))
	span.AddEvent("product_created")
	logging.WithFields(ctx, map[string]interface{}{
		"product.id":  product.ProductID,
		"product.sku": product.SKU,
	}).Info("Product created")
	h.metrics.ProductWrite("add", metrics.OutcomeSuccess)

	c.JSON(http.StatusOK, product.ToResponse())
}

// UpdateProduct applies the fields present in the body to an existing product.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "UpdateProduct")
	defer span.End()

	id, err := parseProductID(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.metrics.ProductWrite("update", metrics.OutcomeNotFound)
			respondError(ctx, c, http.StatusNotFound, "Product not found", nil)
			return
		}
		h.metrics.ProductWrite("update", metrics.OutcomeInvalid)
		respondError(ctx, c, http.StatusUnprocessableEntity, "product id must be an integer", err)
		return
	}
	span.SetAttributes(attribute.Int64("product.id", int64(id)))

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.WithFields(ctx, map[string]interface{}{
			"error":      err.Error(),
			"product.id": id,
		}).Warn("Rejected product update payload")
		h.metrics.ProductWrite("update", metrics.OutcomeInvalid)
		respondError(ctx, c, http.StatusUnprocessableEntity, bindingDetail(err), err)
		return
	}

	changes := req.Changes()
	span.SetAttributes(attribute.Int("product.changed_fields", len(changes)))

	product, err := h.store.Update(ctx, id, changes)
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		h.metrics.ProductWrite("update", metrics.OutcomeNotFound)
		respondError(ctx, c, http.StatusNotFound, "Product not found", nil)
		return
	case errors.Is(err, repository.ErrDuplicateSKU):
		h.metrics.ProductWrite("update", metrics.OutcomeDuplicate)
		respondError(ctx, c, http.StatusConflict, err.Error(), err)
		return
	case err != nil:
		logging.WithFields(ctx, map[string]interface{}{
			"error":      err.Error(),
			"product.id": id,
		}).Error("Failed to update product")
		h.metrics.ProductWrite("update", metrics.OutcomeError)
		respondError(ctx, c, http.StatusInternalServerError, "failed to update product", err)
		return
	}

	span.AddEvent("product_updated")
	logging.WithFields(ctx, map[string]interface{}{
		"product.id": product.ProductID,
	}).Info("Product updated")
	h.metrics.ProductWrite("update", metrics.OutcomeSuccess)

	c.JSON(http.StatusOK, product.ToResponse())
}

// parseProductID accepts any integer. Ids that cannot belong to a stored
// product (below 1 or beyond the bigserial range) are ErrProductNotFound.
func parseProductID(raw string) (uint, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, repository.ErrProductNotFound
	}
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, repository.ErrProductNotFound
	}
	return uint(id), nil
}
