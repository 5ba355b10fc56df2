package handlers

import (
	"net/http"

	"github.com/base14/examples/gin-product-catalog/internal/database"
	"github.com/base14/examples/gin-product-catalog/internal/logging"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db      *gorm.DB
	service string
}

func NewHealthHandler(db *gorm.DB, service string) *HealthHandler {
	return &HealthHandler{db: db, service: service}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := database.CheckHealth(ctx, h.db); err != nil {
		logging.WithFields(ctx, map[string]interface{}{
			"error": err.Error(),
		}).Error("Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"service":  h.service,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
		"service":  h.service,
	})
}
