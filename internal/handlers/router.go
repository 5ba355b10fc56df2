package handlers

import (
	"io/fs"
	"net/http"

	"github.com/base14/examples/gin-product-catalog/internal/metrics"
	"github.com/base14/examples/gin-product-catalog/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterOptions struct {
	ServiceName    string
	AllowedOrigins []string
	Products       *ProductHandler
	Health         *HealthHandler
	Metrics        *metrics.Registry
	// Web is served at "/" when set; it must contain index.html.
	Web fs.FS
}

// NewRouter builds the gin engine with the product API and its middleware.
func NewRouter(opts RouterOptions) (*gin.Engine, error) {
	httpMetrics, err := middleware.Metrics()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(opts.ServiceName, otelgin.WithFilter(func(req *http.Request) bool {
		return req.URL.Path != "/health" && req.URL.Path != "/metrics"
	})))
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(httpMetrics)
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.GET("/health", opts.Health.HealthCheck)
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	product := r.Group("/product")
	product.GET("/list", opts.Products.ListProducts)
	product.GET("/:id/info", opts.Products.GetProduct)
	product.POST("/add", opts.Products.CreateProduct)
	product.PUT("/:id/update", opts.Products.UpdateProduct)

	if opts.Web != nil {
		registerWeb(r, opts.Web)
	}

	return r, nil
}

func registerWeb(r *gin.Engine, files fs.FS) {
	r.GET("/", func(c *gin.Context) {
		index, err := fs.ReadFile(files, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	r.StaticFileFS("/scripts.js", "scripts.js", http.FS(files))
}
