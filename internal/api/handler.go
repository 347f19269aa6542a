package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/service"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalogService  *service.CatalogService
	checkoutService *service.CheckoutService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalogService *service.CatalogService, checkoutService *service.CheckoutService) *Handler {
	return &Handler{
		catalogService:  catalogService,
		checkoutService: checkoutService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", h.root)
	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/categories", h.listCategories)
	router.GET("/brands", h.listBrands)
	router.GET("/options", h.listOptions)
	router.POST("/checkout", h.checkout)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, "server is running")
}

// listProducts returns the full catalog, sorted by release date descending.
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load products",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, products)
}

// getProduct returns a single product, or a plain "404 Not Found" body with a
// matching status when the id is unknown.
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.String(http.StatusNotFound, "404 Not Found")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load categories",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *Handler) listBrands(c *gin.Context) {
	brands, err := h.catalogService.ListBrands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load brands",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, brands)
}

func (h *Handler) listOptions(c *gin.Context) {
	options, err := h.catalogService.ListOptions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load options",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, options)
}

// checkout runs the mock checkout. The outcome never depends on the body, so
// a malformed body is still processed; the parsed data only feeds the order
// event on success.
func (h *Handler) checkout(c *gin.Context) {
	var req models.CheckoutRequest
	_ = c.ShouldBindJSON(&req)

	if _, ok := h.checkoutService.Process(c.Request.Context(), &req); !ok {
		c.String(http.StatusBadRequest, "checkout failed")
		return
	}

	c.String(http.StatusOK, "success")
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
