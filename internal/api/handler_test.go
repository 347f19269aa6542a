package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/service"
	"storefront-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products []models.Product
}

func (f *fakeCatalog) Products(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeCatalog) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			cp := f.products[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, store.ErrNotFound)
}

func (f *fakeCatalog) Categories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{{ID: "c01", Name: "Shoes"}}, nil
}

func (f *fakeCatalog) Brands(ctx context.Context) ([]models.Brand, error) {
	return []models.Brand{{Name: "Nike"}, {Name: "Vans"}}, nil
}

func (f *fakeCatalog) Options(ctx context.Context) ([]models.OptionDescriptor, error) {
	return []models.OptionDescriptor{{OptionType: "select", OptionName: "Size"}}, nil
}

func testRouter(t *testing.T, failureRate float64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	catalog := &fakeCatalog{products: []models.Product{
		{ID: "p1", Name: "Old Product", ReleaseDate: models.NewReleaseDate(base)},
		{ID: "p2", Name: "New Product", ReleaseDate: models.NewReleaseDate(base.AddDate(0, 3, 0))},
	}}

	catalogService := service.NewCatalogService(catalog, nil, time.Minute)
	checkoutService := service.NewCheckoutService(nil, 0, failureRate)

	router := gin.New()
	NewHandler(catalogService, checkoutService).SetupRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	w := doRequest(testRouter(t, 0), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "server is running", w.Body.String())
}

func TestListProductsSortedByReleaseDateDesc(t *testing.T) {
	w := doRequest(testRouter(t, 0), http.MethodGet, "/products", "")

	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "p2", products[0].ID)
	assert.Equal(t, "p1", products[1].ID)
}

func TestGetProduct(t *testing.T) {
	w := doRequest(testRouter(t, 0), http.MethodGet, "/products/p1", "")

	require.Equal(t, http.StatusOK, w.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "Old Product", product.Name)
}

func TestGetProductNotFound(t *testing.T) {
	w := doRequest(testRouter(t, 0), http.MethodGet, "/products/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "404 Not Found", w.Body.String())
}

func TestListCategories(t *testing.T) {
	w := doRequest(testRouter(t, 0), http.MethodGet, "/categories", "")

	require.Equal(t, http.StatusOK, w.Code)

	var categories []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "Shoes", categories[0].Name)
}

func TestListBrands(t *testing.T) {
	w := doRequest(testRouter(t, 0), http.MethodGet, "/brands", "")

	require.Equal(t, http.StatusOK, w.Code)

	var brands []models.Brand
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &brands))
	assert.Len(t, brands, 2)
}

func TestCheckoutSuccess(t *testing.T) {
	body := `{"userData":{"name":"Ada","surname":"Lovelace","phone":"0123456789","email":"ada@example.com","zipCode":"1000"},"cartItems":[]}`
	w := doRequest(testRouter(t, 0), http.MethodPost, "/checkout", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", w.Body.String())
}

func TestCheckoutFailure(t *testing.T) {
	w := doRequest(testRouter(t, 1), http.MethodPost, "/checkout", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "checkout failed", w.Body.String())
}

func TestCheckoutIgnoresMalformedBody(t *testing.T) {
	// The mock provider's outcome never depends on the payload.
	w := doRequest(testRouter(t, 0), http.MethodPost, "/checkout", "not json")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", w.Body.String())
}
