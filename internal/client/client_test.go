package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, checkoutStatus int, checkoutBody string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id":"p1","product_name":"Sneaker","category":"Shoes","price":89.99,"brand":"Nike",
			 "stock_quantity":12,"release_date":"2024-03-14","description":"",
			 "selectible_option":{"option_type":"select","option_name":"Size","option":[40,41]}},
			{"id":"p2","product_name":"Tote","category":"Accessories","price":24.95,"brand":"Vans",
			 "stock_quantity":25,"release_date":"2023-08-30","description":"","selectible_option":null}
		]`)
	})
	mux.HandleFunc("/products/p1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"p1","product_name":"Sneaker","category":"Shoes","price":89.99,
			"brand":"Nike","stock_quantity":12,"release_date":"2024-03-14","description":"",
			"selectible_option":null}`)
	})
	mux.HandleFunc("/products/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "404 Not Found")
	})
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"c01","name":"Shoes"},{"id":"c02","name":"Accessories"}]`)
	})
	mux.HandleFunc("/brands", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"name":"Nike"},{"name":"Vans"}]`)
	})
	mux.HandleFunc("/options", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"option_type":"select","option_name":"Size"}]`)
	})
	mux.HandleFunc("/checkout", func(w http.ResponseWriter, r *http.Request) {
		var req models.CheckoutRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(checkoutStatus)
		io.WriteString(w, checkoutBody)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestProducts(t *testing.T) {
	srv := testServer(t, http.StatusOK, "success")
	c := New(srv.URL)

	products, err := c.Products(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Sneaker", products[0].Name)
	require.NotNil(t, products[0].Option)
	assert.Equal(t, []models.OptionValue{models.Option("40"), models.Option("41")},
		products[0].Option.Values)
	assert.Nil(t, products[1].Option)
}

func TestProductByID(t *testing.T) {
	srv := testServer(t, http.StatusOK, "success")
	c := New(srv.URL)

	product, err := c.ProductByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)

	_, err = c.ProductByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404 Not Found")
}

func TestCategories(t *testing.T) {
	srv := testServer(t, http.StatusOK, "success")
	c := New(srv.URL)

	categories, err := c.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Category{
		{ID: "c01", Name: "Shoes"},
		{ID: "c02", Name: "Accessories"},
	}, categories)
}

func TestBrands(t *testing.T) {
	srv := testServer(t, http.StatusOK, "success")
	c := New(srv.URL)

	brands, err := c.Brands(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Brand{{Name: "Nike"}, {Name: "Vans"}}, brands)
}

func TestOptions(t *testing.T) {
	srv := testServer(t, http.StatusOK, "success")
	c := New(srv.URL)

	options, err := c.Options(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.OptionDescriptor{
		{OptionType: "select", OptionName: "Size"},
	}, options)
}

func TestNewWithHTTPClient(t *testing.T) {
	srv := testServer(t, http.StatusOK, "success")
	c := NewWithHTTPClient(srv.URL+"/", srv.Client())

	products, err := c.Products(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCheckoutSuccess(t *testing.T) {
	srv := testServer(t, http.StatusOK, "success")
	c := New(srv.URL)

	msg, err := c.Checkout(context.Background(), &models.CheckoutRequest{})

	require.NoError(t, err)
	assert.Equal(t, "success", msg)
}

func TestCheckoutFailureCarriesRawBody(t *testing.T) {
	srv := testServer(t, http.StatusBadRequest, "checkout failed")
	c := New(srv.URL)

	_, err := c.Checkout(context.Background(), &models.CheckoutRequest{})

	require.Error(t, err)
	assert.Equal(t, "checkout failed", err.Error())
}

func TestNetworkErrorIsReturned(t *testing.T) {
	c := New("http://127.0.0.1:1")

	_, err := c.Products(context.Background())
	assert.Error(t, err)

	_, err = c.Checkout(context.Background(), &models.CheckoutRequest{})
	assert.Error(t, err)
}
