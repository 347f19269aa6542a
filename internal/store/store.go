package store

import (
	"context"
	"errors"

	"storefront-service/internal/models"
)

// ErrNotFound is returned when a catalog record does not exist.
var ErrNotFound = errors.New("not found")

// Catalog is read-only access to the product catalog. Implementations never
// mutate records; callers receive copies they may reorder freely.
type Catalog interface {
	Products(ctx context.Context) ([]models.Product, error)
	ProductByID(ctx context.Context, id string) (*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Brands(ctx context.Context) ([]models.Brand, error)
	Options(ctx context.Context) ([]models.OptionDescriptor, error)
}
