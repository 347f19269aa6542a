package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"storefront-service/internal/models"
)

// FileStore serves the catalog from static JSON files loaded once at startup.
// This mirrors the storefront's deployment model: the catalog is a set of
// fixture files, not a database.
type FileStore struct {
	products   []models.Product
	byID       map[string]*models.Product
	categories []models.Category
	brands     []models.Brand
	options    []models.OptionDescriptor
}

// NewFileStore loads products.json, categories.json, brands.json and
// options.json from dir.
func NewFileStore(dir string) (*FileStore, error) {
	fs := &FileStore{byID: make(map[string]*models.Product)}

	if err := loadJSON(filepath.Join(dir, "products.json"), &fs.products); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, "categories.json"), &fs.categories); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, "brands.json"), &fs.brands); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, "options.json"), &fs.options); err != nil {
		return nil, err
	}

	for i := range fs.products {
		fs.byID[fs.products[i].ID] = &fs.products[i]
	}

	return fs, nil
}

func loadJSON(path string, dst interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Products returns a copy of all products in file order.
func (fs *FileStore) Products(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(fs.products))
	copy(out, fs.products)
	return out, nil
}

// ProductByID retrieves a single product.
func (fs *FileStore) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := fs.byID[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

// Categories returns all category descriptors.
func (fs *FileStore) Categories(ctx context.Context) ([]models.Category, error) {
	out := make([]models.Category, len(fs.categories))
	copy(out, fs.categories)
	return out, nil
}

// Brands returns all brand descriptors.
func (fs *FileStore) Brands(ctx context.Context) ([]models.Brand, error) {
	out := make([]models.Brand, len(fs.brands))
	copy(out, fs.brands)
	return out, nil
}

// Options returns all option descriptors.
func (fs *FileStore) Options(ctx context.Context) ([]models.OptionDescriptor, error) {
	out := make([]models.OptionDescriptor, len(fs.options))
	copy(out, fs.options)
	return out, nil
}
