package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// SQLStore serves the catalog from Postgres. Same read-only contract as
// FileStore, used when the catalog is too large to ship as fixtures.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore connects to Postgres and verifies the connection.
func NewSQLStore(databaseURL string) (*SQLStore, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

type productRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"product_name"`
	Category      string         `db:"category"`
	Price         float64        `db:"price"`
	Brand         string         `db:"brand"`
	StockQuantity int            `db:"stock_quantity"`
	ReleaseDate   time.Time      `db:"release_date"`
	Description   string         `db:"description"`
	OptionType    sql.NullString `db:"option_type"`
	OptionName    sql.NullString `db:"option_name"`
	OptionValues  []byte         `db:"option_values"`
}

func (r *productRow) toProduct() (models.Product, error) {
	p := models.Product{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		Price:         r.Price,
		Brand:         r.Brand,
		StockQuantity: r.StockQuantity,
		ReleaseDate:   models.NewReleaseDate(r.ReleaseDate),
		Description:   r.Description,
	}

	if r.OptionName.Valid {
		opt := &models.SelectableOption{
			OptionType: r.OptionType.String,
			OptionName: r.OptionName.String,
		}
		if len(r.OptionValues) > 0 {
			if err := json.Unmarshal(r.OptionValues, &opt.Values); err != nil {
				return p, fmt.Errorf("invalid option values for product %s: %w", r.ID, err)
			}
		}
		p.Option = opt
	}

	return p, nil
}

// Products retrieves all products.
func (s *SQLStore) Products(ctx context.Context) ([]models.Product, error) {
	var rows []productRow
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// ProductByID retrieves a product by ID.
func (s *SQLStore) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	var row productRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	p, err := row.toProduct()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Categories retrieves all categories.
func (s *SQLStore) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories, "SELECT id, name FROM categories ORDER BY id")
	return categories, err
}

// Brands retrieves all brands.
func (s *SQLStore) Brands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	err := s.db.SelectContext(ctx, &brands, "SELECT name FROM brands ORDER BY name")
	return brands, err
}

// Options retrieves all option descriptors.
func (s *SQLStore) Options(ctx context.Context) ([]models.OptionDescriptor, error) {
	var options []models.OptionDescriptor
	err := s.db.SelectContext(ctx, &options, "SELECT option_type, option_name FROM options ORDER BY option_type")
	return options, err
}
