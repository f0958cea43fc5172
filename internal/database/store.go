package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cncmarket/catalog-service/internal/importer"
)

// Schema is the catalog DDL, applied by deployments and integration tests
//
//go:embed schema.sql
var Schema string

// Catalog is the Postgres implementation of the import engine's store
// contract.
type Catalog struct {
	pool *pgxpool.Pool
}

// NewCatalog creates a catalog store over the given pool
func NewCatalog(pool *pgxpool.Pool) *Catalog {
	return &Catalog{pool: pool}
}

// ProductIDBySKU returns the id of the product with the given SKU, or ""
// when none exists.
func (c *Catalog) ProductIDBySKU(ctx context.Context, sku string) (string, error) {
	var id string
	err := c.pool.QueryRow(ctx, `SELECT id FROM products WHERE sku = $1`, sku).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up product by sku: %w", err)
	}
	return id, nil
}

// CreateProduct creates the product together with its category links,
// attribute rows and image rows in one transaction.
func (c *Catalog) CreateProduct(ctx context.Context, p *importer.NewProduct) (string, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	productID := uuid.New().String()
	_, err = tx.Exec(ctx, `
		INSERT INTO products (
			id, sku, slug, name, description, short_description,
			price, compare_at_price, weight, stock_count, in_stock,
			is_active, is_featured, currency, brand_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW()
		)
	`, productID, p.SKU, p.Slug, p.Name, p.Description, p.ShortDescription,
		p.Price, p.CompareAtPrice, p.Weight, p.StockCount, p.InStock,
		p.IsActive, p.IsFeatured, p.Currency, p.BrandID)
	if err != nil {
		return "", fmt.Errorf("failed to insert product: %w", err)
	}

	for i, categoryID := range p.CategoryIDs {
		_, err = tx.Exec(ctx, `
			INSERT INTO product_categories (product_id, category_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, productID, categoryID, i)
		if err != nil {
			return "", fmt.Errorf("failed to link category: %w", err)
		}
	}

	for i, attr := range p.Attributes {
		_, err = tx.Exec(ctx, `
			INSERT INTO product_attributes (id, product_id, name, value, position)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), productID, attr.Name, attr.Value, i)
		if err != nil {
			return "", fmt.Errorf("failed to insert attribute: %w", err)
		}
	}

	for i, url := range p.ImageURLs {
		_, err = tx.Exec(ctx, `
			INSERT INTO product_images (id, product_id, url, position)
			VALUES ($1, $2, $3, $4)
		`, uuid.New().String(), productID, url, i)
		if err != nil {
			return "", fmt.Errorf("failed to insert image: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit product: %w", err)
	}
	return productID, nil
}

// Brands lists the full current brand set for cache seeding
func (c *Catalog) Brands(ctx context.Context) ([]importer.EntityRef, error) {
	return c.listEntities(ctx, `SELECT id, name FROM brands`)
}

// Categories lists the full current category set for cache seeding
func (c *Catalog) Categories(ctx context.Context) ([]importer.EntityRef, error) {
	return c.listEntities(ctx, `SELECT id, name FROM categories`)
}

func (c *Catalog) listEntities(ctx context.Context, query string) ([]importer.EntityRef, error) {
	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	refs := make([]importer.EntityRef, 0)
	for rows.Next() {
		var ref importer.EntityRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// CreateBrand inserts a new brand and returns its id
func (c *Catalog) CreateBrand(ctx context.Context, name, slug string) (string, error) {
	return c.createEntity(ctx, `INSERT INTO brands (id, name, slug, created_at) VALUES ($1, $2, $3, NOW())`, name, slug)
}

// CreateCategory inserts a new category and returns its id
func (c *Catalog) CreateCategory(ctx context.Context, name, slug string) (string, error) {
	return c.createEntity(ctx, `INSERT INTO categories (id, name, slug, created_at) VALUES ($1, $2, $3, NOW())`, name, slug)
}

func (c *Catalog) createEntity(ctx context.Context, query, name, slug string) (string, error) {
	id := uuid.New().String()
	if _, err := c.pool.Exec(ctx, query, id, name, slug); err != nil {
		return "", fmt.Errorf("failed to create entity %q: %w", name, err)
	}
	return id, nil
}
