package importer

import "context"

// EntityRef identifies one existing brand or category in the store
type EntityRef struct {
	ID   string
	Name string
}

// NewProduct is the single nested write issued per created row: the product
// record together with its category links, attributes and images.
type NewProduct struct {
	SKU              string
	Slug             string
	Name             string
	Description      string
	ShortDescription string
	Price            float64
	CompareAtPrice   float64
	Weight           float64
	StockCount       int
	InStock          bool
	IsActive         bool
	IsFeatured       bool
	Currency         string
	BrandID          *string
	CategoryIDs      []string
	Attributes       []Attribute
	ImageURLs        []string
}

// Store is the catalog persistence contract the import engine runs against.
// The database package provides the Postgres implementation; tests use fakes.
type Store interface {
	// ProductIDBySKU returns the id of an existing product with the given
	// SKU, or "" when none exists.
	ProductIDBySKU(ctx context.Context, sku string) (string, error)

	// CreateProduct creates the product and its relations as one atomic write.
	CreateProduct(ctx context.Context, product *NewProduct) (string, error)

	// Brands and Categories list the full current entity sets for cache seeding.
	Brands(ctx context.Context) ([]EntityRef, error)
	Categories(ctx context.Context) ([]EntityRef, error)

	CreateBrand(ctx context.Context, name, slug string) (string, error)
	CreateCategory(ctx context.Context, name, slug string) (string, error)
}
