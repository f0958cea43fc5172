package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cncmarket/catalog-service/internal/slug"
	"github.com/cncmarket/catalog-service/internal/types"
)

// RowStatus is the outcome class of processing one canonical row
type RowStatus string

const (
	StatusCreated RowStatus = "created"
	StatusSkipped RowStatus = "skipped"
	StatusError   RowStatus = "error"
)

// RowResult is the per-row outcome returned to the batch runner. No error
// ever crosses the runner boundary as a panic or failed call; failures are
// carried in Err with Status set to StatusError.
type RowResult struct {
	Status RowStatus
	Err    error
}

// RowProcessor validates one canonical row, resolves its entities, decodes
// its sub-fields and issues a single idempotent creation against the store.
type RowProcessor struct {
	store           Store
	resolver        *EntityResolver
	defaultCurrency string
}

// NewRowProcessor creates a processor bound to one run's resolver
func NewRowProcessor(store Store, resolver *EntityResolver, defaultCurrency string) *RowProcessor {
	if defaultCurrency == "" {
		defaultCurrency = DefaultCurrency
	}
	return &RowProcessor{
		store:           store,
		resolver:        resolver,
		defaultCurrency: defaultCurrency,
	}
}

// Process handles one row. An existing product with the same SKU is reported
// as skipped without updating any field: this is a create-only importer, not
// an upsert.
func (p *RowProcessor) Process(ctx context.Context, row types.CanonicalRow) RowResult {
	existing, err := p.store.ProductIDBySKU(ctx, row.SKU)
	if err != nil {
		return RowResult{Status: StatusError, Err: fmt.Errorf("failed to check existing product: %w", err)}
	}
	if existing != "" {
		return RowResult{Status: StatusSkipped}
	}

	var brandID *string
	if strings.TrimSpace(row.BrandName) != "" {
		id, err := p.resolver.ResolveBrand(ctx, row.BrandName)
		if err != nil {
			return RowResult{Status: StatusError, Err: fmt.Errorf("failed to resolve brand %q: %w", row.BrandName, err)}
		}
		brandID = &id
	}

	// Order preserved; duplicate links are the store's concern.
	categoryNames := SplitList(row.CategoryNames)
	categoryIDs := make([]string, 0, len(categoryNames))
	for _, name := range categoryNames {
		id, err := p.resolver.ResolveCategory(ctx, name)
		if err != nil {
			return RowResult{Status: StatusError, Err: fmt.Errorf("failed to resolve category %q: %w", name, err)}
		}
		categoryIDs = append(categoryIDs, id)
	}

	stockCount, stockKnown := parseStock(row.StockCount)

	product := &NewProduct{
		SKU:              row.SKU,
		Slug:             slug.ForProduct(row.Name, row.SKU),
		Name:             row.Name,
		Description:      row.Description,
		ShortDescription: row.ShortDescription,
		Price:            parseNumber(row.Price),
		CompareAtPrice:   parseNumber(row.CompareAtPrice),
		Weight:           parseNumber(row.Weight),
		StockCount:       stockCount,
		InStock:          !stockKnown || stockCount > 0,
		IsActive:         parseBoolDefault(row.IsActive, true),
		IsFeatured:       parseBoolDefault(row.IsFeatured, false),
		Currency:         defaultString(row.Currency, p.defaultCurrency),
		BrandID:          brandID,
		CategoryIDs:      categoryIDs,
		Attributes:       DecodeAttributes(row.AttributesRaw),
		ImageURLs:        SplitList(row.ImageURLs),
	}

	if _, err := p.store.CreateProduct(ctx, product); err != nil {
		return RowResult{Status: StatusError, Err: fmt.Errorf("failed to create product: %w", err)}
	}

	return RowResult{Status: StatusCreated}
}

// parseNumber parses a numeric string; invalid or missing values parse to 0
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseStock parses the stock count field. Absence or an unparsable value
// means unknown stock: count 0 and known=false, which downstream reads as
// in-stock.
func parseStock(s string) (count int, known bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseBoolDefault parses a loose boolean string ("true"/"1" → true),
// falling back to def when the field is absent.
func parseBoolDefault(s string, def bool) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	return s == "true" || s == "1"
}

func defaultString(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}
