package types

import (
	"fmt"
	"strings"
)

// FileFormat represents supported import file formats
type FileFormat string

const (
	FormatDelimited FileFormat = "delimited"
	FormatXML       FileFormat = "xml"
	FormatJSON      FileFormat = "json"
	FormatXLSX      FileFormat = "xlsx"
)

// CanonicalRow is the normalized row shape every format parser produces.
// All fields are raw strings; interpretation (numbers, booleans, lists)
// happens downstream so the pipeline stays format-agnostic.
type CanonicalRow struct {
	SKU              string `json:"sku"`
	Name             string `json:"name"`
	Price            string `json:"price,omitempty"`
	CompareAtPrice   string `json:"compareAtPrice,omitempty"`
	Weight           string `json:"weight,omitempty"`
	StockCount       string `json:"stockCount,omitempty"`
	BrandName        string `json:"brandName,omitempty"`
	CategoryNames    string `json:"categoryNames,omitempty"` // comma-joined
	ImageURLs        string `json:"imageUrls,omitempty"`     // comma-joined
	AttributesRaw    string `json:"attributesRaw,omitempty"` // pipe-joined key:value pairs
	Description      string `json:"description,omitempty"`
	ShortDescription string `json:"shortDescription,omitempty"`
	Currency         string `json:"currency,omitempty"`
	IsActive         string `json:"isActive,omitempty"`
	IsFeatured       string `json:"isFeatured,omitempty"`
}

// RowError represents a row-level import failure tagged with the row's SKU
type RowError struct {
	SKU     string `json:"sku"`
	Message string `json:"message"`
}

func (e RowError) String() string {
	return fmt.Sprintf("SKU %q: %s", e.SKU, e.Message)
}

// ImportResult aggregates the outcome of one import run.
// Invariant: Created + Skipped + len(Errors) equals the number of rows the
// parser accepted.
type ImportResult struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors"`
}

// ErrorStrings renders the error list in the response wire shape.
func (r *ImportResult) ErrorStrings() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.String())
	}
	return out
}

// fieldSetters maps canonical (lowercased) header names to row fields.
// Every parser funnels through this table so a CSV column, an XML tag and a
// JSON key with the same name land in the same place.
var fieldSetters = map[string]func(*CanonicalRow, string){
	"sku":              func(r *CanonicalRow, v string) { r.SKU = v },
	"name":             func(r *CanonicalRow, v string) { r.Name = v },
	"price":            func(r *CanonicalRow, v string) { r.Price = v },
	"compareatprice":   func(r *CanonicalRow, v string) { r.CompareAtPrice = v },
	"weight":           func(r *CanonicalRow, v string) { r.Weight = v },
	"stockcount":       func(r *CanonicalRow, v string) { r.StockCount = v },
	"brand":            func(r *CanonicalRow, v string) { r.BrandName = v },
	"brandname":        func(r *CanonicalRow, v string) { r.BrandName = v },
	"categories":       func(r *CanonicalRow, v string) { r.CategoryNames = v },
	"categorynames":    func(r *CanonicalRow, v string) { r.CategoryNames = v },
	"images":           func(r *CanonicalRow, v string) { r.ImageURLs = v },
	"imageurls":        func(r *CanonicalRow, v string) { r.ImageURLs = v },
	"attributes":       func(r *CanonicalRow, v string) { r.AttributesRaw = v },
	"description":      func(r *CanonicalRow, v string) { r.Description = v },
	"shortdescription": func(r *CanonicalRow, v string) { r.ShortDescription = v },
	"currency":         func(r *CanonicalRow, v string) { r.Currency = v },
	"isactive":         func(r *CanonicalRow, v string) { r.IsActive = v },
	"isfeatured":       func(r *CanonicalRow, v string) { r.IsFeatured = v },
}

// RowFromFields builds a CanonicalRow from a header-name → value map.
// Keys are matched case-insensitively; unknown keys are ignored. The second
// return value is false when the row fails the minimal shape check (missing
// SKU or Name) and must be dropped by the caller.
func RowFromFields(fields map[string]string) (CanonicalRow, bool) {
	var row CanonicalRow
	for key, value := range fields {
		if set, ok := fieldSetters[strings.ToLower(strings.TrimSpace(key))]; ok {
			set(&row, strings.TrimSpace(value))
		}
	}
	row.SKU = strings.TrimSpace(row.SKU)
	row.Name = strings.TrimSpace(row.Name)
	if row.SKU == "" || row.Name == "" {
		return CanonicalRow{}, false
	}
	return row, true
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}
