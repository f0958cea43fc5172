// Package importer implements the multi-format catalog ingestion engine:
// format dispatch, entity resolution, per-row processing and result
// aggregation.
package importer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cncmarket/catalog-service/internal/parsers/csv"
	"github.com/cncmarket/catalog-service/internal/parsers/json"
	"github.com/cncmarket/catalog-service/internal/parsers/xlsx"
	"github.com/cncmarket/catalog-service/internal/parsers/xml"
	"github.com/cncmarket/catalog-service/internal/types"
)

// DefaultCurrency is assigned to rows that carry no currency code
const DefaultCurrency = "TRY"

// Fatal conditions: these abort the call before any store write.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoRows            = errors.New("file contains no importable rows")
)

// Service is the import entry point consumed by the HTTP handlers and CLI
type Service interface {
	ImportFile(ctx context.Context, filename string, content []byte) (*types.ImportResult, error)
}

// Importer wires the parsers, resolver and batch runner over one store
type Importer struct {
	store           Store
	batchSize       int
	defaultCurrency string
}

// New creates an importer. Zero batchSize and empty currency select the
// package defaults.
func New(store Store, batchSize int, defaultCurrency string) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if defaultCurrency == "" {
		defaultCurrency = DefaultCurrency
	}
	return &Importer{store: store, batchSize: batchSize, defaultCurrency: defaultCurrency}
}

// Format resolves the file format from a filename extension
// (case-insensitive). ok is false for unsupported extensions.
func Format(filename string) (format types.FileFormat, ok bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv", ".txt":
		return types.FormatDelimited, true
	case ".xml":
		return types.FormatXML, true
	case ".json":
		return types.FormatJSON, true
	case ".xlsx":
		return types.FormatXLSX, true
	default:
		return "", false
	}
}

// ImportFile parses the file for its detected format and runs the batch
// import. Per-row failures are reported in the result; only unsupported
// extensions and files yielding zero rows fail the whole call.
func (imp *Importer) ImportFile(ctx context.Context, filename string, content []byte) (*types.ImportResult, error) {
	ctx, span := otel.Tracer("importer").Start(ctx, "ImportFile")
	defer span.End()

	format, ok := Format(filename)
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	span.SetAttributes(attribute.String("import.format", string(format)))

	var rows []types.CanonicalRow
	switch format {
	case types.FormatDelimited:
		rows = csv.Parse(content)
	case types.FormatXML:
		rows = xml.Parse(content)
	case types.FormatJSON:
		rows = json.Parse(content)
	case types.FormatXLSX:
		rows = xlsx.Parse(content)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	resolver, err := NewEntityResolver(ctx, imp.store)
	if err != nil {
		return nil, err
	}

	processor := NewRowProcessor(imp.store, resolver, imp.defaultCurrency)
	result := NewBatchRunner(processor, imp.batchSize).Run(ctx, rows)

	span.SetAttributes(
		attribute.Int("import.rows", len(rows)),
		attribute.Int("import.created", result.Created),
		attribute.Int("import.skipped", result.Skipped),
		attribute.Int("import.errors", len(result.Errors)),
	)

	log.Info().
		Str("file", filename).
		Str("format", string(format)).
		Int("rows", len(rows)).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Msg("Import finished")

	return result, nil
}
