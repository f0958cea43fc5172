package importer

import (
	"context"

	"github.com/cncmarket/catalog-service/internal/types"
	"github.com/rs/zerolog/log"
)

// DefaultBatchSize bounds how many rows a batch holds. Batching exists to
// bound the memory/latency unit of any future parallelization; processing
// stays sequential and strictly order-preserving.
const DefaultBatchSize = 50

// BatchRunner drives the row processor over all rows of one run, isolating
// failures per row.
type BatchRunner struct {
	processor *RowProcessor
	batchSize int
}

// NewBatchRunner creates a runner; batchSize <= 0 selects DefaultBatchSize
func NewBatchRunner(processor *RowProcessor, batchSize int) *BatchRunner {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchRunner{processor: processor, batchSize: batchSize}
}

// Run processes all rows and aggregates the result. One row's failure never
// rolls back or skips any other row. Cancellation is honoured between rows,
// never mid-row, returning the partial result accumulated so far.
func (r *BatchRunner) Run(ctx context.Context, rows []types.CanonicalRow) *types.ImportResult {
	result := &types.ImportResult{Errors: make([]types.RowError, 0)}

	for start := 0; start < len(rows); start += r.batchSize {
		end := start + r.batchSize
		if end > len(rows) {
			end = len(rows)
		}

		for _, row := range rows[start:end] {
			if ctx.Err() != nil {
				log.Warn().
					Int("created", result.Created).
					Int("skipped", result.Skipped).
					Int("errors", len(result.Errors)).
					Msg("Import cancelled, returning partial result")
				return result
			}

			switch outcome := r.processor.Process(ctx, row); outcome.Status {
			case StatusCreated:
				result.Created++
			case StatusSkipped:
				result.Skipped++
			case StatusError:
				log.Warn().Err(outcome.Err).Str("sku", row.SKU).Msg("Row failed")
				result.Errors = append(result.Errors, types.RowError{
					SKU:     row.SKU,
					Message: outcome.Err.Error(),
				})
			}
		}
	}

	return result
}
