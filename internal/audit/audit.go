// Package audit writes one summary record per import run to the audit trail.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/cncmarket/catalog-service/internal/types"
)

// ActionBulkImport is the fixed action tag for bulk catalog imports
const ActionBulkImport = "catalog.bulk_import"

// Recorder persists audit entries. Recording is fire-and-forget from the
// import engine's perspective: failures are logged, never propagated.
type Recorder struct {
	pool *pgxpool.Pool
}

// NewRecorder creates a recorder over the given pool
func NewRecorder(pool *pgxpool.Pool) *Recorder {
	return &Recorder{pool: pool}
}

// Record is one persisted audit entry
type Record struct {
	ID        string          `json:"id"`
	Actor     string          `json:"actor"`
	Action    string          `json:"action"`
	Detail    json.RawMessage `json:"detail"`
	CreatedAt time.Time       `json:"createdAt"`
}

// BulkImport records the summary of one import run
func (r *Recorder) BulkImport(ctx context.Context, actor string, result *types.ImportResult) {
	if r.pool == nil {
		return
	}

	detail, _ := json.Marshal(map[string]int{
		"created": result.Created,
		"skipped": result.Skipped,
		"errors":  len(result.Errors),
	})

	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log (id, actor, action, detail, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, uuid.New().String(), actor, ActionBulkImport, detail)
	if err != nil {
		log.Error().Err(err).Str("actor", actor).Msg("Failed to write audit record")
	}
}

// Recent returns the most recent bulk import audit entries
func (r *Recorder) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if r.pool == nil {
		return []Record{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, actor, action, detail, created_at
		FROM audit_log
		WHERE action = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, ActionBulkImport, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Actor, &rec.Action, &rec.Detail, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
