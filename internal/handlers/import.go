package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/cncmarket/catalog-service/internal/audit"
	"github.com/cncmarket/catalog-service/internal/importer"
	"github.com/cncmarket/catalog-service/internal/metrics"
	"github.com/cncmarket/catalog-service/internal/middleware"
)

// MaxUploadBytes caps the size of an uploaded catalog file.
const MaxUploadBytes = 50 << 20 // 50 MiB

// ImportHandler handles bulk catalog import HTTP endpoints
type ImportHandler struct {
	svc     importer.Service
	auditor *audit.Recorder
	metrics *metrics.Recorder
	sem     *semaphore.Weighted
}

// NewImportHandler creates a new import handler. maxConcurrent bounds the
// number of imports processed at once; excess requests wait.
func NewImportHandler(svc importer.Service, auditor *audit.Recorder, rec *metrics.Recorder, maxConcurrent int64) *ImportHandler {
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	return &ImportHandler{
		svc:     svc,
		auditor: auditor,
		metrics: rec,
		sem:     semaphore.NewWeighted(maxConcurrent),
	}
}

// ImportResponse represents the outcome of a bulk import request
type ImportResponse struct {
	Success bool     `json:"success" jsonschema:"required"`
	Message string   `json:"message" jsonschema:"required"`
	Created int      `json:"created" jsonschema:"required"`
	Skipped int      `json:"skipped" jsonschema:"required"`
	Errors  []string `json:"errors" jsonschema:"required"`
}

// BulkImport imports a multi-format product catalog file
// @Summary Bulk import a product catalog
// @Description Accepts a CSV, TSV, TXT, XML, JSON or XLSX catalog file and creates the products it contains. Existing SKUs are skipped. Row failures are reported without aborting the run.
// @Tags catalog
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Catalog file"
// @Success 200 {object} ImportResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/admin/catalog/import [post]
func (h *ImportHandler) BulkImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	ctx := c.Request.Context()
	if err := h.sem.Acquire(ctx, 1); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Import capacity exhausted"})
		return
	}
	defer h.sem.Release(1)

	h.metrics.IncrementInFlight()
	defer h.metrics.DecrementInFlight()
	h.metrics.RecordFileSize(fileHeader.Size)

	format, _ := importer.Format(fileHeader.Filename)
	started := time.Now()

	result, err := h.svc.ImportFile(ctx, fileHeader.Filename, content)
	if err != nil {
		h.metrics.RecordImport(string(format), time.Since(started), false)
		status := http.StatusInternalServerError
		if errors.Is(err, importer.ErrUnsupportedFormat) || errors.Is(err, importer.ErrNoRows) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.metrics.RecordImport(string(format), time.Since(started), true)
	h.metrics.RecordRows(result.Created, result.Skipped, len(result.Errors))

	actor := middleware.Actor(c)
	h.auditor.BulkImport(ctx, actor, result)

	log.Info().
		Str("actor", actor).
		Str("file", fileHeader.Filename).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Msg("Bulk import completed")

	c.JSON(http.StatusOK, ImportResponse{
		Success: true,
		Message: fmt.Sprintf("Imported %d products, skipped %d", result.Created, result.Skipped),
		Created: result.Created,
		Skipped: result.Skipped,
		Errors:  result.ErrorStrings(),
	})
}
