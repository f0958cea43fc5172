package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListImportRunsRequest represents query parameters for listing import runs
type ListImportRunsRequest struct {
	Limit int `form:"limit" binding:"min=0,max=100"`
}

// ListImportRuns returns recent bulk import runs from the audit trail
// @Summary List import runs
// @Description Returns the most recent bulk import runs, newest first
// @Tags catalog
// @Produce json
// @Param limit query int false "Number of runs to return" default(20) minimum(1) maximum(100)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/admin/catalog/imports [get]
func (h *ImportHandler) ListImportRuns(c *gin.Context) {
	var req ListImportRunsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	records, err := h.auditor.Recent(c.Request.Context(), req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch import runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  records,
		"total": len(records),
	})
}
