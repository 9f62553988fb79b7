package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvenk/divvy/internal/docstore"
	"github.com/nvenk/divvy/internal/models"
	"github.com/nvenk/divvy/internal/service"
	"github.com/nvenk/divvy/internal/split"
)

// respondError maps domain errors to HTTP responses. Caller-supplied invalid
// input is a 400 with a machine-readable kind; persistence failures surface
// only as a generic 503.
func respondError(c *gin.Context, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"details": ve.Violations,
		})
		return
	}

	var oe *split.OverflowError
	if errors.As(err, &oe) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "split_overflow", "detail": oe.Error()})
		return
	}
	var se *split.ShortfallError
	if errors.As(err, &se) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "split_shortfall", "detail": se.Error()})
		return
	}
	var de *split.DuplicateUserError
	if errors.As(err, &de) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate_split_user", "detail": de.Error()})
		return
	}

	if errors.Is(err, docstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	if errors.Is(err, service.ErrStoreUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage_unavailable"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}
