package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elcastillomagic/card-pricer/internal/models"
)

const maxSnapshotPage = 500

type SnapshotHandler struct {
	db *gorm.DB
}

func NewSnapshotHandler(db *gorm.DB) *SnapshotHandler {
	return &SnapshotHandler{db: db}
}

// GetLatestRun returns the most recent batch run with its priced count.
func (h *SnapshotHandler) GetLatestRun(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot store not configured"})
		return
	}

	var latest models.PriceSnapshot
	if err := h.db.Order("created_at DESC").First(&latest).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pricing runs recorded"})
		return
	}

	var priced int64
	h.db.Model(&models.PriceSnapshot{}).Where("run_id = ?", latest.RunID).Count(&priced)

	c.JSON(http.StatusOK, gin.H{
		"run_id":     latest.RunID,
		"created_at": latest.CreatedAt,
		"priced":     priced,
	})
}

// ListSnapshots returns priced rows, filterable by run_id and name.
func (h *SnapshotHandler) ListSnapshots(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot store not configured"})
		return
	}

	query := h.db.Model(&models.PriceSnapshot{}).Order("created_at DESC").Limit(maxSnapshotPage)
	if runID := c.Query("run_id"); runID != "" {
		query = query.Where("run_id = ?", runID)
	}
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	var snapshots []models.PriceSnapshot
	if err := query.Find(&snapshots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshots": snapshots,
		"count":     len(snapshots),
	})
}
