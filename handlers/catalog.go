package handlers

import (
	"errors"
	"net/http"

	"slotbook/models"
	"slotbook/services/catalog"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes the slot catalog and track list. Creation and
// deletion are admin-gated in the router; listing is open to all
// authenticated users.
type CatalogHandler struct {
	CatalogService catalog.CatalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{CatalogService: svc}
}

// ListSlotsHandler handles GET /api/creneaux.
func (h *CatalogHandler) ListSlotsHandler(c *gin.Context) {
	slots, err := h.CatalogService.ListSlots(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list slots", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Failed to list slots", "")
		return
	}
	c.JSON(http.StatusOK, slots)
}

// CreateSlotHandler handles POST /api/creneaux.
func (h *CatalogHandler) CreateSlotHandler(c *gin.Context) {
	var slot models.TimeSlot
	if err := c.ShouldBindJSON(&slot); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid slot payload", err.Error())
		return
	}

	created, err := h.CatalogService.CreateSlot(c.Request.Context(), slot)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to create slot", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeleteSlotHandler handles DELETE /api/creneaux/:id.
func (h *CatalogHandler) DeleteSlotHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.CatalogService.DeleteSlot(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Slot not found", "")
			return
		}
		utils.GetLogger().Error("Failed to delete slot", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete slot", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}

// ListTracksHandler handles GET /api/filieres.
func (h *CatalogHandler) ListTracksHandler(c *gin.Context) {
	tracks, err := h.CatalogService.ListTracks(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list tracks", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Failed to list tracks", "")
		return
	}
	c.JSON(http.StatusOK, tracks)
}

// CreateTrackHandler handles POST /api/filieres.
func (h *CatalogHandler) CreateTrackHandler(c *gin.Context) {
	var track models.Track
	if err := c.ShouldBindJSON(&track); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid track payload", err.Error())
		return
	}

	created, err := h.CatalogService.CreateTrack(c.Request.Context(), track)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to create track", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeleteTrackHandler handles DELETE /api/filieres/:id.
func (h *CatalogHandler) DeleteTrackHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.CatalogService.DeleteTrack(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Track not found", "")
			return
		}
		utils.GetLogger().Error("Failed to delete track", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete track", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Track deleted"})
}
