package handlers

import (
	"net/http"

	"slotbook/models"
	"slotbook/services/schedule"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler exposes the reservation lifecycle.
type ReservationHandler struct {
	ScheduleService schedule.Service
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc schedule.Service) *ReservationHandler {
	return &ReservationHandler{ScheduleService: svc}
}

// scheduleErrorStatus maps schedule error codes onto HTTP statuses.
func scheduleErrorStatus(err error) int {
	switch schedule.ErrCode(err) {
	case schedule.CodeMissingField:
		return http.StatusBadRequest
	case schedule.CodeNotFound:
		return http.StatusNotFound
	case schedule.CodeSlotTaken:
		return http.StatusConflict
	case schedule.CodeForbidden:
		return http.StatusForbidden
	case schedule.CodeConnection:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondScheduleError(c *gin.Context, err error) {
	status := scheduleErrorStatus(err)
	body := gin.H{"error": err.Error()}
	if conflict := schedule.ConflictOf(err); conflict != nil {
		body["conflict"] = conflict
	}
	if status >= http.StatusInternalServerError {
		utils.GetLogger().Error("Reservation operation failed", zap.Error(err))
	}
	c.JSON(status, body)
}

// CreateReservationHandler handles POST /api/reservations. The authenticated
// user always books for themselves.
func (h *ReservationHandler) CreateReservationHandler(c *gin.Context) {
	var req struct {
		TrackID      string `json:"filiere_id" binding:"required"`
		SlotID       string `json:"creneau_id" binding:"required"`
		Date         string `json:"date" binding:"required,datetime=2006-01-02"`
		ModuleTitle  string `json:"titre_module" binding:"required,max=200"`
		Description  string `json:"description" binding:"required,min=10,max=2000"`
		TeachingAxis string `json:"axe_pedagogique" binding:"omitempty,max=200"`
		Room         string `json:"salle" binding:"omitempty,max=50"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reservation payload", err.Error())
		return
	}

	input := models.ReservationInput{
		UserID:       c.GetString("userID"),
		TrackID:      req.TrackID,
		SlotID:       req.SlotID,
		Date:         req.Date,
		ModuleTitle:  req.ModuleTitle,
		Description:  req.Description,
		TeachingAxis: req.TeachingAxis,
		Room:         req.Room,
	}

	created, err := h.ScheduleService.CreateReservation(c.Request.Context(), input)
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateReservationHandler handles PUT /api/reservations/:id.
func (h *ReservationHandler) UpdateReservationHandler(c *gin.Context) {
	id := c.Param("id")

	var upd models.ReservationUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reservation payload", err.Error())
		return
	}

	updated, err := h.ScheduleService.UpdateReservation(c.Request.Context(), id, c.GetString("userID"), upd)
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteReservationHandler handles DELETE /api/reservations/:id.
func (h *ReservationHandler) DeleteReservationHandler(c *gin.Context) {
	id := c.Param("id")

	if err := h.ScheduleService.DeleteReservation(c.Request.Context(), id, c.GetString("userID")); err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted"})
}

// ListReservationsHandler handles GET /api/reservations with optional
// filiere, from and to query filters. Used by the supervision view.
func (h *ReservationHandler) ListReservationsHandler(c *gin.Context) {
	filter := models.ReservationFilter{
		TrackID:  c.Query("filiere"),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
	}

	reservations, err := h.ScheduleService.ListReservations(c.Request.Context(), filter)
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// MyReservationsHandler handles GET /api/reservations/mine, returning the
// caller's reservations split into upcoming and past.
func (h *ReservationHandler) MyReservationsHandler(c *gin.Context) {
	upcoming, past, err := h.ScheduleService.UserReservations(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"a_venir": upcoming, "passees": past})
}
