package handlers

import (
	"net/http"
	"time"

	"slotbook/services/schedule"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the derived weekly grid.
type ScheduleHandler struct {
	ScheduleService schedule.Service
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(svc schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{ScheduleService: svc}
}

// GetWeekHandler handles GET /api/schedule/week?date=YYYY-MM-DD&filiere=<id>.
// The date defaults to today; any date within a week selects that week's
// Monday-Friday grid.
func (h *ScheduleHandler) GetWeekHandler(c *gin.Context) {
	refDate := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(schedule.DateLayout, raw, time.Local)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date", "expected YYYY-MM-DD")
			return
		}
		refDate = parsed
	}
	trackID := c.Query("filiere")

	week, err := h.ScheduleService.WeekSchedule(c.Request.Context(), refDate, trackID)
	if err != nil {
		utils.GetLogger().Error("Failed to derive week schedule", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to derive schedule", "")
		return
	}

	c.JSON(http.StatusOK, week)
}
