package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/flujoapp/flujo_backend/internal/apperrors"
	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
	"github.com/flujoapp/flujo_backend/internal/dto"
	"github.com/flujoapp/flujo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// calendarHandler serves the merged per-day entry list.
type calendarHandler struct {
	calendarService portssvc.CalendarSvc
}

func newCalendarHandler(cs portssvc.CalendarSvc) *calendarHandler {
	return &calendarHandler{calendarService: cs}
}

// RegisterCalendarRoutes registers the calendar route.
func RegisterCalendarRoutes(rg *gin.RouterGroup, calendarService portssvc.CalendarSvc) {
	h := newCalendarHandler(calendarService)
	rg.GET("/calendar/:date", h.getEntries)
}

// getEntries godoc
// @Summary Get the merged calendar entries for a date
// @Description Merges the day's transactions, project tasks and unpaid
// @Description payables into one deduplicated list
// @Tags calendar
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {array} dto.CalendarEntryResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build calendar"
// @Security BearerAuth
// @Router /calendar/{date} [get]
func (h *calendarHandler) getEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.calendarService.EntriesForDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build calendar", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build calendar"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCalendarEntryResponses(entries))
}
