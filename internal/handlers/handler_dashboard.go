package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
	"github.com/flujoapp/flujo_backend/internal/dto"
	"github.com/flujoapp/flujo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the recomputed monthly summary.
type dashboardHandler struct {
	summaryService portssvc.SummarySvc
}

func newDashboardHandler(ss portssvc.SummarySvc) *dashboardHandler {
	return &dashboardHandler{summaryService: ss}
}

// RegisterDashboardRoutes registers the dashboard summary route.
func RegisterDashboardRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvc) {
	h := newDashboardHandler(summaryService)
	rg.GET("/dashboard/summary", h.getSummary)
}

// getSummary godoc
// @Summary Get the dashboard summary for a month
// @Description Recomputes this-month/last-month aggregates, month-over-month
// @Description changes and goal progress for the viewed month (default: now)
// @Tags dashboard
// @Produce json
// @Param month query string false "Viewed month (YYYY-MM, default current)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *dashboardHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	viewed := time.Now()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse(domain.MonthFormat, m)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month, expected YYYY-MM"})
			return
		}
		viewed = parsed
	}

	summary, err := h.summaryService.Summary(c.Request.Context(), userID, viewed)
	if err != nil {
		logger.Error("Failed to compute summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}
