package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
	"github.com/flujoapp/flujo_backend/internal/dto"
	"github.com/flujoapp/flujo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// eventsHandler streams recomputed dashboard summaries over SSE.
type eventsHandler struct {
	watcher portssvc.WatcherSvc
}

func newEventsHandler(w portssvc.WatcherSvc) *eventsHandler {
	return &eventsHandler{watcher: w}
}

// RegisterEventRoutes registers the server-sent events route.
func RegisterEventRoutes(rg *gin.RouterGroup, watcher portssvc.WatcherSvc) {
	h := newEventsHandler(watcher)
	rg.GET("/events/summary", h.streamSummaries)
}

// streamSummaries godoc
// @Summary Stream dashboard summary updates
// @Description Server-sent events stream; every record change pushes the
// @Description freshly recomputed summary for the logged-in user
// @Tags events
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream of dto.SummaryResponse payloads"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /events/summary [get]
func (h *eventsHandler) streamSummaries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updates, cancel := h.watcher.Subscribe(userID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case summary, open := <-updates:
			if !open {
				return false
			}
			payload, err := json.Marshal(dto.ToSummaryResponse(&summary))
			if err != nil {
				return false
			}
			c.SSEvent("summary", string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
