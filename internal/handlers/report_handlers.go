package handlers

import (
	"context"
	"net/http"
	"time"

	"snack_factory_backend/internal/services"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ReportHandler serves the dashboard and health endpoints.
type ReportHandler struct {
	dashboardService services.DashboardService
	db               Pinger
}

// NewReportHandler creates a new ReportHandler. db may be nil, in which case health skips the ping.
func NewReportHandler(ds services.DashboardService, db Pinger) *ReportHandler {
	return &ReportHandler{dashboardService: ds, db: db}
}

// GetDashboardSummary provides a summary of key metrics for the dashboard.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetDashboardSummary: Error from dashboardService.Summary")
		return
	}
	utils.RespondOK(c, summary)
}

// Health reports liveness and database connectivity.
func (h *ReportHandler) Health(c *gin.Context) {
	status := gin.H{"status": "ok", "database": "up", "time": time.Now().UTC()}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			utils.LogError(err, "Health: database ping failed")
			status["status"] = "degraded"
			status["database"] = "down"
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Database unreachable", "data": status})
			return
		}
	}
	utils.RespondOK(c, status)
}
