package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stouper/wms-sub002/internal/infrastructure/persistence"
	"github.com/stouper/wms-sub002/internal/interfaces/http/dto"
)

// Store reports reachability and pool pressure of the backing store
type Store interface {
	Ping() error
	Stats() (persistence.ConnectionStats, error)
}

// SystemHandler handles health and system info endpoints
type SystemHandler struct {
	BaseHandler
	db        Store
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Store) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "WMS Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// Health reports liveness plus database reachability and pool pressure
func (h *SystemHandler) Health(c *gin.Context) {
	payload := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("ERR_DB_UNAVAILABLE", "Database unreachable"))
			return
		}
		if stats, err := h.db.Stats(); err == nil {
			payload["database"] = gin.H{
				"status":               "up",
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration":        stats.WaitDuration.String(),
			}
		}
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(payload))
}
