package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/realestate/backend/internal/interfaces/http/dto"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	Ping() error
}

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      HealthChecker
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db HealthChecker, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// HealthResponse is the API shape of a health probe
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health reports process liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{Status: "ok", Version: h.version})
}

// Ready reports whether the service can reach its database
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrCodeInternal, "database unreachable"))
			return
		}
	}
	h.Success(c, HealthResponse{Status: "ready", Version: h.version})
}
