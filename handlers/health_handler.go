// Package handlers contains the gin HTTP handlers for the API surface.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/filebright/filebright-backend/types"
)

// Pinger is the database liveness dependency, satisfied by pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	version string
}

func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// LivenessCheck reports that the process is up.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthCheck{
		Status:    types.HealthStatusUp,
		Version:   h.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck verifies the database dependency.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	check := types.HealthCheck{
		Status:     types.HealthStatusUp,
		Components: map[string]types.HealthComponent{},
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	if h.db == nil {
		check.Components["database"] = types.HealthComponent{Status: types.HealthStatusDown, Details: "not configured"}
		check.Status = types.HealthStatusDegraded
	} else if err := h.db.Ping(ctx); err != nil {
		check.Components["database"] = types.HealthComponent{Status: types.HealthStatusDown, Details: err.Error()}
		check.Status = types.HealthStatusDown
	} else {
		check.Components["database"] = types.HealthComponent{Status: types.HealthStatusUp}
	}

	if check.Status == types.HealthStatusDown {
		c.JSON(http.StatusServiceUnavailable, check)
		return
	}
	c.JSON(http.StatusOK, check)
}
