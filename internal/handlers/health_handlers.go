package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const probeTimeout = 2 * time.Second

// Probe checks one dependency and returns nil when it is reachable
type Probe func(ctx context.Context) error

// HealthHandlers handles health check endpoints
type HealthHandlers struct {
	probes  map[string]Probe
	started time.Time
	now     func() time.Time
}

// NewHealthHandlers takes the probes keyed by the service name reported in the response
func NewHealthHandlers(probes map[string]Probe) *HealthHandlers {
	return &HealthHandlers{probes: probes, started: time.Now(), now: time.Now}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
}

// HealthCheck runs every probe and reports 503 when any of them fails
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	now := h.now()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: now.UTC().Format(time.RFC3339),
		Services:  make(map[string]string, len(h.probes)),
		Uptime:    now.Sub(h.started).Truncate(time.Second).String(),
	}

	for name, probe := range h.probes {
		if err := probe(ctx); err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
			continue
		}
		health.Services[name] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}
	return c.JSON(statusCode, health)
}
