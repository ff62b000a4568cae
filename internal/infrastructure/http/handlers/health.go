package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler handles GET /health/ready — readiness probe.
// Checks MongoDB and Redis connectivity before declaring the service ready.
// Redis is advisory only: the username cache degrades gracefully, so a Redis
// outage reports but does not fail readiness.
type HealthDependenciesHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		mongo: db,
		redis: rdb,
	}
}

type dependencyStatus struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	deps["mongodb"] = checkDependency(func() error {
		return h.mongo.Client().Ping(ctx, nil)
	})
	if deps["mongodb"].Status != "ok" {
		healthy = false
	}

	// Advisory: recorded but never fails readiness.
	deps["redis"] = checkDependency(func() error {
		return h.redis.Ping(ctx).Err()
	})

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

func checkDependency(ping func() error) dependencyStatus {
	start := time.Now()
	err := ping()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return dependencyStatus{Status: "unhealthy", LatencyMS: latency, Error: err.Error()}
	}
	return dependencyStatus{Status: "ok", LatencyMS: latency}
}
