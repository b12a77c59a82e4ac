package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/peoplehub/loan-engine/pkg/response"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	db    *sqlx.DB
	redis *redis.Client
}

func NewHealthHandler(db *sqlx.DB, redis *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
	}
}

const readyCheckTimeout = 5 * time.Second

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health performs a basic health check
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	response.Success(w, status)
}

// Ready performs readiness check including database and redis connectivity
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		status.Status = "error"
		status.Checks["database"] = "failed: " + err.Error()
	} else {
		status.Checks["database"] = "ok"
	}

	// Redis is a cache here; a failed ping still flips readiness so the
	// schedule cache outage is visible before it shows up as latency.
	redisCtx, redisCancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer redisCancel()

	if err := h.redis.Ping(redisCtx).Err(); err != nil {
		status.Status = "error"
		status.Checks["redis"] = "failed: " + err.Error()
	} else {
		status.Checks["redis"] = "ok"
	}

	if status.Status == "error" {
		response.Error(w, http.StatusServiceUnavailable, "Service not ready", nil)
		return
	}

	response.Success(w, status)
}
