package handlers

import (
	"context"
	"net/http"

	"github.com/tradebarrier/market-access/backend/pkg/database"
	"github.com/tradebarrier/market-access/backend/pkg/logger"
)

// DBChecker reports trade-database health.
type DBChecker interface {
	HealthCheck(ctx context.Context) (*database.HealthStatus, error)
}

// CacheChecker reports whether the cross-request cache is active.
type CacheChecker interface {
	Enabled() bool
}

// HealthHandler reports service health: database reachability and cache
// availability. The cache being disabled does not degrade health.
type HealthHandler struct {
	db     DBChecker
	cache  CacheChecker
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db DBChecker, cache CacheChecker, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cache,
		logger: log,
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	checks := map[string]interface{}{}

	if health, err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.WithError(err).Error("Health check: database unreachable")
		checks["database"] = "unreachable"
		status = "unavailable"
		code = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
		checks["database_response_time"] = health.ResponseTime.String()
	}

	if h.cache.Enabled() {
		checks["cache"] = "ok"
	} else {
		checks["cache"] = "disabled"
	}

	respondJSON(w, code, map[string]interface{}{
		"status":  status,
		"service": "market-access-api",
		"checks":  checks,
	})
}
