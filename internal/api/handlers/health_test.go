package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradebarrier/market-access/backend/pkg/config"
	"github.com/tradebarrier/market-access/backend/pkg/database"
	"github.com/tradebarrier/market-access/backend/pkg/logger"
)

type fakeDB struct {
	err error
}

func (f fakeDB) HealthCheck(context.Context) (*database.HealthStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &database.HealthStatus{Healthy: true}, nil
}

type fakeCache struct {
	enabled bool
}

func (f fakeCache) Enabled() bool { return f.enabled }

func testLog() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func healthResponse(t *testing.T, db fakeDB, cache fakeCache) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	handler := NewHealthHandler(db, cache, testLog())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.Check(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealthCheckOK(t *testing.T) {
	rec, body := healthResponse(t, fakeDB{}, fakeCache{enabled: true})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["database"])
	assert.Equal(t, "ok", checks["cache"])
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	rec, body := healthResponse(t, fakeDB{err: errors.New("dial refused")}, fakeCache{enabled: true})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unavailable", body["status"])

	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "unreachable", checks["database"])
}

func TestHealthCheckCacheDisabledStaysHealthy(t *testing.T) {
	rec, body := healthResponse(t, fakeDB{}, fakeCache{enabled: false})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "disabled", checks["cache"])
}
