package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestGinMiddleware_RecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/v1/equipment/:equipmentId", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/v1/equipment/:equipmentId", "204"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/equipment/eq-1", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/v1/equipment/:equipmentId", "204"))
	require.Equal(t, before+1, after)
}

func TestObserveJob(t *testing.T) {
	before := testutil.ToFloat64(jobRuns.WithLabelValues("status-refresh", "error"))
	ObserveJob("status-refresh", errors.New("db down"))
	require.Equal(t, before+1, testutil.ToFloat64(jobRuns.WithLabelValues("status-refresh", "error")))
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	AddStatusChanges(2)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "equipment_lending_status_refresh_changes_total"))
}

func TestPushJobMetrics_PutsJobGroup(t *testing.T) {
	var method, path string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	ObserveJob("status_refresh", nil)
	require.NoError(t, PushJobMetrics(context.Background(), gateway.URL, "status_refresh"))
	require.Equal(t, http.MethodPut, method)
	require.Equal(t, "/metrics/job/status_refresh", path)
}

func TestPushJobMetrics_ReportsGatewayFailure(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer gateway.Close()

	require.Error(t, PushJobMetrics(context.Background(), gateway.URL, "status_refresh"))
}
