package api

import (
	"Orbit/internal/api/config"
	"Orbit/internal/api/dto"
	"Orbit/internal/api/handler"
	"Orbit/internal/pkg/analytics"
	"Orbit/internal/pkg/monitoring"
	"Orbit/internal/service"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDashboardService struct {
	lastQuery   *dto.DashboardQueryDTO
	invalidated []uint64
	err         error
}

func (s *stubDashboardService) GetDashboard(_ context.Context, req *dto.DashboardQueryDTO) (*dto.DashboardDTO, error) {
	s.lastQuery = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.DashboardDTO{Brand: req.Brand, Totals: dto.TotalsDTO{Followers: 1400}}, nil
}

func (s *stubDashboardService) GetPlatforms(_ context.Context, req *dto.DashboardQueryDTO) ([]*dto.PlatformCardDTO, error) {
	s.lastQuery = req
	return []*dto.PlatformCardDTO{{Platform: "all", Value: 10}}, nil
}

func (s *stubDashboardService) InvalidateBrand(_ context.Context, brandID uint64) error {
	s.invalidated = append(s.invalidated, brandID)
	return nil
}

func (s *stubDashboardService) MarkDirty(context.Context, ...uint64) error { return nil }

func (s *stubDashboardService) WarmBrand(context.Context, uint64) error { return nil }

func (s *stubDashboardService) IsSynced(context.Context, uint64) (bool, error) { return false, nil }

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(svc service.DashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(&HandlersGroup{AnalyticsHandler: handler.NewAnalyticsHandler(svc)}, config.ServerConfig{}, config.LogstashConfig{})
}

func do(t *testing.T, r http.Handler, method, target string, header map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestPing(t *testing.T) {
	w, env := do(t, newTestRouter(&stubDashboardService{}), http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", env.Message)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestGetDashboardBindsQuery(t *testing.T) {
	svc := &stubDashboardService{}
	w, env := do(t, newTestRouter(svc), http.MethodGet,
		"/api/analytics/dashboard?brand=7&platform=twitter&range=last28&granularity=month&metric=followers&top=5",
		map[string]string{"X-Trace-ID": "trace-1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trace-1", w.Header().Get("X-Trace-ID"))
	assert.Equal(t, 200, env.Code)

	var data dto.DashboardDTO
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(1400), data.Totals.Followers)

	require.NotNil(t, svc.lastQuery)
	assert.Equal(t, dto.DashboardQueryDTO{
		Brand: "7", Platform: "twitter", Metric: "followers", Range: "last28", Granularity: "month", Top: 5,
	}, *svc.lastQuery)
}

func TestGetDashboardRejectsInvalidQuery(t *testing.T) {
	svc := &stubDashboardService{}
	r := newTestRouter(svc)

	for _, target := range []string{
		"/api/analytics/dashboard?granularity=hour",
		"/api/analytics/dashboard?range=yesterday",
		"/api/analytics/dashboard?top=0x",
		"/api/analytics/dashboard?top=500",
	} {
		w, env := do(t, r, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, 400, env.Code, target)
	}
	assert.Nil(t, svc.lastQuery)
}

func TestServiceErrorsMapToEnvelopeCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: from after to", analytics.ErrInvalidRange), 400},
		{service.ErrBrandInvalid, 400},
		{fmt.Errorf("%w: unknown metric", service.ErrParamInvalid), 400},
		{fmt.Errorf("list posts: connection refused"), 500},
	}
	for _, tc := range cases {
		_, env := do(t, newTestRouter(&stubDashboardService{err: tc.err}), http.MethodGet, "/api/analytics/dashboard", nil)
		assert.Equal(t, tc.code, env.Code, tc.err.Error())
	}
}

func TestGetPlatforms(t *testing.T) {
	_, env := do(t, newTestRouter(&stubDashboardService{}), http.MethodGet, "/api/analytics/platforms?brand=all", nil)
	assert.Equal(t, 200, env.Code)

	var cards []dto.PlatformCardDTO
	require.NoError(t, json.Unmarshal(env.Data, &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "all", cards[0].Platform)
}

func TestInvalidateCache(t *testing.T) {
	svc := &stubDashboardService{}
	r := newTestRouter(svc)

	_, env := do(t, r, http.MethodDelete, "/api/analytics/cache/42", nil)
	assert.Equal(t, 200, env.Code)
	_, env = do(t, r, http.MethodDelete, "/api/analytics/cache/all", nil)
	assert.Equal(t, 200, env.Code)
	_, env = do(t, r, http.MethodDelete, "/api/analytics/cache/nope", nil)
	assert.Equal(t, 400, env.Code)

	assert.Equal(t, []uint64{42, 0}, svc.invalidated)
}

func TestCORSPreflight(t *testing.T) {
	w, _ := do(t, newTestRouter(&stubDashboardService{}), http.MethodOptions, "/api/analytics/dashboard",
		map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsAndHealthEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := monitoring.NewMetrics()
	health := monitoring.NewHealthChecker("orbit")
	health.AddCheck("mysql", func(context.Context) error { return nil })
	r := SetupRouter(&HandlersGroup{
		AnalyticsHandler: handler.NewAnalyticsHandler(&stubDashboardService{}),
		Metrics:          metrics,
		Health:           health,
	}, config.ServerConfig{}, config.LogstashConfig{})

	w, _ := do(t, r, http.MethodGet, "/api/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `orbit_http_requests_total{endpoint="/api/ping",method="GET",status="200"} 1`)

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	health.AddCheck("redis", func(context.Context) error { return errors.New("refused") })
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpointAbsentWithoutCollector(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubDashboardService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSWhitelist(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(&HandlersGroup{AnalyticsHandler: handler.NewAnalyticsHandler(&stubDashboardService{})},
		config.ServerConfig{AllowOrigins: []string{"https://app.example.com"}}, config.LogstashConfig{})

	w, _ := do(t, r, http.MethodOptions, "/api/analytics/dashboard", map[string]string{"Origin": "https://evil.example.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w, _ = do(t, r, http.MethodOptions, "/api/analytics/dashboard", map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
