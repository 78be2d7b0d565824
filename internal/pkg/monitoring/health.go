package monitoring

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

const checkTimeout = 3 * time.Second

// HealthStatus aggregated result served by /api/health
type HealthStatus struct {
	Status    string                 `json:"status"`
	Service   string                 `json:"service"`
	Timestamp int64                  `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Pinger anything with a context aware liveness probe
type Pinger func(ctx context.Context) error

type HealthChecker struct {
	service string
	checks  map[string]Pinger
}

func NewHealthChecker(service string) *HealthChecker {
	return &HealthChecker{
		service: service,
		checks:  make(map[string]Pinger),
	}
}

func (hc *HealthChecker) AddCheck(name string, ping Pinger) {
	hc.checks[name] = ping
}

// CheckHealth runs every check, one failure marks the service unhealthy
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    StatusHealthy,
		Service:   hc.service,
		Timestamp: time.Now().Unix(),
		Checks:    make(map[string]CheckResult, len(hc.checks)),
	}

	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		start := time.Now()
		err := hc.checks[name](checkCtx)
		cancel()

		result := CheckResult{Status: StatusHealthy, Latency: time.Since(start).String()}
		if err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			status.Status = StatusUnhealthy
		}
		status.Checks[name] = result
	}
	return status
}

// Handler 200 when healthy, 503 otherwise
func (hc *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		health := hc.CheckHealth(c.Request.Context())
		code := http.StatusOK
		if health.Status != StatusHealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, health)
	}
}
