package api

import (
	"Orbit/internal/api/handler"
	"Orbit/internal/pkg/monitoring"
)

// HandlersGroup initialized handlers mounted by SetupRouter
type HandlersGroup struct {
	AnalyticsHandler *handler.AnalyticsHandler
	Metrics          *monitoring.Metrics       // optional, exposes /api/metrics
	Health           *monitoring.HealthChecker // optional, exposes /api/health
}
