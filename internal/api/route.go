package api

import (
	"Orbit/internal/api/config"
	"Orbit/internal/api/middleware"
	"Orbit/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, serverCfg config.ServerConfig, logCfg config.LogstashConfig) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware("/api/metrics", "/api/health"))
	r.Use(middleware.CORSMiddleware(serverCfg.AllowOrigins))
	logger.SetupGin(r, logCfg.Index, logCfg.Token)
	if group.Metrics != nil {
		r.Use(group.Metrics.Middleware())
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		if group.Metrics != nil {
			apiGroup.GET("/metrics", group.Metrics.Handler())
		}
		if group.Health != nil {
			apiGroup.GET("/health", group.Health.Handler())
		}

		analyticsGroup := apiGroup.Group("/analytics")
		{
			analyticsGroup.GET("/dashboard", group.AnalyticsHandler.GetDashboard)
			analyticsGroup.GET("/platforms", group.AnalyticsHandler.GetPlatforms)
			analyticsGroup.DELETE("/cache/:brand_id", group.AnalyticsHandler.InvalidateCache)
		}
	}

	return r
}
