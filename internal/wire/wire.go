package wire

import (
	"Orbit/internal/api"
	"Orbit/internal/api/config"
	"Orbit/internal/api/handler"
	"Orbit/internal/job"
	"Orbit/internal/pkg/cron"
	"Orbit/internal/pkg/kafka"
	"Orbit/internal/pkg/monitoring"
	"Orbit/internal/pkg/redis"
	"Orbit/internal/repository"
	"Orbit/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer top level components main runs
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager // nil when the canal consumer is disabled
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	postAnalyticsRepo := repository.NewPostAnalyticsRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)

	engine, err := service.NewEngine(&cfg.Dashboard)
	if err != nil {
		return nil, err
	}
	metrics := monitoring.NewMetrics()
	dashboardService := service.NewDashboardService(postRepo, postAnalyticsRepo, socialAccountRepo, engine, &cfg.Dashboard, metrics)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	health := monitoring.NewHealthChecker("orbit")
	health.AddCheck("mysql", sqlDB.PingContext)
	health.AddCheck("redis", redis.Ping)

	handlers := &api.HandlersGroup{
		AnalyticsHandler: handler.NewAnalyticsHandler(dashboardService),
		Metrics:          metrics,
		Health:           health,
	}
	router := api.SetupRouter(handlers, cfg.Server, cfg.Logstash)

	cronMgr := cron.NewCronManager(cfg.Cron.DashboardWarm, job.NewDashboardWarmJob(dashboardService, metrics))

	var kafkaMgr *kafka.ConsumerManager
	if cfg.KafkaCanalConsumer.Enable {
		kafkaMgr, err = kafka.NewConsumerManager(cfg, dashboardService, postRepo, metrics)
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
