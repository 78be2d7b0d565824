package kafka

import (
	"Orbit/internal/api/config"
	"Orbit/internal/pkg/monitoring"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager owns the canal consumer group
type ConsumerManager struct {
	topic            string
	dashboardGroup   sarama.ConsumerGroup
	dashboardHandler sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg *config.Config, cache BrandCacheInvalidator, posts PostBrandResolver, metrics *monitoring.Metrics) (*ConsumerManager, error) {
	group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaCanalConsumer.GroupID, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	return &ConsumerManager{
		topic:            cfg.KafkaCanalConsumer.Topic,
		dashboardGroup:   group,
		dashboardHandler: NewDashboardHandler(cache, posts, metrics),
	}, nil
}

// Start consumes until ctx is cancelled
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.dashboardGroup.Errors() {
			log.Error("Error from consumer group", "err", err)
		}
	}()

	go func() {
		log.Info("Dashboard canal consumer started", "topic", m.topic)
		for {
			if err := m.dashboardGroup.Consume(ctx, []string{m.topic}, m.dashboardHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.dashboardGroup.Close(); err != nil {
		log.Error("Failed to close dashboard consumer", "err", err)
	}
	return nil
}
