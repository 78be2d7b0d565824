package kafka

import (
	"Orbit/internal/pkg/logger"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	batchSize     = 32
	batchTimeout  = 1 * time.Second
	maxAttempts   = 5
	retryInterval = 100 * time.Millisecond
	maxRetryDelay = 5 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch buffers messages and flushes on size or timeout
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session.Context(), session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session.Context(), session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session.Context(), session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// offsetMarker subset of sarama.ConsumerGroupSession used to commit a batch
type offsetMarker interface {
	MarkMessage(msg *sarama.ConsumerMessage, metadata string)
}

// processBatch runs logic concurrently over a batch and marks the last offset.
// Messages that keep failing are dropped after maxAttempts, a stale cache expires on its own TTL.
func processBatch(ctx context.Context, marker offsetMarker, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)
		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			runWithRetry(logger.WithTraceID(ctx, uuid.New().String()), m, logic)
		}(msg)
	}
	wg.Wait()

	if len(messages) > 0 {
		marker.MarkMessage(messages[len(messages)-1], "")
	}
}

func runWithRetry(ctx context.Context, m *sarama.ConsumerMessage, logic LogicFunc) {
	delay := retryInterval
	for attempt := 1; ; attempt++ {
		err := logic(ctx, m)
		if err == nil {
			return
		}
		if errors.Is(err, ErrTableNotWatched) || errors.Is(err, ErrEmptyData) {
			log.DebugContext(ctx, "skip canal message", "offset", m.Offset, "err", err)
			return
		}
		if attempt >= maxAttempts {
			log.ErrorContext(ctx, "drop canal message", "topic", m.Topic, "offset", m.Offset, "err", err)
			return
		}
		log.WarnContext(ctx, "process message error", "attempt", attempt, "err", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, maxRetryDelay)
	}
}
