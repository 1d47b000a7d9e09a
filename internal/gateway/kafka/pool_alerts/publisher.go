package pool_alerts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/entities"
	retrierconfig "fulfillment/pkg/retrier"
	"fulfillment/pkg/retrier/backoff_adapter"
	"github.com/IBM/sarama"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 1 * time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// Publisher пишет сигналы пула в kafka. Ключ сообщения - id сигнала,
// потребители по нему отбрасывают дубли.
type Publisher struct {
	producer producer
	retrier  retrier
	topic    string
}

func New(producer producer, topic string) *Publisher {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &Publisher{
		producer: producer,
		retrier:  backoff_adapter.New(retryConfig),
		topic:    topic,
	}
}

func (p *Publisher) Publish(ctx context.Context, alerts []entities.PoolAlert) error {
	for _, alert := range alerts {
		value, err := json.Marshal(fromDomain(alert))
		if err != nil {
			return fmt.Errorf("marshal alert %s: %w", alert.ID, err)
		}

		msg := &sarama.ProducerMessage{
			Topic:     p.topic,
			Key:       sarama.StringEncoder(alert.ID),
			Value:     sarama.ByteEncoder(value),
			Timestamp: alert.At,
		}

		err = p.executeWithMetrics(ctx, func(context.Context) error {
			_, _, err := p.producer.SendMessage(msg)
			return err
		})
		if err != nil {
			return fmt.Errorf("publish alert %s to %s: %w", alert.ID, p.topic, err)
		}
	}
	return nil
}

func isRetryable(err error) bool {
	return errors.Is(err, sarama.ErrOutOfBrokers) ||
		errors.Is(err, sarama.ErrNotLeaderForPartition) ||
		errors.Is(err, sarama.ErrLeaderNotAvailable) ||
		errors.Is(err, sarama.ErrNotEnoughReplicas) ||
		errors.Is(err, sarama.ErrRequestTimedOut)
}

func (p *Publisher) executeWithMetrics(ctx context.Context, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := p.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	result := "ok"
	if err != nil {
		result = "error"
	}
	PublishDuration.WithLabelValues(p.topic, result).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		PublishRetriesTotal.WithLabelValues(p.topic, result).Inc()
	}

	return err
}
