package pool_watch

import (
	"context"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type Service interface {
	CheckPool(ctx context.Context) ([]entities.PoolAlert, error)
}

// PoolWatch периодически сверяет пул доставок и публикует сигналы о его росте.
type PoolWatch struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewPoolWatch(log logger.Logger, service Service, interval time.Duration) *PoolWatch {
	return &PoolWatch{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (p *PoolWatch) TTL() time.Duration {
	return p.interval
}

func (p *PoolWatch) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	alerts, err := p.service.CheckPool(ctxWithTimeout)

	for _, alert := range alerts {
		p.log.With(
			logger.NewField("kind", alert.Kind.String()),
			logger.NewField("count", alert.Count),
			logger.NewField("delta", alert.Delta),
		).Info("pool watch")
	}

	return err
}

func (p *PoolWatch) Info() string {
	return "dispatch pool watch"
}
