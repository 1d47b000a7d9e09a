package pool_alerts

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

// Publisher пишет сигналы пула в лог. Используется, когда kafka не настроена.
type Publisher struct {
	log logger.Logger
}

func New(log logger.Logger) *Publisher {
	return &Publisher{
		log: log.With(logger.NewField("component", "pool_alerts")),
	}
}

func (p *Publisher) Publish(_ context.Context, alerts []entities.PoolAlert) error {
	for _, alert := range alerts {
		p.log.Info("dispatch pool alert",
			logger.NewField("alert_id", alert.ID),
			logger.NewField("kind", alert.Kind.String()),
			logger.NewField("count", alert.Count),
			logger.NewField("delta", alert.Delta),
			logger.NewField("at", alert.At),
		)
	}
	return nil
}
