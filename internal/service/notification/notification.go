package notification

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/metrics"
	"github.com/google/uuid"
)

// maxPendingAlerts сколько неотправленных сигналов держим, пока публикация недоступна.
const maxPendingAlerts = 100

// Service сравнивает текущий размер пула с предыдущим наблюдением
// и публикует сигналы о росте. Первое наблюдение только запоминается.
// Сигналы, которые не удалось отправить, уходят в следующий раз с теми же ID.
type Service struct {
	pool      PoolCounter
	publisher Publisher

	mu      sync.Mutex
	last    *entities.PoolStats
	pending []entities.PoolAlert
}

func New(pool PoolCounter, publisher Publisher) *Service {
	return &Service{
		pool:      pool,
		publisher: publisher,
	}
}

func (s *Service) CheckPool(ctx context.Context) ([]entities.PoolAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.pool.CountPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("count pool: %w", err)
	}

	metrics.DispatchPoolSize.WithLabelValues(entities.DeliveryAvailable.String()).Set(float64(stats.Available))
	metrics.DispatchPoolSize.WithLabelValues(entities.DeliveryFailed.String()).Set(float64(stats.Failed))

	if s.last == nil {
		s.last = &stats
		return nil, nil
	}

	alerts := slices.Concat(s.pending, diff(*s.last, stats, time.Now().UTC()))
	s.last = &stats
	s.pending = nil
	if len(alerts) == 0 {
		return nil, nil
	}

	if err := s.publisher.Publish(ctx, alerts); err != nil {
		// часть пачки могла уйти, повтор с теми же ID потребители отбросят
		if len(alerts) > maxPendingAlerts {
			alerts = alerts[len(alerts)-maxPendingAlerts:]
		}
		s.pending = alerts
		return nil, fmt.Errorf("publish pool alerts: %w", err)
	}

	for _, alert := range alerts {
		metrics.PoolAlertsTotal.WithLabelValues(alert.Kind.String()).Inc()
	}
	return alerts, nil
}

func diff(prev, cur entities.PoolStats, at time.Time) []entities.PoolAlert {
	var alerts []entities.PoolAlert
	if delta := cur.Available - prev.Available; delta > 0 {
		alerts = append(alerts, entities.PoolAlert{
			ID:    uuid.NewString(),
			Kind:  entities.PoolAlertDeliveriesAvailable,
			Count: cur.Available,
			Delta: delta,
			At:    at,
		})
	}
	if delta := cur.Failed - prev.Failed; delta > 0 {
		alerts = append(alerts, entities.PoolAlert{
			ID:    uuid.NewString(),
			Kind:  entities.PoolAlertDeliveriesFailed,
			Count: cur.Failed,
			Delta: delta,
			At:    at,
		})
	}
	return alerts
}
