package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/metrics"
)

type Config struct {
	MaxDeliveryAttempts int
}

type Review struct {
	repository          Repository
	txManager           TxManager
	retrier             Retrier
	maxDeliveryAttempts int
}

func New(
	repository Repository,
	txManager TxManager,
	retrier Retrier,
	config Config,
) *Review {
	return &Review{
		repository:          repository,
		txManager:           txManager,
		retrier:             retrier,
		maxDeliveryAttempts: config.MaxDeliveryAttempts,
	}
}

var defaultQueueStatuses = []entities.OrderStatusType{entities.OrderPending, entities.OrderReviewing}

// ListByStatus очередь фармацевта. Пустой набор статусов означает pending и reviewing.
func (r *Review) ListByStatus(ctx context.Context, statuses []entities.OrderStatusType) ([]entities.ReviewItem, error) {
	if err := validateStatuses(statuses); err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		statuses = defaultQueueStatuses
	}

	orders, err := r.repository.List(ctx, entities.OrderFilter{Statuses: statuses})
	if err != nil {
		return nil, fmt.Errorf("list orders for review: %w", err)
	}

	items := make([]entities.ReviewItem, 0, len(orders))
	for i := range orders {
		items = append(items, orders[i].ReviewItem())
	}
	return items, nil
}

// StartReview фармацевт открыл заказ.
func (r *Review) StartReview(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	return r.mutate(ctx, orderID, func(order *entities.Order) error {
		return order.Transition(entities.OrderReviewing, time.Now().UTC(), "review started")
	})
}

// Accept подтверждает заказ. Заказ с доставкой в той же транзакции попадает в пул курьеров.
func (r *Review) Accept(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	return r.mutate(ctx, orderID, func(order *entities.Order) error {
		if order.Status.InReview() && order.PrescriptionPending() {
			return ErrPrescriptionMissing
		}
		if err := order.Transition(entities.OrderConfirmed, time.Now().UTC(), "accepted by pharmacist"); err != nil {
			return err
		}
		if order.HasDeliveryItems() {
			order.Delivery = entities.NewDeliveryLeg(order)
		}
		return nil
	})
}

func (r *Review) Reject(ctx context.Context, orderID, reason string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !isValidRejectionReason(reason) {
		return nil, ErrRejectionReasonTooShort
	}
	reason = strings.TrimSpace(reason)

	return r.mutate(ctx, orderID, func(order *entities.Order) error {
		if err := order.Transition(entities.OrderRejected, time.Now().UTC(), reason); err != nil {
			return err
		}
		order.RejectionReason = &reason
		if order.Delivery != nil && order.Delivery.Status == entities.DeliveryAvailable {
			order.Delivery = nil
		}
		return nil
	})
}

// ListFailedDeliveries доставки, которые сорвались и ждут решения.
func (r *Review) ListFailedDeliveries(ctx context.Context) ([]entities.DeliveryClaim, error) {
	orders, err := r.repository.List(ctx, entities.OrderFilter{
		DeliveryStatuses: []entities.DeliveryStatusType{entities.DeliveryFailed},
	})
	if err != nil {
		return nil, fmt.Errorf("list failed deliveries: %w", err)
	}
	return entities.DeliveryClaims(orders), nil
}

// Redispatch возвращает сорвавшуюся доставку в пул, пока не исчерпан лимит попыток.
func (r *Review) Redispatch(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	return r.mutate(ctx, orderID, func(order *entities.Order) error {
		if order.Delivery != nil && order.Delivery.Status == entities.DeliveryFailed && order.Delivery.Attempt >= r.maxDeliveryAttempts {
			return fmt.Errorf("%w: %d of %d", ErrRedispatchLimitReached, order.Delivery.Attempt, r.maxDeliveryAttempts)
		}
		return order.Redispatch(time.Now().UTC())
	})
}

func (r *Review) mutate(ctx context.Context, orderID string, fn func(order *entities.Order) error) (*entities.Order, error) {
	var (
		result *entities.Order
		from   entities.OrderStatusType
	)
	err := r.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return r.txManager.Do(ctx, func(ctx context.Context) error {
			order, err := r.repository.GetByID(ctx, orderID)
			if err != nil {
				return err
			}

			from = order.Status
			if err := fn(order); err != nil {
				return err
			}

			if err := r.repository.Save(ctx, *order); err != nil {
				return fmt.Errorf("save order: %w", err)
			}
			result = order
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if result.Status != from {
		metrics.OrderTransitionsTotal.WithLabelValues(result.Status.String()).Inc()
	}
	return result, nil
}
