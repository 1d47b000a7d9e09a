package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/metrics"
)

type Dispatch struct {
	repository Repository
	txManager  TxManager
	retrier    Retrier
}

func New(
	repository Repository,
	txManager TxManager,
	retrier Retrier,
) *Dispatch {
	return &Dispatch{
		repository: repository,
		txManager:  txManager,
		retrier:    retrier,
	}
}

// ListAvailable пул свободных доставок. Курьеру с активной доставкой пул не показывается.
func (d *Dispatch) ListAvailable(ctx context.Context, driverID string) ([]entities.DeliveryClaim, error) {
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}

	active, err := d.activeOrders(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if len(active) > 0 {
		return []entities.DeliveryClaim{}, nil
	}

	orders, err := d.repository.List(ctx, entities.OrderFilter{
		DeliveryStatuses: []entities.DeliveryStatusType{entities.DeliveryAvailable},
	})
	if err != nil {
		return nil, fmt.Errorf("list available deliveries: %w", err)
	}
	return entities.DeliveryClaims(orders), nil
}

func (d *Dispatch) GetActiveClaim(ctx context.Context, driverID string) (*entities.DeliveryClaim, error) {
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}

	active, err := d.activeOrders(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, ErrNoActiveClaim
	}

	claim, _ := active[0].DeliveryClaim()
	return claim, nil
}

// Claim закрепляет доставку за курьером. Сама смена статуса делается условной записью
// в хранилище, проигравший гонку после повтора получает ErrDeliveryNotAvailable.
func (d *Dispatch) Claim(ctx context.Context, driverID, deliveryID string) (*entities.DeliveryClaim, error) {
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}
	if !isValidID(deliveryID) {
		return nil, ErrInvalidDeliveryID
	}

	var claim *entities.DeliveryClaim
	err := d.inTx(ctx, func(ctx context.Context) error {
		order, err := d.getDelivery(ctx, deliveryID)
		if err != nil {
			return err
		}
		if order.Delivery.Status != entities.DeliveryAvailable {
			return fmt.Errorf("%w: %s is %s", ErrDeliveryNotAvailable, deliveryID, order.Delivery.Status)
		}

		active, err := d.activeOrders(ctx, driverID)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return fmt.Errorf("%w: %s", ErrDriverBusy, active[0].ID)
		}

		assignedAt := time.Now().UTC()
		if err := d.repository.ClaimDelivery(ctx, deliveryID, driverID, assignedAt); err != nil {
			return err
		}

		order.Assign(driverID, assignedAt)
		if err := d.repository.Save(ctx, *order); err != nil {
			return fmt.Errorf("save order: %w", err)
		}

		claim, _ = order.DeliveryClaim()
		return nil
	})
	metrics.DeliveryClaimsTotal.WithLabelValues(claimOutcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	metrics.DeliveryTransitionsTotal.WithLabelValues(entities.DeliveryAssigned.String()).Inc()
	return claim, nil
}

// Advance шаг вперёд по доставке. Двигать может только курьер, за которым она закреплена.
func (d *Dispatch) Advance(ctx context.Context, driverID, deliveryID string, to entities.DeliveryStatusType) (*entities.DeliveryClaim, error) {
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}
	if !isValidID(deliveryID) {
		return nil, ErrInvalidDeliveryID
	}
	if !to.IsValid() {
		return nil, ErrInvalidStatus
	}

	claim, err := d.mutateClaim(ctx, driverID, deliveryID, func(order *entities.Order) error {
		if !order.Delivery.HeldBy(driverID) {
			if order.Delivery.Status.IsDriverBound() {
				return ErrNotClaimOwner
			}
			return fmt.Errorf("%w: delivery %s is %s", entities.ErrInvalidTransition, deliveryID, order.Delivery.Status)
		}
		return order.AdvanceDelivery(to, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	metrics.DeliveryTransitionsTotal.WithLabelValues(to.String()).Inc()
	return claim, nil
}

// Fail закрывает доставку неудачей и освобождает курьера. Заказ остаётся в своём статусе
// до решения фармацевта.
func (d *Dispatch) Fail(ctx context.Context, driverID, deliveryID, reason string) (*entities.DeliveryClaim, error) {
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}
	if !isValidID(deliveryID) {
		return nil, ErrInvalidDeliveryID
	}
	if !isValidFailureReason(reason) {
		return nil, ErrEmptyFailureReason
	}
	reason = strings.TrimSpace(reason)

	claim, err := d.mutateClaim(ctx, driverID, deliveryID, func(order *entities.Order) error {
		if order.Delivery.Status.IsDriverBound() && !order.Delivery.HeldBy(driverID) {
			return ErrNotClaimOwner
		}
		return order.FailDelivery(reason, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	metrics.DeliveryTransitionsTotal.WithLabelValues(entities.DeliveryFailed.String()).Inc()
	return claim, nil
}

// CountPool размеры пула для слоя уведомлений.
func (d *Dispatch) CountPool(ctx context.Context) (entities.PoolStats, error) {
	available, err := d.repository.List(ctx, entities.OrderFilter{
		DeliveryStatuses: []entities.DeliveryStatusType{entities.DeliveryAvailable},
	})
	if err != nil {
		return entities.PoolStats{}, fmt.Errorf("count available deliveries: %w", err)
	}

	failed, err := d.repository.List(ctx, entities.OrderFilter{
		DeliveryStatuses: []entities.DeliveryStatusType{entities.DeliveryFailed},
	})
	if err != nil {
		return entities.PoolStats{}, fmt.Errorf("count failed deliveries: %w", err)
	}

	return entities.PoolStats{
		Available: len(available),
		Failed:    len(failed),
	}, nil
}

func (d *Dispatch) mutateClaim(
	ctx context.Context,
	driverID, deliveryID string,
	fn func(order *entities.Order) error,
) (*entities.DeliveryClaim, error) {
	var (
		claim    *entities.DeliveryClaim
		from, to entities.OrderStatusType
	)
	err := d.inTx(ctx, func(ctx context.Context) error {
		order, err := d.getDelivery(ctx, deliveryID)
		if err != nil {
			return err
		}

		from = order.Status
		if err := fn(order); err != nil {
			return err
		}

		if err := d.repository.Save(ctx, *order); err != nil {
			return fmt.Errorf("save order: %w", err)
		}

		to = order.Status
		claim, _ = order.DeliveryClaim()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if to != from {
		metrics.OrderTransitionsTotal.WithLabelValues(to.String()).Inc()
	}
	return claim, nil
}

func (d *Dispatch) getDelivery(ctx context.Context, deliveryID string) (*entities.Order, error) {
	order, err := d.repository.GetByID(ctx, deliveryID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDeliveryNotFound, deliveryID)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order.Delivery == nil {
		return nil, fmt.Errorf("%w: order %s has no delivery", ErrDeliveryNotFound, deliveryID)
	}
	return order, nil
}

func (d *Dispatch) activeOrders(ctx context.Context, driverID string) ([]entities.Order, error) {
	orders, err := d.repository.List(ctx, entities.OrderFilter{
		DeliveryStatuses: entities.DriverBoundStatuses,
		DriverID:         &driverID,
	})
	if err != nil {
		return nil, fmt.Errorf("list driver deliveries: %w", err)
	}
	return orders, nil
}

func (d *Dispatch) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return d.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return d.txManager.Do(ctx, fn)
	})
}

func claimOutcome(err error) string {
	switch {
	case err == nil:
		return "claimed"
	case errors.Is(err, entities.ErrAlreadyAssigned):
		return "already_assigned"
	case errors.Is(err, entities.ErrDriverBusy):
		return "driver_busy"
	case errors.Is(err, entities.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
