package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/repository"
	"fulfillment/pkg/kvstore"
)

const orderPrefix = "order/"

func orderKey(id string) []byte {
	return []byte(orderPrefix + id)
}

// OrderRepository хранит заказ целиком одной записью. Выборки делаются полным проходом
// по префиксу с фильтром в памяти.
type OrderRepository struct {
	store Store
}

func NewOrderRepository(store Store) *OrderRepository {
	return &OrderRepository{
		store: store,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order entities.Order) error {
	_, err := r.store.Get(ctx, orderKey(order.ID))
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", repository.ErrOrderExists, order.ID)
	case !errors.Is(err, kvstore.ErrNotFound):
		return fmt.Errorf("unexpected kv order repository create error: %w", err)
	}

	return r.put(ctx, &order)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	raw, err := r.store.Get(ctx, orderKey(id))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", repository.ErrOrderNotFound, id)
		}
		return nil, fmt.Errorf("unexpected kv order repository get error: %w", err)
	}

	var record OrderRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", id, err)
	}
	return ToDomainOrder(&record), nil
}

func (r *OrderRepository) Save(ctx context.Context, order entities.Order) error {
	if _, err := r.GetByID(ctx, order.ID); err != nil {
		return err
	}
	return r.put(ctx, &order)
}

func (r *OrderRepository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	orders := make([]entities.Order, 0)
	err := r.store.Scan(ctx, []byte(orderPrefix), func(key, value []byte) error {
		var record OrderRecord
		if err := json.Unmarshal(value, &record); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}

		order := ToDomainOrder(&record)
		if filter.Match(order) {
			orders = append(orders, *order)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unexpected kv order repository list error: %w", err)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

// ClaimDelivery условная запись: available -> assigned. Чтения внутри транзакции badger
// попадают в её read set, поэтому параллельный захват той же доставки или второй доставки
// тем же курьером завершится конфликтом при коммите.
func (r *OrderRepository) ClaimDelivery(ctx context.Context, orderID, driverID string, at time.Time) error {
	order, err := r.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Delivery == nil || order.Delivery.Status != entities.DeliveryAvailable {
		return fmt.Errorf("%w: %s", repository.ErrDeliveryNotAvailable, orderID)
	}

	active, err := r.List(ctx, entities.OrderFilter{
		DeliveryStatuses: entities.DriverBoundStatuses,
		DriverID:         &driverID,
	})
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return fmt.Errorf("%w: %s", repository.ErrDriverHasActiveDelivery, driverID)
	}

	order.Delivery.Status = entities.DeliveryAssigned
	order.Delivery.DriverID = &driverID
	order.Delivery.AssignedAt = &at
	order.AssignedDriverID = &driverID
	return r.put(ctx, order)
}

func (r *OrderRepository) put(ctx context.Context, order *entities.Order) error {
	raw, err := json.Marshal(FromDomainOrder(order))
	if err != nil {
		return fmt.Errorf("encode order %s: %w", order.ID, err)
	}
	if err := r.store.Set(ctx, orderKey(order.ID), raw); err != nil {
		return fmt.Errorf("unexpected kv order repository put error: %w", err)
	}
	return nil
}
