package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/repository"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var orderColumns = []string{
	"id", "patient_id", "requires_prescription", "prescription_ref",
	"subtotal", "delivery_fees", "total", "delivery_address", "status",
	"assigned_driver_id", "rejection_reason", "unread", "created_at", "updated_at",
	"delivery_status", "pickup_locations", "dropoff_location", "delivery_fee", "driver_id",
	"delivery_attempt", "assigned_at", "picked_up_at", "in_transit_at", "delivered_at",
	"failed_at", "failure_reason",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create пишет заказ, позиции и первую запись истории. Вызывается внутри транзакции.
func (r *Repository) Create(ctx context.Context, order entities.Order) error {
	orderDB := FromDomain(&order)

	query, args, err := qb.
		Insert("orders").
		Columns(orderColumns...).
		Values(orderValues(orderDB)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected order repository create error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return fmt.Errorf("%w: %s", repository.ErrOrderExists, order.ID)
		}
		return fmt.Errorf("unexpected order repository create error: %w", err)
	}

	if err := r.insertItems(ctx, FromDomainItems(order.ID, order.Items)); err != nil {
		return err
	}
	return r.appendHistory(ctx, order.ID, order.StatusHistory)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query, args, err := qb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repository.ErrOrderNotFound, id)
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	items, history, err := r.loadDetails(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return ToDomain(orderDB, items[id], history[id]), nil
}

// Save обновляет строку заказа и дописывает новые записи истории. Позиции заказа неизменны.
func (r *Repository) Save(ctx context.Context, order entities.Order) error {
	orderDB := FromDomain(&order)

	query, args, err := qb.
		Update("orders").
		SetMap(map[string]interface{}{
			"prescription_ref":   orderDB.PrescriptionRef,
			"status":             orderDB.Status,
			"assigned_driver_id": orderDB.AssignedDriverID,
			"rejection_reason":   orderDB.RejectionReason,
			"unread":             orderDB.Unread,
			"updated_at":         orderDB.UpdatedAt,
			"delivery_status":    orderDB.Delivery.Status,
			"pickup_locations":   orderDB.Delivery.PickupLocations,
			"dropoff_location":   orderDB.Delivery.DropoffLocation,
			"delivery_fee":       orderDB.Delivery.Fee,
			"driver_id":          orderDB.Delivery.DriverID,
			"delivery_attempt":   orderDB.Delivery.Attempt,
			"assigned_at":        orderDB.Delivery.AssignedAt,
			"picked_up_at":       orderDB.Delivery.PickedUpAt,
			"in_transit_at":      orderDB.Delivery.InTransitAt,
			"delivered_at":       orderDB.Delivery.DeliveredAt,
			"failed_at":          orderDB.Delivery.FailedAt,
			"failure_reason":     orderDB.Delivery.FailureReason,
		}).
		Where(sq.Eq{"id": orderDB.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected order repository save error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		if repository.IsPgConstraintViolation(err, repository.DriverActiveClaimConstraint) {
			return fmt.Errorf("%w: %s", repository.ErrDriverHasActiveDelivery, order.ID)
		}
		return fmt.Errorf("unexpected order repository save error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", repository.ErrOrderNotFound, order.ID)
	}

	return r.appendHistory(ctx, order.ID, order.StatusHistory)
}

func (r *Repository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	builder := qb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at", "id")

	if len(filter.Statuses) > 0 {
		builder = builder.Where(sq.Eq{"status": statusStrings(filter.Statuses)})
	}
	if len(filter.DeliveryStatuses) > 0 {
		builder = builder.Where(sq.Eq{"delivery_status": statusStrings(filter.DeliveryStatuses)})
	}
	if filter.DriverID != nil {
		builder = builder.Where(sq.Eq{"driver_id": *filter.DriverID})
	}
	if filter.PatientID != nil {
		builder = builder.Where(sq.Eq{"patient_id": *filter.PatientID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]*OrderDB, 0, 8)
	ids := make([]string, 0, 8)
	for rows.Next() {
		orderDB, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list error: %w", err)
		}
		orderModels = append(orderModels, orderDB)
		ids = append(ids, orderDB.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	orders := make([]entities.Order, 0, len(orderModels))
	if len(ids) == 0 {
		return orders, nil
	}

	items, history, err := r.loadDetails(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, orderDB := range orderModels {
		orders = append(orders, *ToDomain(orderDB, items[orderDB.ID], history[orderDB.ID]))
	}
	return orders, nil
}

// ClaimDelivery условный UPDATE по статусу available. Второй активный захват того же
// курьера отсекает частичный уникальный индекс.
func (r *Repository) ClaimDelivery(ctx context.Context, orderID, driverID string, at time.Time) error {
	query := `
		UPDATE orders
		SET delivery_status = 'assigned',
			driver_id = $2,
			assigned_driver_id = $2,
			assigned_at = $3,
			updated_at = $3
		WHERE id = $1 AND delivery_status = 'available'
	`

	result, err := r.querier.Exec(ctx, query, orderID, driverID, at)
	if err != nil {
		if repository.IsPgConstraintViolation(err, repository.DriverActiveClaimConstraint) {
			return fmt.Errorf("%w: %s", repository.ErrDriverHasActiveDelivery, driverID)
		}
		return fmt.Errorf("unexpected order repository claim error: %w", err)
	}
	if result.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	err = r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("unexpected order repository claim error: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", repository.ErrOrderNotFound, orderID)
	}
	return fmt.Errorf("%w: %s", repository.ErrDeliveryNotAvailable, orderID)
}

func (r *Repository) insertItems(ctx context.Context, items []OrderItemDB) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.
		Insert("order_items").
		Columns(
			"order_id", "position", "medicine_id", "medicine_name", "pharmacy_id",
			"pharmacy_name", "pharmacy_address", "quantity", "unit_price", "fulfillment_mode",
		)
	for _, item := range items {
		builder = builder.Values(
			item.OrderID, item.Position, item.MedicineID, item.MedicineName, item.PharmacyID,
			item.PharmacyName, item.PharmacyAddress, item.Quantity, item.UnitPrice, item.FulfillmentMode,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("unexpected order repository insert items error: %w", err)
	}
	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected order repository insert items error: %w", err)
	}
	return nil
}

// appendHistory история только дописывается: уже сохранённые seq пропускаются.
func (r *Repository) appendHistory(ctx context.Context, orderID string, history []entities.StatusEntry) error {
	if len(history) == 0 {
		return nil
	}

	builder := qb.
		Insert("order_status_history").
		Columns("order_id", "seq", "status", "at", "note").
		Suffix("ON CONFLICT (order_id, seq) DO NOTHING")
	for _, entry := range history {
		builder = builder.Values(orderID, entry.Seq, entry.Status.String(), entry.At, entry.Note)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("unexpected order repository append history error: %w", err)
	}
	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected order repository append history error: %w", err)
	}
	return nil
}

func (r *Repository) loadDetails(
	ctx context.Context,
	ids []string,
) (map[string][]OrderItemDB, map[string][]StatusEntryDB, error) {
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	history, err := r.loadHistory(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return items, history, nil
}

func (r *Repository) loadItems(ctx context.Context, ids []string) (map[string][]OrderItemDB, error) {
	query, args, err := qb.
		Select(
			"order_id", "position", "medicine_id", "medicine_name", "pharmacy_id",
			"pharmacy_name", "pharmacy_address", "quantity", "unit_price", "fulfillment_mode",
		).
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository load items error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository load items error: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]OrderItemDB, len(ids))
	for rows.Next() {
		var item OrderItemDB
		err := rows.Scan(
			&item.OrderID,
			&item.Position,
			&item.MedicineID,
			&item.MedicineName,
			&item.PharmacyID,
			&item.PharmacyName,
			&item.PharmacyAddress,
			&item.Quantity,
			&item.UnitPrice,
			&item.FulfillmentMode,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository load items error: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository load items error: %w", err)
	}
	return items, nil
}

func (r *Repository) loadHistory(ctx context.Context, ids []string) (map[string][]StatusEntryDB, error) {
	query, args, err := qb.
		Select("order_id", "seq", "status", "at", "note").
		From("order_status_history").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "seq").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository load history error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository load history error: %w", err)
	}
	defer rows.Close()

	history := make(map[string][]StatusEntryDB, len(ids))
	for rows.Next() {
		var entry StatusEntryDB
		if err := rows.Scan(&entry.OrderID, &entry.Seq, &entry.Status, &entry.At, &entry.Note); err != nil {
			return nil, fmt.Errorf("unexpected order repository load history error: %w", err)
		}
		history[entry.OrderID] = append(history[entry.OrderID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository load history error: %w", err)
	}
	return history, nil
}

func scanOrder(row pgx.Row) (*OrderDB, error) {
	var o OrderDB
	err := row.Scan(
		&o.ID,
		&o.PatientID,
		&o.RequiresPrescription,
		&o.PrescriptionRef,
		&o.Subtotal,
		&o.DeliveryFees,
		&o.Total,
		&o.DeliveryAddress,
		&o.Status,
		&o.AssignedDriverID,
		&o.RejectionReason,
		&o.Unread,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.Delivery.Status,
		&o.Delivery.PickupLocations,
		&o.Delivery.DropoffLocation,
		&o.Delivery.Fee,
		&o.Delivery.DriverID,
		&o.Delivery.Attempt,
		&o.Delivery.AssignedAt,
		&o.Delivery.PickedUpAt,
		&o.Delivery.InTransitAt,
		&o.Delivery.DeliveredAt,
		&o.Delivery.FailedAt,
		&o.Delivery.FailureReason,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func orderValues(o *OrderDB) []interface{} {
	return []interface{}{
		o.ID, o.PatientID, o.RequiresPrescription, o.PrescriptionRef,
		o.Subtotal, o.DeliveryFees, o.Total, o.DeliveryAddress, o.Status,
		o.AssignedDriverID, o.RejectionReason, o.Unread, o.CreatedAt, o.UpdatedAt,
		o.Delivery.Status, o.Delivery.PickupLocations, o.Delivery.DropoffLocation, o.Delivery.Fee, o.Delivery.DriverID,
		o.Delivery.Attempt, o.Delivery.AssignedAt, o.Delivery.PickedUpAt, o.Delivery.InTransitAt, o.Delivery.DeliveredAt,
		o.Delivery.FailedAt, o.Delivery.FailureReason,
	}
}

func statusStrings[T ~string](statuses []T) []string {
	result := make([]string, len(statuses))
	for i, status := range statuses {
		result[i] = string(status)
	}
	return result
}
