package entities

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID                   string
	PatientID            string
	Items                []OrderItem
	RequiresPrescription bool
	PrescriptionRef      *string
	Pricing              Pricing
	DeliveryAddress      string
	Status               OrderStatusType
	StatusHistory        []StatusEntry
	AssignedDriverID     *string
	Delivery             *DeliveryLeg
	RejectionReason      *string
	Unread               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type OrderItem struct {
	MedicineID      string
	MedicineName    string
	PharmacyID      string
	PharmacyName    string
	PharmacyAddress string
	Quantity        int
	UnitPrice       decimal.Decimal
	FulfillmentMode FulfillmentMode
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Pricing struct {
	Subtotal     decimal.Decimal
	DeliveryFees decimal.Decimal
	Total        decimal.Decimal
}

// StatusEntry запись истории заказа. Seq растёт строго монотонно с 1.
type StatusEntry struct {
	Seq    int
	Status OrderStatusType
	At     time.Time
	Note   string
}

type FulfillmentMode string

const (
	FulfillmentDelivery FulfillmentMode = "delivery"
	FulfillmentPickup   FulfillmentMode = "pickup"
)

func (m FulfillmentMode) String() string {
	return string(m)
}

func (m FulfillmentMode) IsValid() bool {
	return m == FulfillmentDelivery || m == FulfillmentPickup
}

type OrderStatusType string

const (
	OrderPending        OrderStatusType = "pending"
	OrderReviewing      OrderStatusType = "reviewing"
	OrderConfirmed      OrderStatusType = "confirmed"
	OrderPreparing      OrderStatusType = "preparing"
	OrderReady          OrderStatusType = "ready"
	OrderOutForDelivery OrderStatusType = "out_for_delivery"
	OrderCompleted      OrderStatusType = "completed"
	OrderDelivered      OrderStatusType = "delivered"
	OrderRejected       OrderStatusType = "rejected"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatusType) IsTerminal() bool {
	return s == OrderCompleted || s == OrderDelivered || s == OrderRejected
}

// InReview статусы, в которых заказ виден в очереди фармацевта.
func (s OrderStatusType) InReview() bool {
	return s == OrderPending || s == OrderReviewing
}

// ready -> completed и ready -> out_for_delivery дополнительно зависят от состава заказа, см. CanTransition.
var orderTransitions = map[OrderStatusType][]OrderStatusType{
	OrderPending:        {OrderReviewing, OrderConfirmed, OrderRejected},
	OrderReviewing:      {OrderConfirmed, OrderRejected},
	OrderConfirmed:      {OrderPreparing},
	OrderPreparing:      {OrderReady},
	OrderReady:          {OrderCompleted, OrderOutForDelivery},
	OrderOutForDelivery: {OrderDelivered},
	OrderCompleted:      {},
	OrderDelivered:      {},
	OrderRejected:       {},
}

// HasDeliveryItems true, если хотя бы одна позиция едет курьером.
// Смешанный заказ считается заказом с доставкой.
func (o *Order) HasDeliveryItems() bool {
	for _, item := range o.Items {
		if item.FulfillmentMode == FulfillmentDelivery {
			return true
		}
	}
	return false
}

func (o *Order) FulfillmentMode() FulfillmentMode {
	if o.HasDeliveryItems() {
		return FulfillmentDelivery
	}
	return FulfillmentPickup
}

func (o *Order) CanTransition(to OrderStatusType) bool {
	if o.Status == OrderReady {
		switch to {
		case OrderCompleted:
			return !o.HasDeliveryItems()
		case OrderOutForDelivery:
			return o.HasDeliveryItems()
		}
	}
	return slices.Contains(orderTransitions[o.Status], to)
}

// Transition переводит заказ в новый статус и дописывает историю.
// При недопустимом переходе заказ не меняется.
func (o *Order) Transition(to OrderStatusType, at time.Time, note string) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, to)
	}
	if !o.CanTransition(to) {
		return fmt.Errorf("%w: order %s cannot move from %s to %s", ErrInvalidTransition, o.ID, o.Status, to)
	}

	o.Status = to
	o.appendHistory(to, at, note)
	o.Unread = true
	return nil
}

// AddNote фиксирует событие без смены статуса: назначение курьера, неудачную доставку и т.п.
func (o *Order) AddNote(at time.Time, note string) {
	o.appendHistory(o.Status, at, note)
	o.Unread = true
}

func (o *Order) appendHistory(status OrderStatusType, at time.Time, note string) {
	seq := 1
	if n := len(o.StatusHistory); n > 0 {
		last := o.StatusHistory[n-1]
		seq = last.Seq + 1
		if at.Before(last.At) {
			at = last.At
		}
	}

	o.StatusHistory = append(o.StatusHistory, StatusEntry{
		Seq:    seq,
		Status: status,
		At:     at,
		Note:   note,
	})
	o.UpdatedAt = at
}

// LastChangedAt время последней записи истории.
func (o *Order) LastChangedAt() time.Time {
	if n := len(o.StatusHistory); n > 0 {
		return o.StatusHistory[n-1].At
	}
	return o.CreatedAt
}

type Checkout struct {
	PatientID       string
	Items           []CheckoutItem
	DeliveryAddress string
}

type CheckoutItem struct {
	MedicineID      string
	PharmacyID      string
	Quantity        int
	FulfillmentMode FulfillmentMode
}

// NewOrder собирает заказ в статусе pending с первой записью истории.
// Позиции уже должны быть разрешены по каталогу.
func NewOrder(id, patientID string, items []OrderItem, deliveryAddress string, perPharmacyFee decimal.Decimal, at time.Time) Order {
	order := Order{
		ID:              id,
		PatientID:       patientID,
		Items:           items,
		DeliveryAddress: deliveryAddress,
		Status:          OrderPending,
		Unread:          true,
		CreatedAt:       at,
	}
	order.Pricing = CalculatePricing(items, perPharmacyFee)
	order.appendHistory(OrderPending, at, "order placed")
	return order
}

// CalculatePricing считает стоимость на стороне сервера:
// сбор за доставку берётся один раз с каждой аптеки, из которой хоть что-то едет курьером.
func CalculatePricing(items []OrderItem, perPharmacyFee decimal.Decimal) Pricing {
	subtotal := decimal.Zero
	deliveryPharmacies := make(map[string]struct{})
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
		if item.FulfillmentMode == FulfillmentDelivery {
			deliveryPharmacies[item.PharmacyID] = struct{}{}
		}
	}

	fees := perPharmacyFee.Mul(decimal.NewFromInt(int64(len(deliveryPharmacies))))
	return Pricing{
		Subtotal:     subtotal,
		DeliveryFees: fees,
		Total:        subtotal.Add(fees),
	}
}

// OrderFilter предикат для выборки заказов. Пустые поля не ограничивают выборку.
type OrderFilter struct {
	Statuses         []OrderStatusType
	DeliveryStatuses []DeliveryStatusType
	DriverID         *string
	PatientID        *string
}

func (f OrderFilter) Match(o *Order) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.Status) {
		return false
	}
	if f.PatientID != nil && o.PatientID != *f.PatientID {
		return false
	}
	if len(f.DeliveryStatuses) > 0 {
		if o.Delivery == nil || !slices.Contains(f.DeliveryStatuses, o.Delivery.Status) {
			return false
		}
	}
	if f.DriverID != nil {
		if o.Delivery == nil || o.Delivery.DriverID == nil || *o.Delivery.DriverID != *f.DriverID {
			return false
		}
	}
	return true
}
