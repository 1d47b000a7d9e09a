package entities

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryLeg курьерская часть заказа. Появляется при подтверждении заказа с доставкой.
type DeliveryLeg struct {
	Status          DeliveryStatusType
	PickupLocations []string
	DropoffLocation string
	Fee             decimal.Decimal
	DriverID        *string
	Attempt         int
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	InTransitAt     *time.Time
	DeliveredAt     *time.Time
	FailedAt        *time.Time
	FailureReason   *string
}

type DeliveryStatusType string

const (
	DeliveryAvailable DeliveryStatusType = "available"
	DeliveryAssigned  DeliveryStatusType = "assigned"
	DeliveryPickedUp  DeliveryStatusType = "picked_up"
	DeliveryInTransit DeliveryStatusType = "in_transit"
	DeliveryDelivered DeliveryStatusType = "delivered"
	DeliveryFailed    DeliveryStatusType = "failed"
)

func (s DeliveryStatusType) String() string {
	return string(s)
}

func (s DeliveryStatusType) IsValid() bool {
	switch s {
	case DeliveryAvailable, DeliveryAssigned, DeliveryPickedUp, DeliveryInTransit, DeliveryDelivered, DeliveryFailed:
		return true
	}
	return false
}

// IsDriverBound статусы, в которых доставка закреплена за курьером.
func (s DeliveryStatusType) IsDriverBound() bool {
	return s == DeliveryAssigned || s == DeliveryPickedUp || s == DeliveryInTransit
}

func (s DeliveryStatusType) IsTerminal() bool {
	return s == DeliveryDelivered || s == DeliveryFailed
}

// DriverBoundStatuses для выборок активной доставки курьера.
var DriverBoundStatuses = []DeliveryStatusType{DeliveryAssigned, DeliveryPickedUp, DeliveryInTransit}

var deliveryAdvances = map[DeliveryStatusType]DeliveryStatusType{
	DeliveryAssigned:  DeliveryPickedUp,
	DeliveryPickedUp:  DeliveryInTransit,
	DeliveryInTransit: DeliveryDelivered,
}

// CanAdvance только на один шаг вперёд, перескоки запрещены.
func (l *DeliveryLeg) CanAdvance(to DeliveryStatusType) bool {
	next, ok := deliveryAdvances[l.Status]
	return ok && next == to
}

func (l *DeliveryLeg) HeldBy(driverID string) bool {
	return l.DriverID != nil && *l.DriverID == driverID && l.Status.IsDriverBound()
}

// NewDeliveryLeg доставка в статусе available: точки забора берутся из аптек позиций с доставкой.
func NewDeliveryLeg(o *Order) *DeliveryLeg {
	seen := make(map[string]struct{})
	pickups := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if item.FulfillmentMode != FulfillmentDelivery {
			continue
		}
		if _, ok := seen[item.PharmacyID]; ok {
			continue
		}
		seen[item.PharmacyID] = struct{}{}
		pickups = append(pickups, fmt.Sprintf("%s, %s", item.PharmacyName, item.PharmacyAddress))
	}

	return &DeliveryLeg{
		Status:          DeliveryAvailable,
		PickupLocations: pickups,
		DropoffLocation: o.DeliveryAddress,
		Fee:             o.Pricing.DeliveryFees,
		Attempt:         1,
	}
}

// Assign переводит доставку в assigned. Проверка available делается вызывающим.
func (o *Order) Assign(driverID string, at time.Time) {
	o.Delivery.Status = DeliveryAssigned
	o.Delivery.DriverID = &driverID
	o.Delivery.AssignedAt = &at
	o.AssignedDriverID = &driverID
	o.AddNote(at, fmt.Sprintf("delivery claimed by driver %s", driverID))
}

// AdvanceDelivery двигает доставку вперёд и протягивает статус в заказ:
// picked_up переводит заказ в out_for_delivery, delivered в delivered.
func (o *Order) AdvanceDelivery(to DeliveryStatusType, at time.Time) error {
	leg := o.Delivery
	if leg == nil {
		return fmt.Errorf("%w: order %s has no delivery", ErrInvalidTransition, o.ID)
	}
	if !to.IsValid() {
		return fmt.Errorf("%w: unknown delivery status %q", ErrValidation, to)
	}
	if !leg.CanAdvance(to) {
		return fmt.Errorf("%w: delivery %s cannot move from %s to %s", ErrInvalidTransition, o.ID, leg.Status, to)
	}

	switch to {
	case DeliveryPickedUp:
		// повторная попытка после срыва: заказ уже в out_for_delivery
		if o.Status == OrderOutForDelivery {
			o.AddNote(at, "picked up by driver")
		} else if err := o.Transition(OrderOutForDelivery, at, "picked up by driver"); err != nil {
			return err
		}
		leg.PickedUpAt = &at
	case DeliveryInTransit:
		o.AddNote(at, "delivery in transit")
		leg.InTransitAt = &at
	case DeliveryDelivered:
		if err := o.Transition(OrderDelivered, at, "delivered to patient"); err != nil {
			return err
		}
		leg.DeliveredAt = &at
	}
	leg.Status = to
	return nil
}

// FailDelivery закрывает доставку неудачей. Статус заказа не меняется,
// в историю пишется заметка, а сама доставка ждёт решения фармацевта.
func (o *Order) FailDelivery(reason string, at time.Time) error {
	leg := o.Delivery
	if leg == nil {
		return fmt.Errorf("%w: order %s has no delivery", ErrInvalidTransition, o.ID)
	}
	if !leg.Status.IsDriverBound() {
		return fmt.Errorf("%w: delivery %s cannot fail from %s", ErrInvalidTransition, o.ID, leg.Status)
	}

	leg.Status = DeliveryFailed
	leg.FailedAt = &at
	leg.FailureReason = &reason
	o.AddNote(at, "delivery failed: "+reason)
	return nil
}

// Redispatch возвращает неудавшуюся доставку в пул как новую попытку.
func (o *Order) Redispatch(at time.Time) error {
	leg := o.Delivery
	if leg == nil || leg.Status != DeliveryFailed {
		return fmt.Errorf("%w: order %s has no failed delivery", ErrInvalidTransition, o.ID)
	}

	o.Delivery = &DeliveryLeg{
		Status:          DeliveryAvailable,
		PickupLocations: leg.PickupLocations,
		DropoffLocation: leg.DropoffLocation,
		Fee:             leg.Fee,
		Attempt:         leg.Attempt + 1,
	}
	o.AddNote(at, fmt.Sprintf("delivery returned to pool, attempt %d", o.Delivery.Attempt))
	return nil
}

// DeliveryClaim представление заказа для курьера.
type DeliveryClaim struct {
	DeliveryID      string
	Status          DeliveryStatusType
	PickupLocations []string
	DropoffLocation string
	DeliveryFee     decimal.Decimal
	DriverID        *string
	Attempt         int
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	InTransitAt     *time.Time
	DeliveredAt     *time.Time
	FailedAt        *time.Time
	FailureReason   *string
}

// DeliveryClaim строится из заказа на лету. ok=false для заказов без доставки.
func (o *Order) DeliveryClaim() (*DeliveryClaim, bool) {
	leg := o.Delivery
	if leg == nil {
		return nil, false
	}
	return &DeliveryClaim{
		DeliveryID:      o.ID,
		Status:          leg.Status,
		PickupLocations: slices.Clone(leg.PickupLocations),
		DropoffLocation: leg.DropoffLocation,
		DeliveryFee:     leg.Fee,
		DriverID:        leg.DriverID,
		Attempt:         leg.Attempt,
		AssignedAt:      leg.AssignedAt,
		PickedUpAt:      leg.PickedUpAt,
		InTransitAt:     leg.InTransitAt,
		DeliveredAt:     leg.DeliveredAt,
		FailedAt:        leg.FailedAt,
		FailureReason:   leg.FailureReason,
	}, true
}

func DeliveryClaims(orders []Order) []DeliveryClaim {
	claims := make([]DeliveryClaim, 0, len(orders))
	for i := range orders {
		if claim, ok := orders[i].DeliveryClaim(); ok {
			claims = append(claims, *claim)
		}
	}
	return claims
}

type PoolStats struct {
	Available int
	Failed    int
}
