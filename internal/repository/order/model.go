package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderDB struct {
	ID                   string
	PatientID            string
	RequiresPrescription bool
	PrescriptionRef      *string
	Subtotal             decimal.Decimal
	DeliveryFees         decimal.Decimal
	Total                decimal.Decimal
	DeliveryAddress      string
	Status               string
	AssignedDriverID     *string
	RejectionReason      *string
	Unread               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Delivery             DeliveryDB
}

// DeliveryDB колонки доставки в строке заказа. Status == nil, пока доставки нет.
type DeliveryDB struct {
	Status          *string
	PickupLocations []string
	DropoffLocation *string
	Fee             decimal.NullDecimal
	DriverID        *string
	Attempt         int
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	InTransitAt     *time.Time
	DeliveredAt     *time.Time
	FailedAt        *time.Time
	FailureReason   *string
}

type OrderItemDB struct {
	OrderID         string
	Position        int
	MedicineID      string
	MedicineName    string
	PharmacyID      string
	PharmacyName    string
	PharmacyAddress string
	Quantity        int
	UnitPrice       decimal.Decimal
	FulfillmentMode string
}

type StatusEntryDB struct {
	OrderID string
	Seq     int
	Status  string
	At      time.Time
	Note    string
}
