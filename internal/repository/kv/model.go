package kv

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderRecord struct {
	ID                   string            `json:"id"`
	PatientID            string            `json:"patient_id"`
	Items                []OrderItemRecord `json:"items"`
	RequiresPrescription bool              `json:"requires_prescription"`
	PrescriptionRef      *string           `json:"prescription_ref,omitempty"`
	Subtotal             decimal.Decimal   `json:"subtotal"`
	DeliveryFees         decimal.Decimal   `json:"delivery_fees"`
	Total                decimal.Decimal   `json:"total"`
	DeliveryAddress      string            `json:"delivery_address"`
	Status               string            `json:"status"`
	History              []StatusRecord    `json:"history"`
	AssignedDriverID     *string           `json:"assigned_driver_id,omitempty"`
	Delivery             *DeliveryRecord   `json:"delivery,omitempty"`
	RejectionReason      *string           `json:"rejection_reason,omitempty"`
	Unread               bool              `json:"unread"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

type OrderItemRecord struct {
	MedicineID      string          `json:"medicine_id"`
	MedicineName    string          `json:"medicine_name"`
	PharmacyID      string          `json:"pharmacy_id"`
	PharmacyName    string          `json:"pharmacy_name"`
	PharmacyAddress string          `json:"pharmacy_address"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	FulfillmentMode string          `json:"fulfillment_mode"`
}

type StatusRecord struct {
	Seq    int       `json:"seq"`
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
}

type DeliveryRecord struct {
	Status          string          `json:"status"`
	PickupLocations []string        `json:"pickup_locations"`
	DropoffLocation string          `json:"dropoff_location"`
	Fee             decimal.Decimal `json:"fee"`
	DriverID        *string         `json:"driver_id,omitempty"`
	Attempt         int             `json:"attempt"`
	AssignedAt      *time.Time      `json:"assigned_at,omitempty"`
	PickedUpAt      *time.Time      `json:"picked_up_at,omitempty"`
	InTransitAt     *time.Time      `json:"in_transit_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	FailedAt        *time.Time      `json:"failed_at,omitempty"`
	FailureReason   *string         `json:"failure_reason,omitempty"`
}

type MedicineRecord struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	RequiresPrescription bool            `json:"requires_prescription"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type PharmacyRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	UpdatedAt time.Time `json:"updated_at"`
}
