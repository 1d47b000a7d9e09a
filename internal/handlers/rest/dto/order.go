package dto

import (
	"time"

	"fulfillment/internal/entities"
	"github.com/shopspring/decimal"
)

type CheckoutItem struct {
	MedicineID      string `json:"medicine_id"`
	PharmacyID      string `json:"pharmacy_id"`
	Quantity        int    `json:"quantity"`
	FulfillmentMode string `json:"fulfillment_mode"`
}

type OrderCreate struct {
	PatientID       string         `json:"patient_id"`
	Items           []CheckoutItem `json:"items"`
	DeliveryAddress string         `json:"delivery_address"`
}

type PrescriptionAttach struct {
	PrescriptionRef string `json:"prescription_ref"`
}

type OrderStatusAdvance struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type OrderItem struct {
	MedicineID      string          `json:"medicine_id"`
	MedicineName    string          `json:"medicine_name"`
	PharmacyID      string          `json:"pharmacy_id"`
	PharmacyName    string          `json:"pharmacy_name"`
	PharmacyAddress string          `json:"pharmacy_address"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
	FulfillmentMode string          `json:"fulfillment_mode"`
}

type Pricing struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	DeliveryFees decimal.Decimal `json:"delivery_fees"`
	Total        decimal.Decimal `json:"total"`
}

type StatusEntry struct {
	Seq    int       `json:"seq"`
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
}

type Order struct {
	ID                   string         `json:"id"`
	PatientID            string         `json:"patient_id"`
	Items                []OrderItem    `json:"items"`
	RequiresPrescription bool           `json:"requires_prescription"`
	PrescriptionRef      *string        `json:"prescription_ref,omitempty"`
	Pricing              Pricing        `json:"pricing"`
	DeliveryAddress      string         `json:"delivery_address,omitempty"`
	FulfillmentMode      string         `json:"fulfillment_mode"`
	Status               string         `json:"status"`
	StatusHistory        []StatusEntry  `json:"status_history"`
	AssignedDriverID     *string        `json:"assigned_driver_id,omitempty"`
	Delivery             *DeliveryClaim `json:"delivery,omitempty"`
	RejectionReason      *string        `json:"rejection_reason,omitempty"`
	Unread               bool           `json:"unread"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func ToCheckout(req OrderCreate) entities.Checkout {
	items := make([]entities.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, entities.CheckoutItem{
			MedicineID:      item.MedicineID,
			PharmacyID:      item.PharmacyID,
			Quantity:        item.Quantity,
			FulfillmentMode: entities.FulfillmentMode(item.FulfillmentMode),
		})
	}
	return entities.Checkout{
		PatientID:       req.PatientID,
		Items:           items,
		DeliveryAddress: req.DeliveryAddress,
	}
}

func FromOrder(o *entities.Order) Order {
	history := make([]StatusEntry, 0, len(o.StatusHistory))
	for _, entry := range o.StatusHistory {
		history = append(history, StatusEntry{
			Seq:    entry.Seq,
			Status: entry.Status.String(),
			At:     entry.At,
			Note:   entry.Note,
		})
	}

	res := Order{
		ID:                   o.ID,
		PatientID:            o.PatientID,
		Items:                FromOrderItems(o.Items),
		RequiresPrescription: o.RequiresPrescription,
		PrescriptionRef:      o.PrescriptionRef,
		Pricing:              FromPricing(o.Pricing),
		DeliveryAddress:      o.DeliveryAddress,
		FulfillmentMode:      o.FulfillmentMode().String(),
		Status:               o.Status.String(),
		StatusHistory:        history,
		AssignedDriverID:     o.AssignedDriverID,
		RejectionReason:      o.RejectionReason,
		Unread:               o.Unread,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
	if claim, ok := o.DeliveryClaim(); ok {
		delivery := FromDeliveryClaim(claim)
		res.Delivery = &delivery
	}
	return res
}

func FromOrders(orders []entities.Order) []Order {
	res := make([]Order, 0, len(orders))
	for i := range orders {
		res = append(res, FromOrder(&orders[i]))
	}
	return res
}

func FromOrderItems(items []entities.OrderItem) []OrderItem {
	res := make([]OrderItem, 0, len(items))
	for _, item := range items {
		res = append(res, OrderItem{
			MedicineID:      item.MedicineID,
			MedicineName:    item.MedicineName,
			PharmacyID:      item.PharmacyID,
			PharmacyName:    item.PharmacyName,
			PharmacyAddress: item.PharmacyAddress,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			LineTotal:       item.LineTotal(),
			FulfillmentMode: item.FulfillmentMode.String(),
		})
	}
	return res
}

func FromPricing(p entities.Pricing) Pricing {
	return Pricing{
		Subtotal:     p.Subtotal,
		DeliveryFees: p.DeliveryFees,
		Total:        p.Total,
	}
}
