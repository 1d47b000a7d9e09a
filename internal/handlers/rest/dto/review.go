package dto

import (
	"time"

	"fulfillment/internal/entities"
)

type OrderReject struct {
	Reason string `json:"reason"`
}

type ReviewItem struct {
	OrderID              string      `json:"order_id"`
	PatientID            string      `json:"patient_id"`
	Items                []OrderItem `json:"items"`
	RequiresPrescription bool        `json:"requires_prescription"`
	PrescriptionRef      *string     `json:"prescription_ref,omitempty"`
	Pricing              Pricing     `json:"pricing"`
	Status               string      `json:"status"`
	FulfillmentMode      string      `json:"fulfillment_mode"`
	RejectionReason      *string     `json:"rejection_reason,omitempty"`
	CanAccept            bool        `json:"can_accept"`
	CreatedAt            time.Time   `json:"created_at"`
}

func FromReviewItems(items []entities.ReviewItem) []ReviewItem {
	res := make([]ReviewItem, 0, len(items))
	for _, item := range items {
		res = append(res, ReviewItem{
			OrderID:              item.OrderID,
			PatientID:            item.PatientID,
			Items:                FromOrderItems(item.Items),
			RequiresPrescription: item.RequiresPrescription,
			PrescriptionRef:      item.PrescriptionRef,
			Pricing:              FromPricing(item.Pricing),
			Status:               item.Status.String(),
			FulfillmentMode:      item.FulfillmentMode.String(),
			RejectionReason:      item.RejectionReason,
			CanAccept:            item.CanAccept,
			CreatedAt:            item.CreatedAt,
		})
	}
	return res
}
