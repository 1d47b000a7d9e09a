package entities

import "time"

// ReviewItem представление заказа для фармацевта.
type ReviewItem struct {
	OrderID              string
	PatientID            string
	Items                []OrderItem
	RequiresPrescription bool
	PrescriptionRef      *string
	Pricing              Pricing
	Status               OrderStatusType
	FulfillmentMode      FulfillmentMode
	RejectionReason      *string
	CanAccept            bool
	CreatedAt            time.Time
}

func (o *Order) ReviewItem() ReviewItem {
	return ReviewItem{
		OrderID:              o.ID,
		PatientID:            o.PatientID,
		Items:                o.Items,
		RequiresPrescription: o.RequiresPrescription,
		PrescriptionRef:      o.PrescriptionRef,
		Pricing:              o.Pricing,
		Status:               o.Status,
		FulfillmentMode:      o.FulfillmentMode(),
		RejectionReason:      o.RejectionReason,
		CanAccept:            o.Status.InReview() && !o.PrescriptionPending(),
		CreatedAt:            o.CreatedAt,
	}
}

// PrescriptionPending рецепт нужен, но ещё не приложен.
func (o *Order) PrescriptionPending() bool {
	return o.RequiresPrescription && (o.PrescriptionRef == nil || *o.PrescriptionRef == "")
}
