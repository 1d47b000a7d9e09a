package prescription_uploaded

import "time"

type uploadedEvent struct {
	EventID         string    `json:"event_id"`
	OrderID         string    `json:"order_id"`
	PrescriptionRef string    `json:"prescription_ref"`
	UploadedAt      time.Time `json:"uploaded_at"`
}
