package dto

import (
	"time"

	"fulfillment/internal/entities"
	"github.com/shopspring/decimal"
)

type DeliveryClaimRequest struct {
	DriverID string `json:"driver_id"`
}

type DeliveryAdvance struct {
	DriverID string `json:"driver_id"`
	Status   string `json:"status"`
}

type DeliveryFail struct {
	DriverID string `json:"driver_id"`
	Reason   string `json:"reason"`
}

type DeliveryClaim struct {
	DeliveryID      string          `json:"delivery_id"`
	Status          string          `json:"status"`
	PickupLocations []string        `json:"pickup_locations"`
	DropoffLocation string          `json:"dropoff_location"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	DriverID        *string         `json:"driver_id,omitempty"`
	Attempt         int             `json:"attempt"`
	AssignedAt      *time.Time      `json:"assigned_at,omitempty"`
	PickedUpAt      *time.Time      `json:"picked_up_at,omitempty"`
	InTransitAt     *time.Time      `json:"in_transit_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	FailedAt        *time.Time      `json:"failed_at,omitempty"`
	FailureReason   *string         `json:"failure_reason,omitempty"`
}

func FromDeliveryClaim(c *entities.DeliveryClaim) DeliveryClaim {
	return DeliveryClaim{
		DeliveryID:      c.DeliveryID,
		Status:          c.Status.String(),
		PickupLocations: c.PickupLocations,
		DropoffLocation: c.DropoffLocation,
		DeliveryFee:     c.DeliveryFee,
		DriverID:        c.DriverID,
		Attempt:         c.Attempt,
		AssignedAt:      c.AssignedAt,
		PickedUpAt:      c.PickedUpAt,
		InTransitAt:     c.InTransitAt,
		DeliveredAt:     c.DeliveredAt,
		FailedAt:        c.FailedAt,
		FailureReason:   c.FailureReason,
	}
}

func FromDeliveryClaims(claims []entities.DeliveryClaim) []DeliveryClaim {
	res := make([]DeliveryClaim, 0, len(claims))
	for i := range claims {
		res = append(res, FromDeliveryClaim(&claims[i]))
	}
	return res
}
