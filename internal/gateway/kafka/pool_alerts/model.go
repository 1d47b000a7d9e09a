package pool_alerts

import (
	"time"

	"fulfillment/internal/entities"
)

type alertEvent struct {
	ID    string    `json:"id"`
	Kind  string    `json:"kind"`
	Count int       `json:"count"`
	Delta int       `json:"delta"`
	At    time.Time `json:"at"`
}

func fromDomain(alert entities.PoolAlert) alertEvent {
	return alertEvent{
		ID:    alert.ID,
		Kind:  alert.Kind.String(),
		Count: alert.Count,
		Delta: alert.Delta,
		At:    alert.At,
	}
}
