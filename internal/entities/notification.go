package entities

import "time"

type PoolAlertKind string

const (
	PoolAlertDeliveriesAvailable PoolAlertKind = "deliveries_available"
	PoolAlertDeliveriesFailed    PoolAlertKind = "deliveries_failed"
)

func (k PoolAlertKind) String() string {
	return string(k)
}

// PoolAlert сигнал о росте пула. ID нужен потребителям для дедупликации.
type PoolAlert struct {
	ID    string
	Kind  PoolAlertKind
	Count int
	Delta int
	At    time.Time
}
