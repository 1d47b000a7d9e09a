//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"context"

	"fulfillment/internal/entities"
)

type PoolCounter interface {
	CountPool(ctx context.Context) (entities.PoolStats, error)
}

type Publisher interface {
	Publish(ctx context.Context, alerts []entities.PoolAlert) error
}
