//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=review_test
package review

import (
	"context"

	"fulfillment/internal/entities"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Save(ctx context.Context, order entities.Order) error
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
