//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=review_redispatch_post_test
package review_redispatch_post

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Redispatch(ctx context.Context, orderID string) (*entities.Order, error)
}
