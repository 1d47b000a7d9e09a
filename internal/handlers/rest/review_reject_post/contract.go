//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=review_reject_post_test
package review_reject_post

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
	Reject(ctx context.Context, orderID, reason string) (*entities.Order, error)
}
