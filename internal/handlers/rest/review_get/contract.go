//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=review_get_test
package review_get

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
	ListByStatus(ctx context.Context, statuses []entities.OrderStatusType) ([]entities.ReviewItem, error)
}
