//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=review_failed_get_test
package review_failed_get

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
	ListFailedDeliveries(ctx context.Context) ([]entities.DeliveryClaim, error)
}
