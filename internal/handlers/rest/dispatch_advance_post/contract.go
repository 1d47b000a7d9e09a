//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_advance_post_test
package dispatch_advance_post

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
	Advance(ctx context.Context, driverID, deliveryID string, to entities.DeliveryStatusType) (*entities.DeliveryClaim, error)
}
