//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_active_get_test
package dispatch_active_get

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
	GetActiveClaim(ctx context.Context, driverID string) (*entities.DeliveryClaim, error)
}
