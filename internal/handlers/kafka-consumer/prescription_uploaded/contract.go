//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=prescription_uploaded_test
package prescription_uploaded

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
	AttachPrescription(ctx context.Context, id, ref string) (*entities.Order, error)
}
