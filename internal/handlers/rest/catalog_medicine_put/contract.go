//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=catalog_medicine_put_test
package catalog_medicine_put

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
	UpsertMedicine(ctx context.Context, medicine entities.Medicine) (*entities.Medicine, error)
}
