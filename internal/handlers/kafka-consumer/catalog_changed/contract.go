//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=catalog_changed_test
package catalog_changed

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
	UpsertPharmacy(ctx context.Context, pharmacy entities.Pharmacy) (*entities.Pharmacy, error)
}
