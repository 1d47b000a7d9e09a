//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=catalog_test
package catalog

import (
	"context"

	"fulfillment/internal/entities"
)

type Repository interface {
	GetMedicine(ctx context.Context, id string) (*entities.Medicine, error)
	GetPharmacy(ctx context.Context, id string) (*entities.Pharmacy, error)
	UpsertMedicine(ctx context.Context, medicine entities.Medicine) error
	UpsertPharmacy(ctx context.Context, pharmacy entities.Pharmacy) error
}
