package catalog

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/entities"
	"fulfillment/internal/repository"
	"github.com/jackc/pgx/v5"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetMedicine(ctx context.Context, id string) (*entities.Medicine, error) {
	query := `SELECT id, name, category, requires_prescription, unit_price, updated_at
		FROM medicines
		WHERE id = $1`

	var medicineModel MedicineDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&medicineModel.ID,
			&medicineModel.Name,
			&medicineModel.Category,
			&medicineModel.RequiresPrescription,
			&medicineModel.UnitPrice,
			&medicineModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repository.ErrMedicineNotFound, id)
		}
		return nil, fmt.Errorf("unexpected catalog repository get medicine error: %w", err)
	}

	return ToDomainMedicine(&medicineModel), nil
}

func (r *Repository) GetPharmacy(ctx context.Context, id string) (*entities.Pharmacy, error) {
	query := `SELECT id, name, address, updated_at
		FROM pharmacies
		WHERE id = $1`

	var pharmacyModel PharmacyDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&pharmacyModel.ID,
			&pharmacyModel.Name,
			&pharmacyModel.Address,
			&pharmacyModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repository.ErrPharmacyNotFound, id)
		}
		return nil, fmt.Errorf("unexpected catalog repository get pharmacy error: %w", err)
	}

	return ToDomainPharmacy(&pharmacyModel), nil
}

// UpsertMedicine события каталога могут прийти не по порядку, более старое не затирает новое.
func (r *Repository) UpsertMedicine(ctx context.Context, medicine entities.Medicine) error {
	medicineModel := FromDomainMedicine(&medicine)
	query := `INSERT INTO medicines (id, name, category, requires_prescription, unit_price, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			requires_prescription = EXCLUDED.requires_prescription,
			unit_price = EXCLUDED.unit_price,
			updated_at = EXCLUDED.updated_at
		WHERE medicines.updated_at <= EXCLUDED.updated_at`

	_, err := r.querier.Exec(
		ctx,
		query,
		medicineModel.ID,
		medicineModel.Name,
		medicineModel.Category,
		medicineModel.RequiresPrescription,
		medicineModel.UnitPrice,
		medicineModel.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("unexpected catalog repository upsert medicine error: %w", err)
	}
	return nil
}

func (r *Repository) UpsertPharmacy(ctx context.Context, pharmacy entities.Pharmacy) error {
	pharmacyModel := FromDomainPharmacy(&pharmacy)
	query := `INSERT INTO pharmacies (id, name, address, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			updated_at = EXCLUDED.updated_at
		WHERE pharmacies.updated_at <= EXCLUDED.updated_at`

	_, err := r.querier.Exec(
		ctx,
		query,
		pharmacyModel.ID,
		pharmacyModel.Name,
		pharmacyModel.Address,
		pharmacyModel.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("unexpected catalog repository upsert pharmacy error: %w", err)
	}
	return nil
}
