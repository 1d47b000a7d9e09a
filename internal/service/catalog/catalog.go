package catalog

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/entities"
)

// Catalog локальная копия справочника препаратов и аптек.
type Catalog struct {
	repository Repository
}

func New(repository Repository) *Catalog {
	return &Catalog{
		repository: repository,
	}
}

func (c *Catalog) ResolveMedicine(ctx context.Context, id string) (*entities.Medicine, error) {
	if !isValidID(id) {
		return nil, ErrInvalidMedicineID
	}
	return c.repository.GetMedicine(ctx, id)
}

func (c *Catalog) ResolvePharmacy(ctx context.Context, id string) (*entities.Pharmacy, error) {
	if !isValidID(id) {
		return nil, ErrInvalidPharmacyID
	}
	return c.repository.GetPharmacy(ctx, id)
}

// UpsertMedicine при пустом UpdatedAt проставляет текущее время.
// Запись старше сохранённой репозиторий игнорирует.
func (c *Catalog) UpsertMedicine(ctx context.Context, medicine entities.Medicine) (*entities.Medicine, error) {
	if err := validateMedicine(medicine); err != nil {
		return nil, err
	}
	if medicine.UpdatedAt.IsZero() {
		medicine.UpdatedAt = time.Now().UTC()
	}

	if err := c.repository.UpsertMedicine(ctx, medicine); err != nil {
		return nil, fmt.Errorf("upsert medicine: %w", err)
	}
	return &medicine, nil
}

func (c *Catalog) UpsertPharmacy(ctx context.Context, pharmacy entities.Pharmacy) (*entities.Pharmacy, error) {
	if err := validatePharmacy(pharmacy); err != nil {
		return nil, err
	}
	if pharmacy.UpdatedAt.IsZero() {
		pharmacy.UpdatedAt = time.Now().UTC()
	}

	if err := c.repository.UpsertPharmacy(ctx, pharmacy); err != nil {
		return nil, fmt.Errorf("upsert pharmacy: %w", err)
	}
	return &pharmacy, nil
}
