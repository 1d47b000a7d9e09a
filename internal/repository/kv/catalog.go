package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/repository"
	"fulfillment/pkg/kvstore"
)

const (
	medicinePrefix = "medicine/"
	pharmacyPrefix = "pharmacy/"
)

type CatalogRepository struct {
	store Store
}

func NewCatalogRepository(store Store) *CatalogRepository {
	return &CatalogRepository{
		store: store,
	}
}

func (r *CatalogRepository) GetMedicine(ctx context.Context, id string) (*entities.Medicine, error) {
	var record MedicineRecord
	if err := r.get(ctx, []byte(medicinePrefix+id), &record); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", repository.ErrMedicineNotFound, id)
		}
		return nil, fmt.Errorf("unexpected kv catalog repository get medicine error: %w", err)
	}
	return ToDomainMedicine(&record), nil
}

func (r *CatalogRepository) GetPharmacy(ctx context.Context, id string) (*entities.Pharmacy, error) {
	var record PharmacyRecord
	if err := r.get(ctx, []byte(pharmacyPrefix+id), &record); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", repository.ErrPharmacyNotFound, id)
		}
		return nil, fmt.Errorf("unexpected kv catalog repository get pharmacy error: %w", err)
	}
	return ToDomainPharmacy(&record), nil
}

// UpsertMedicine не перезаписывает запись более старым событием.
func (r *CatalogRepository) UpsertMedicine(ctx context.Context, medicine entities.Medicine) error {
	key := []byte(medicinePrefix + medicine.ID)

	var current MedicineRecord
	stale, err := r.isStale(ctx, key, &current, func() time.Time { return current.UpdatedAt }, medicine.UpdatedAt)
	if err != nil || stale {
		return err
	}
	return r.put(ctx, key, FromDomainMedicine(&medicine))
}

func (r *CatalogRepository) UpsertPharmacy(ctx context.Context, pharmacy entities.Pharmacy) error {
	key := []byte(pharmacyPrefix + pharmacy.ID)

	var current PharmacyRecord
	stale, err := r.isStale(ctx, key, &current, func() time.Time { return current.UpdatedAt }, pharmacy.UpdatedAt)
	if err != nil || stale {
		return err
	}
	return r.put(ctx, key, FromDomainPharmacy(&pharmacy))
}

func (r *CatalogRepository) isStale(
	ctx context.Context,
	key []byte,
	current any,
	currentUpdatedAt func() time.Time,
	incoming time.Time,
) (bool, error) {
	err := r.get(ctx, key, current)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("unexpected kv catalog repository upsert error: %w", err)
	}
	return incoming.Before(currentUpdatedAt()), nil
}

func (r *CatalogRepository) get(ctx context.Context, key []byte, dst any) error {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *CatalogRepository) put(ctx context.Context, key []byte, record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("unexpected kv catalog repository put error: %w", err)
	}
	return nil
}
