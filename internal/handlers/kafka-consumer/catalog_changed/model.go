package catalog_changed

import (
	"errors"
	"time"

	"fulfillment/internal/entities"
	"github.com/shopspring/decimal"
)

const (
	entityMedicine = "medicine"
	entityPharmacy = "pharmacy"
)

var errUnknownEntity = errors.New("unknown catalog entity")

// changedEvent общий конверт для препаратов и аптек, лишние поля пустые.
type changedEvent struct {
	EventID              string          `json:"event_id"`
	Entity               string          `json:"entity"`
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	RequiresPrescription bool            `json:"requires_prescription"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	Address              string          `json:"address"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (e changedEvent) toMedicine() entities.Medicine {
	return entities.Medicine{
		ID:                   e.ID,
		Name:                 e.Name,
		Category:             e.Category,
		RequiresPrescription: e.RequiresPrescription,
		UnitPrice:            e.UnitPrice,
		UpdatedAt:            e.UpdatedAt.UTC(),
	}
}

func (e changedEvent) toPharmacy() entities.Pharmacy {
	return entities.Pharmacy{
		ID:        e.ID,
		Name:      e.Name,
		Address:   e.Address,
		UpdatedAt: e.UpdatedAt.UTC(),
	}
}
