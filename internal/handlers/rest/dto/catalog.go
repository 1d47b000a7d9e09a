package dto

import (
	"time"

	"fulfillment/internal/entities"
	"github.com/shopspring/decimal"
)

type MedicineUpsert struct {
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	RequiresPrescription bool            `json:"requires_prescription"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	UpdatedAt            *time.Time      `json:"updated_at,omitempty"`
}

type PharmacyUpsert struct {
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Medicine struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Category             string          `json:"category,omitempty"`
	RequiresPrescription bool            `json:"requires_prescription"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type Pharmacy struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToMedicine(id string, req MedicineUpsert) entities.Medicine {
	medicine := entities.Medicine{
		ID:                   id,
		Name:                 req.Name,
		Category:             req.Category,
		RequiresPrescription: req.RequiresPrescription,
		UnitPrice:            req.UnitPrice,
	}
	if req.UpdatedAt != nil {
		medicine.UpdatedAt = req.UpdatedAt.UTC()
	}
	return medicine
}

func ToPharmacy(id string, req PharmacyUpsert) entities.Pharmacy {
	pharmacy := entities.Pharmacy{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
	}
	if req.UpdatedAt != nil {
		pharmacy.UpdatedAt = req.UpdatedAt.UTC()
	}
	return pharmacy
}

func FromMedicine(m *entities.Medicine) Medicine {
	return Medicine{
		ID:                   m.ID,
		Name:                 m.Name,
		Category:             m.Category,
		RequiresPrescription: m.RequiresPrescription,
		UnitPrice:            m.UnitPrice,
		UpdatedAt:            m.UpdatedAt,
	}
}

func FromPharmacy(p *entities.Pharmacy) Pharmacy {
	return Pharmacy{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		UpdatedAt: p.UpdatedAt,
	}
}
