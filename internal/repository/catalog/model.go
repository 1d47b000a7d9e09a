package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type MedicineDB struct {
	ID                   string
	Name                 string
	Category             string
	RequiresPrescription bool
	UnitPrice            decimal.Decimal
	UpdatedAt            time.Time
}

type PharmacyDB struct {
	ID        string
	Name      string
	Address   string
	UpdatedAt time.Time
}
