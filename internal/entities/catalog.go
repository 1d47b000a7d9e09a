package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Medicine struct {
	ID                   string
	Name                 string
	Category             string
	RequiresPrescription bool
	UnitPrice            decimal.Decimal
	UpdatedAt            time.Time
}

type Pharmacy struct {
	ID        string
	Name      string
	Address   string
	UpdatedAt time.Time
}
