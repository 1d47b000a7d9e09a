package catalog

import (
	"fmt"

	"fulfillment/internal/entities"
)

var (
	ErrInvalidMedicineID = fmt.Errorf("%w: invalid medicine id", entities.ErrValidation)
	ErrInvalidPharmacyID = fmt.Errorf("%w: invalid pharmacy id", entities.ErrValidation)
	ErrEmptyName         = fmt.Errorf("%w: name is required", entities.ErrValidation)
	ErrNegativePrice     = fmt.Errorf("%w: unit price must not be negative", entities.ErrValidation)
	ErrEmptyAddress      = fmt.Errorf("%w: pharmacy address is required", entities.ErrValidation)
)
