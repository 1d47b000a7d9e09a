package catalog

import (
	"strings"

	"fulfillment/internal/entities"
)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func validateMedicine(medicine entities.Medicine) error {
	if !isValidID(medicine.ID) {
		return ErrInvalidMedicineID
	}
	if strings.TrimSpace(medicine.Name) == "" {
		return ErrEmptyName
	}
	if medicine.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

func validatePharmacy(pharmacy entities.Pharmacy) error {
	if !isValidID(pharmacy.ID) {
		return ErrInvalidPharmacyID
	}
	if strings.TrimSpace(pharmacy.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(pharmacy.Address) == "" {
		return ErrEmptyAddress
	}
	return nil
}
