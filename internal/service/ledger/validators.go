package ledger

import (
	"strings"

	"fulfillment/internal/entities"
)

// Статусы, которые аптека выставляет сама. Остальные двигают review и dispatch.
var manualStatuses = map[entities.OrderStatusType]struct{}{
	entities.OrderPreparing: {},
	entities.OrderReady:     {},
	entities.OrderCompleted: {},
}

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func validateCheckout(checkout entities.Checkout) error {
	if !isValidID(checkout.PatientID) {
		return ErrInvalidPatientID
	}
	if len(checkout.Items) == 0 {
		return ErrEmptyCart
	}

	hasDelivery := false
	for _, item := range checkout.Items {
		if !isValidID(item.MedicineID) {
			return ErrUnknownMedicine
		}
		if !isValidID(item.PharmacyID) {
			return ErrUnknownPharmacy
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if !item.FulfillmentMode.IsValid() {
			return ErrInvalidFulfillmentMode
		}
		if item.FulfillmentMode == entities.FulfillmentDelivery {
			hasDelivery = true
		}
	}

	if hasDelivery && strings.TrimSpace(checkout.DeliveryAddress) == "" {
		return ErrMissingDeliveryAddress
	}
	return nil
}

func validateManualStatus(status entities.OrderStatusType) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if _, ok := manualStatuses[status]; !ok {
		return ErrStatusNotManual
	}
	return nil
}
