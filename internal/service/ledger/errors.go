package ledger

import (
	"fmt"

	"fulfillment/internal/entities"
)

var (
	ErrInvalidOrderID         = fmt.Errorf("%w: invalid order id", entities.ErrValidation)
	ErrInvalidPatientID       = fmt.Errorf("%w: invalid patient id", entities.ErrValidation)
	ErrEmptyCart              = fmt.Errorf("%w: cart is empty", entities.ErrValidation)
	ErrInvalidQuantity        = fmt.Errorf("%w: quantity must be positive", entities.ErrValidation)
	ErrInvalidFulfillmentMode = fmt.Errorf("%w: unknown fulfillment mode", entities.ErrValidation)
	ErrMissingDeliveryAddress = fmt.Errorf("%w: delivery address is required for delivery items", entities.ErrValidation)
	ErrUnknownMedicine        = fmt.Errorf("%w: unknown medicine", entities.ErrValidation)
	ErrUnknownPharmacy        = fmt.Errorf("%w: unknown pharmacy", entities.ErrValidation)
	ErrInvalidStatus          = fmt.Errorf("%w: unknown order status", entities.ErrValidation)
	ErrStatusNotManual        = fmt.Errorf("%w: status is driven by review or dispatch", entities.ErrValidation)
	ErrInvalidPrescriptionRef = fmt.Errorf("%w: invalid prescription reference", entities.ErrValidation)

	ErrPrescriptionLocked = fmt.Errorf("%w: prescription can only be attached while the order is under review", entities.ErrInvalidTransition)
)
