package review

import (
	"fmt"

	"fulfillment/internal/entities"
)

var (
	ErrInvalidOrderID          = fmt.Errorf("%w: invalid order id", entities.ErrValidation)
	ErrInvalidStatus           = fmt.Errorf("%w: unknown order status", entities.ErrValidation)
	ErrRejectionReasonTooShort = fmt.Errorf("%w: rejection reason must be at least %d characters", entities.ErrValidation, minRejectionReasonLength)
	ErrRedispatchLimitReached  = fmt.Errorf("%w: delivery attempts limit reached", entities.ErrValidation)

	ErrPrescriptionMissing = fmt.Errorf("%w: prescription must be attached before acceptance", entities.ErrPrescriptionMissing)
)
