package dispatch

import (
	"fmt"

	"fulfillment/internal/entities"
)

var (
	ErrInvalidDriverID      = fmt.Errorf("%w: invalid driver id", entities.ErrValidation)
	ErrInvalidDeliveryID    = fmt.Errorf("%w: invalid delivery id", entities.ErrValidation)
	ErrInvalidStatus        = fmt.Errorf("%w: unknown delivery status", entities.ErrValidation)
	ErrEmptyFailureReason   = fmt.Errorf("%w: failure reason is required", entities.ErrValidation)
	ErrDeliveryNotFound     = fmt.Errorf("%w: delivery", entities.ErrNotFound)
	ErrNoActiveClaim        = fmt.Errorf("%w: driver has no active delivery", entities.ErrNotFound)
	ErrDeliveryNotAvailable = fmt.Errorf("%w: delivery is not available", entities.ErrAlreadyAssigned)
	ErrDriverBusy           = fmt.Errorf("%w: driver already holds an active delivery", entities.ErrDriverBusy)
	ErrNotClaimOwner        = fmt.Errorf("%w: delivery is held by another driver", entities.ErrClaimNotOwned)
)
