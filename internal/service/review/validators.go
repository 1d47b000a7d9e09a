package review

import (
	"strings"
	"unicode/utf8"

	"fulfillment/internal/entities"
)

const minRejectionReasonLength = 10

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}

func isValidRejectionReason(reason string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(reason)) >= minRejectionReasonLength
}

func validateStatuses(statuses []entities.OrderStatusType) error {
	for _, status := range statuses {
		if !status.IsValid() {
			return ErrInvalidStatus
		}
	}
	return nil
}
