package dispatch

import "strings"

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func isValidFailureReason(reason string) bool {
	return strings.TrimSpace(reason) != ""
}
