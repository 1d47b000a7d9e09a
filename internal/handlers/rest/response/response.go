package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/dto"
	"fulfillment/pkg/logger"
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

// StatusFromError код ответа по виду доменной ошибки.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrPrescriptionMissing):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entities.ErrClaimNotOwned):
		return http.StatusForbidden
	case errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, entities.ErrAlreadyAssigned),
		errors.Is(err, entities.ErrDriverBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error пишет ошибку сервиса. Текст внутренних ошибок наружу не отдаётся.
func Error(w http.ResponseWriter, log errorLogger, err error) {
	status := StatusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", logger.NewField("error", err))
		message = http.StatusText(status)
	}

	JSON(w, log, status, dto.Error{Error: message})
}

func BadRequest(w http.ResponseWriter, log errorLogger, message string) {
	JSON(w, log, http.StatusBadRequest, dto.Error{Error: message})
}

func JSON(w http.ResponseWriter, log errorLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response", logger.NewField("error", err))
	}
}
