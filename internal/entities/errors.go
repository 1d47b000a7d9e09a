package entities

import "errors"

// Виды ошибок. Конкретные ошибки сервисов и репозиториев оборачивают один из них,
// проверка через errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrPrescriptionMissing = errors.New("prescription missing")
	ErrAlreadyAssigned     = errors.New("delivery already assigned")
	ErrDriverBusy          = errors.New("driver busy")
	ErrClaimNotOwned       = errors.New("claim not owned")
)
