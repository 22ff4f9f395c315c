package model

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	ErrModalClosed  = errors.New("promo modal is not open")
	ErrSpinInFlight = errors.New("spin already in progress")
	ErrSpinUsed     = errors.New("wheel already spun in this modal")

	ErrWorkerNotInstalled = errors.New("offline worker is not installed")
	ErrWorkerStopped      = errors.New("offline worker is stopped")
)

// ValidationError - ошибка валидации с кодом для клиента
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string {
	return e.Code
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(code string) error {
	return &ValidationError{Code: code}
}
