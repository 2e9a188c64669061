package lead

import (
	"errors"
	"fmt"
)

var (
	// -- Validation --
	ErrPhoneRequired   = errors.New("phone number is required")
	ErrConsentRequired = errors.New("consent to personal data processing is required")
	ErrInvalidEmail    = errors.New("invalid email")

	// -- Submission --
	ErrSubmitFailed      = errors.New("submission failed")
	ErrAlreadySubmitting = errors.New("submission already in progress")
	ErrDialogClosed      = errors.New("lead dialog is closed")
)

// StatusError is returned when the callback endpoint answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrPhoneRequired) ||
		errors.Is(err, ErrConsentRequired) ||
		errors.Is(err, ErrInvalidEmail)
}

// Message returns the text shown to the visitor for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPhoneRequired):
		return "Укажите номер телефона"
	case errors.Is(err, ErrConsentRequired):
		return "Нужно согласиться с обработкой данных"
	case errors.Is(err, ErrInvalidEmail):
		return "Некорректный email"
	default:
		return "Не удалось отправить заявку"
	}
}
