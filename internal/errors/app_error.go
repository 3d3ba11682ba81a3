package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeDuplicateEntry       = "DUPLICATE_ENTRY"
	ErrCodeInvalidItem          = "INVALID_ITEM"
	ErrCodeItemNotFound         = "ITEM_NOT_FOUND"
	ErrCodeSlotFetchFailed      = "SLOT_FETCH_FAILED"
	ErrCodeSlotAllocationFailed = "SLOT_ALLOCATION_FAILED"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func DuplicateEntryError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateEntry, message, http.StatusConflict)
}

// malformed line item input, e.g. a missing or zero sessions-per-unit
func InvalidItemError(message string) *AppError {
	return NewAppError(ErrCodeInvalidItem, message, http.StatusBadRequest)
}

// quantity operation on a line item that is not in the cart
func ItemNotFoundError(message string) *AppError {
	return NewAppError(ErrCodeItemNotFound, message, http.StatusNotFound)
}

// availability backend could not be reached or answered with nothing usable
func SlotFetchError(message string) *AppError {
	return NewAppError(ErrCodeSlotFetchFailed, message, http.StatusBadGateway)
}

// SlotShortage is the cause carried by a SLOT_ALLOCATION_FAILED error.
type SlotShortage struct {
	Available int
	Required  int
}

func (s *SlotShortage) Error() string {
	return fmt.Sprintf("insufficient slots: %d available, %d required", s.Available, s.Required)
}

func SlotAllocationError(available, required int) *AppError {
	shortage := &SlotShortage{Available: available, Required: required}

	return NewAppError(ErrCodeSlotAllocationFailed, "Not enough bookable slots", http.StatusConflict).
		WithDetail(shortage.Error()).
		WithError(shortage)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.Code == code
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
