package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Details interface{}  `json:"details,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewRateMismatchError reports a client-supplied exchange rate that deviates
// too far from the live reference rate. Both values ride along so the client
// can refresh the rate and resubmit.
func NewRateMismatchError(supplied, reference float64) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("Exchange rate %.2f is out of date, current rate is %.2f", supplied, reference),
		Details: map[string]float64{
			"supplied_rate":  supplied,
			"reference_rate": reference,
		},
	}
}

// NewInsufficientPaymentError reports a payment that does not cover the order total.
func NewInsufficientPaymentError(requiredUSD, receivedUSD float64) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("Payment of $%.2f does not cover the order total of $%.2f", receivedUSD, requiredUSD),
		Details: map[string]float64{
			"required_usd": requiredUSD,
			"received_usd": receivedUSD,
		},
	}
}

// NewIncompletePaymentError reports a COMPLETED transition attempted before full payment.
func NewIncompletePaymentError(requiredUSD, paidUSD float64) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("Order cannot be completed: $%.2f paid of $%.2f", paidUSD, requiredUSD),
		Details: map[string]float64{
			"required_usd": requiredUSD,
			"paid_usd":     paidUSD,
		},
	}
}

// NewOrderNotPayableError reports a payment against an order that is already closed.
func NewOrderNotPayableError(status string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: "Order is " + status + " and can no longer receive payments",
	}
}

// NewRateUnavailableError reports that the exchange rate source could not be reached.
func NewRateUnavailableError() *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: "Exchange rate source is unavailable",
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
