package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// Wallet authorization errors. These are the only outcomes of a rejected
// debit; handlers map each to a user-visible message.
var (
	// ErrKycRequired rejects a withdrawal when the user's KYC is not approved.
	ErrKycRequired = errors.New("kyc approval required")

	// ErrBelowMinimum rejects a withdrawal under the minimum amount policy.
	ErrBelowMinimum = errors.New("amount below minimum withdrawal")

	// ErrMonthlyCapExceeded rejects a withdrawal that would exceed the
	// per-user monthly withdrawal cap.
	ErrMonthlyCapExceeded = errors.New("monthly withdrawal cap exceeded")

	// ErrInsufficientBalance rejects any debit larger than the derived balance.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	// ErrNoActiveSubscriptions rejects reward accrual for a project with no
	// successfully paid subscriptions.
	ErrNoActiveSubscriptions = errors.New("project has no active subscriptions")

	// ErrConcurrentModification indicates a lost race detected at the
	// storage layer.
	ErrConcurrentModification = errors.New("concurrent modification detected")
)

// AppError carries a status code alongside a message and an underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
