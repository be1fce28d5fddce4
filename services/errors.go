package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBanned      = errors.New("account is banned")
	ErrEmailTaken         = errors.New("email is already registered")

	ErrEmptyCart         = errors.New("cart is empty")
	ErrItemUnavailable   = errors.New("item is unavailable")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrReasonRequired    = errors.New("a reason is required to cancel an order")

	ErrCouponInvalid    = errors.New("coupon is not valid")
	ErrCouponNotFound   = fmt.Errorf("%w: unknown code", ErrCouponInvalid)
	ErrCouponInactive   = fmt.Errorf("%w: coupon is inactive", ErrCouponInvalid)
	ErrCouponNotStarted = fmt.Errorf("%w: coupon is not active yet", ErrCouponInvalid)
	ErrCouponExpired    = fmt.Errorf("%w: coupon has expired", ErrCouponInvalid)
	ErrCouponExhausted  = fmt.Errorf("%w: coupon usage limit reached", ErrCouponInvalid)
	ErrCouponMinimum    = fmt.Errorf("%w: order does not meet the minimum amount", ErrCouponInvalid)

	ErrRegistrationClosed    = errors.New("registration is closed")
	ErrDuplicateRegistration = errors.New("this email is already registered for the program")
	ErrDuplicateReview       = errors.New("you have already reviewed this item")

	ErrRecoveryTokenInvalid = errors.New("recovery link is invalid or has expired")
)

// ValidationError reports per-field problems with caller input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ItemError names the item a line-level failure refers to.
type ItemError struct {
	ItemID string
	Err    error
}

func (e *ItemError) Error() string { return e.Err.Error() + ": " + e.ItemID }

func (e *ItemError) Unwrap() error { return e.Err }
