package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel errors for every failure class the API reports. Services wrap
// these with context via fmt.Errorf("%w: ...") so handlers can map any error
// chain back to a status code and machine-readable code with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrAuthorization     = errors.New("not authorized")
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("operation not allowed in current state")
	ErrInvalidTransition = errors.New("illegal state transition")
	ErrEmptyBasket       = errors.New("basket is empty")
	ErrInvalidContact    = errors.New("contact invalid or not owned by user")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrStoreClosed       = errors.New("shop is not accepting orders")
	ErrConflict          = errors.New("conflicting concurrent update")
	ErrInsufficientStock = errors.New("insufficient product stock")
)

// HTTPStatus maps an error chain to the response status class.
// Unrecognized errors are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrEmptyBasket),
		errors.Is(err, ErrInvalidContact),
		errors.Is(err, ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, ErrStoreClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the stable machine-readable code for an error chain.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrAuthorization):
		return "authorization_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrEmptyBasket):
		return "empty_basket"
	case errors.Is(err, ErrInvalidContact):
		return "invalid_contact"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrStoreClosed):
		return "store_closed"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "internal_error"
	}
}
