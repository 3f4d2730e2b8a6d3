package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusAndCode(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrValidation, http.StatusBadRequest, "validation_error"},
		{ErrEmptyBasket, http.StatusBadRequest, "empty_basket"},
		{ErrInvalidContact, http.StatusBadRequest, "invalid_contact"},
		{ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
		{ErrAuthorization, http.StatusForbidden, "authorization_error"},
		{ErrNotFound, http.StatusNotFound, "not_found"},
		{ErrInvalidState, http.StatusConflict, "invalid_state"},
		{ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
		{ErrConflict, http.StatusConflict, "conflict"},
		{ErrInsufficientStock, http.StatusConflict, "insufficient_stock"},
		{ErrStoreClosed, http.StatusServiceUnavailable, "store_closed"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err), tc.code)
		assert.Equal(t, tc.code, Code(tc.err), tc.code)

		// wrapped errors keep their classification
		wrapped := fmt.Errorf("context: %w", tc.err)
		assert.Equal(t, tc.status, HTTPStatus(wrapped), tc.code)
	}
}
