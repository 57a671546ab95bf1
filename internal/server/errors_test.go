package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Victamina15/billtracky-2/internal/cart"
	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
	checkoutdomain "github.com/Victamina15/billtracky-2/internal/checkout/domain"
	invoicedomain "github.com/Victamina15/billtracky-2/internal/invoice/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"validation", cart.ErrInvalidQuantity, http.StatusBadRequest, "validation_error"},
		{"catalog validation", catalogdomain.ErrInvalidPrice, http.StatusBadRequest, "validation_error"},
		{"not found", catalogdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"line not found", cart.ErrLineNotFound, http.StatusNotFound, "not_found"},
		{"session not found", checkoutdomain.ErrSessionNotFound, http.StatusNotFound, "not_found"},
		{"precondition", fmt.Errorf("%w: %w", checkoutdomain.ErrPrecondition, cart.ErrEmptyCart), http.StatusPreconditionFailed, "precondition_failed"},
		{"reference precondition", cart.ErrReferenceRequired, http.StatusPreconditionFailed, "precondition_failed"},
		{"conflict", catalogdomain.ErrDuplicateCategory, http.StatusConflict, "conflict"},
		{"dependency", fmt.Errorf("%w: connection refused", checkoutdomain.ErrDependency), http.StatusServiceUnavailable, "dependency_unavailable"},
		{"persistence", fmt.Errorf("%w: constraint", invoicedomain.ErrPersistence), http.StatusInternalServerError, "persistence_error"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantType, payload.Type)
		})
	}
}

func TestPreconditionMessageNamesTheGap(t *testing.T) {
	_, payload := mapError(fmt.Errorf("%w: %w", checkoutdomain.ErrPrecondition, cart.ErrNoPaymentMethod))
	assert.Equal(t, "no payment method selected", payload.Message)
}
