// Package domain defines the checkout workflow contract: one session owns one
// cart from first item to commit or clear.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Victamina15/billtracky-2/internal/cart"
	invoicedomain "github.com/Victamina15/billtracky-2/internal/invoice/domain"
)

var (
	ErrSessionNotFound = errors.New("checkout_session_not_found")
	ErrPrecondition    = errors.New("commit_precondition_failed")
	ErrDependency      = errors.New("checkout_dependency_unavailable")
)

// CartView is the read model handed to the UI after every mutation.
type CartView struct {
	SessionID string                 `json:"session_id"`
	Items     []cart.LineItem        `json:"items"`
	ItemCount decimal.Decimal        `json:"item_count"`
	Totals    cart.Totals            `json:"totals"`
	Payment   *cart.PaymentSelection `json:"payment,omitempty"`
	CanCommit bool                   `json:"can_commit"`
}

type HeaderUpdate struct {
	CustomerID   *string    `json:"customer_id"`
	DeliveryDate *time.Time `json:"delivery_date"`
	Notes        *string    `json:"notes"`
}

type Service interface {
	// StartSession opens a fresh cart and returns its session id.
	StartSession(ctx context.Context) (*CartView, error)
	View(ctx context.Context, sessionID string) (*CartView, error)

	AddItem(ctx context.Context, sessionID, serviceID string, quantity decimal.Decimal) (*CartView, error)
	SetQuantity(ctx context.Context, sessionID, lineID string, quantity decimal.Decimal) (*CartView, error)
	Increment(ctx context.Context, sessionID, lineID string) (*CartView, error)
	Decrement(ctx context.Context, sessionID, lineID string) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID, lineID string) (*CartView, error)

	UpdateHeader(ctx context.Context, sessionID string, req HeaderUpdate) (*CartView, error)
	SelectPaymentMethod(ctx context.Context, sessionID, methodID string) (*CartView, error)
	SetReference(ctx context.Context, sessionID, reference string) (*CartView, error)

	// Commit re-validates the cart, snapshots the totals and persists the
	// invoice atomically. The cart survives a failed commit untouched; on
	// success the session's cart is cleared.
	Commit(ctx context.Context, sessionID string) (*invoicedomain.Invoice, error)
	Clear(ctx context.Context, sessionID string) error
}
