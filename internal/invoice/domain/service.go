package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
	"github.com/Victamina15/billtracky-2/pkg/db/pagination"
)

var (
	ErrInvalidID        = errors.New("invalid_invoice_id")
	ErrInvalidPageToken = errors.New("invalid_page_token")
	ErrInvalidStatus    = errors.New("invalid_invoice_status")
	ErrNotFound         = errors.New("invoice_not_found")
	ErrNoItems          = errors.New("invoice_requires_items")
	ErrPersistence      = errors.New("invoice_persistence_failed")
	ErrDuplicateNumber  = errors.New("invoice_number_conflict")
)

// CreateItem is one line to persist, already snapshotted from the cart.
type CreateItem struct {
	ServiceID snowflake.ID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
	Unit      catalogdomain.Unit
	Subtotal  decimal.Decimal
}

// CreateRequest carries everything the commit transaction writes. Totals are
// caller-snapshotted so the write matches what the operator approved.
type CreateRequest struct {
	CustomerID       *snowflake.ID
	DeliveryDate     *time.Time
	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
	PaymentMethodID  snowflake.ID
	PaymentReference *string
	Notes            string
	Items            []CreateItem
}

type ListRequest struct {
	Status    Status
	Limit     int
	PageToken string
}

type ListResult struct {
	Invoices []Invoice           `json:"invoices"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Service interface {
	// Create persists the header plus all items in one transaction and
	// returns the stored invoice with its generated number. On any failure
	// nothing is written.
	Create(ctx context.Context, req CreateRequest) (*Invoice, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Invoice, error)
}
