package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Name              string           `json:"name"`
	Type              Type             `json:"type"`
	Icon              string           `json:"icon"`
	RequiresReference bool             `json:"requires_reference"`
	CommissionPercent *decimal.Decimal `json:"commission_percent,omitempty"`
}

type Service interface {
	List(ctx context.Context, activeOnly bool) ([]PaymentMethod, error)
	GetByID(ctx context.Context, id string) (PaymentMethod, error)
	Create(context.Context, CreateRequest) (PaymentMethod, error)
	Toggle(ctx context.Context, id string) (PaymentMethod, error)
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidType       = errors.New("invalid_type")
	ErrInvalidCommission = errors.New("invalid_commission")
	ErrNotFound          = errors.New("not_found")
)
