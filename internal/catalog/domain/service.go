package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type ListServicesRequest struct {
	CategoryID string
	Active     *bool
}

type CreateServiceRequest struct {
	CategoryID       string          `json:"category_id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	Unit             Unit            `json:"unit"`
	Description      *string         `json:"description,omitempty"`
	EstimatedMinutes *int            `json:"estimated_minutes,omitempty"`
}

type UpdateServiceRequest struct {
	ID               string           `json:"id"`
	CategoryID       *string          `json:"category_id,omitempty"`
	Name             *string          `json:"name,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	Unit             *Unit            `json:"unit,omitempty"`
	Description      *string          `json:"description,omitempty"`
	EstimatedMinutes *int             `json:"estimated_minutes,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description,omitempty"`
}

// Catalog is the read/write surface for services and categories.
type Catalog interface {
	ListServices(context.Context, ListServicesRequest) ([]Service, error)
	GetService(ctx context.Context, id string) (Service, error)
	CreateService(context.Context, CreateServiceRequest) (Service, error)
	UpdateService(context.Context, UpdateServiceRequest) (Service, error)
	DeleteService(ctx context.Context, id string) error
	ToggleService(ctx context.Context, id string) (Service, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]Category, error)
	CreateCategory(context.Context, CreateCategoryRequest) (Category, error)
}

var (
	ErrInvalidID               = errors.New("invalid_id")
	ErrInvalidName             = errors.New("invalid_name")
	ErrInvalidColor            = errors.New("invalid_color")
	ErrInvalidPrice            = errors.New("invalid_price")
	ErrInvalidUnit             = errors.New("invalid_unit")
	ErrInvalidCategory         = errors.New("invalid_category")
	ErrInvalidDescription      = errors.New("invalid_description")
	ErrInvalidEstimatedMinutes = errors.New("invalid_estimated_minutes")
	ErrNotFound                = errors.New("not_found")
	ErrCategoryNotFound        = errors.New("category_not_found")
	ErrDuplicateCategory       = errors.New("duplicate_category")
)
