package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidID    = errors.New("invalid_customer_id")
	ErrInvalidName  = errors.New("invalid_customer_name")
	ErrInvalidPhone = errors.New("invalid_customer_phone")
	ErrNotFound     = errors.New("customer_not_found")
)

type SearchRequest struct {
	// Query matches against name and phone, case-insensitive.
	Query string
	Limit int
}

type CreateRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

type UpdateRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

type Service interface {
	Search(ctx context.Context, req SearchRequest) ([]Customer, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	Create(ctx context.Context, req CreateRequest) (*Customer, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Customer, error)
}
