package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter is the repository-level listing filter. Limit is the row cap
// after the service has already added its look-ahead row; the cursor fields
// resume a created_at desc scan.
type ListFilter struct {
	Status     Status
	Limit      int
	CursorTime *time.Time
	CursorID   snowflake.ID
}

type Repository interface {
	// CreateInvoice inserts the header then its items using the given
	// handle; callers pass a transaction so the writes commit or roll back
	// together.
	CreateInvoice(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Invoice, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
}
