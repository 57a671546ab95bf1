package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*PaymentMethod, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PaymentMethod, error)
	Insert(ctx context.Context, db *gorm.DB, method *PaymentMethod) error
	Update(ctx context.Context, db *gorm.DB, method *PaymentMethod) error
}
