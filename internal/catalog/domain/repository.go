package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ServiceFilter struct {
	CategoryID snowflake.ID
	Active     *bool
}

type Repository interface {
	ListServices(ctx context.Context, db *gorm.DB, filter ServiceFilter) ([]*Service, error)
	FindServiceByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Service, error)
	InsertService(ctx context.Context, db *gorm.DB, service *Service) error
	UpdateService(ctx context.Context, db *gorm.DB, service *Service) error
	DeleteService(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	ListCategories(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*Category, error)
	FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Category, error)
	InsertCategory(ctx context.Context, db *gorm.DB, category *Category) error
}
