package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/Victamina15/billtracky-2/internal/customer/domain"
)

type repository struct{}

func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) Search(ctx context.Context, db *gorm.DB, req domain.SearchRequest) ([]domain.Customer, error) {
	var customers []domain.Customer
	query := db.WithContext(ctx).Model(&domain.Customer{})
	if req.Query != "" {
		like := "%" + req.Query + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", like, like)
	}
	if req.Limit > 0 {
		query = query.Limit(req.Limit)
	}
	if err := query.Order("name asc").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repository) Create(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Save(customer).Error
}
