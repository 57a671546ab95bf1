package repository

import (
	"context"
	"errors"

	"github.com/Victamina15/billtracky-2/internal/catalog/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListServices(ctx context.Context, db *gorm.DB, filter domain.ServiceFilter) ([]*domain.Service, error) {
	var services []*domain.Service
	stmt := db.WithContext(ctx).Model(&domain.Service{})
	if filter.CategoryID != 0 {
		stmt = stmt.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}
	err := stmt.Order("name asc").Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repo) FindServiceByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Service, error) {
	var service domain.Service
	err := db.WithContext(ctx).First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *repo) InsertService(ctx context.Context, db *gorm.DB, service *domain.Service) error {
	return db.WithContext(ctx).Create(service).Error
}

func (r *repo) UpdateService(ctx context.Context, db *gorm.DB, service *domain.Service) error {
	return db.WithContext(ctx).Save(service).Error
}

func (r *repo) DeleteService(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Service{}, "id = ?", id).Error
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*domain.Category, error) {
	var categories []*domain.Category
	stmt := db.WithContext(ctx).Model(&domain.Category{})
	if activeOnly {
		stmt = stmt.Where("active = ?", true)
	}
	err := stmt.Order("name asc").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Category, error) {
	var category domain.Category
	err := db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *repo) InsertCategory(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Create(category).Error
}
