package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/Victamina15/billtracky-2/internal/invoice/domain"
)

type repository struct{}

func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) CreateInvoice(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	items := invoice.Items
	invoice.Items = nil
	if err := db.WithContext(ctx).Create(invoice).Error; err != nil {
		invoice.Items = items
		return err
	}
	invoice.Items = items

	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	query := db.WithContext(ctx).Model(&domain.Invoice{}).Preload("Items")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CursorTime != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			*filter.CursorTime, *filter.CursorTime, filter.CursorID,
		)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Order("created_at desc, id desc").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repository) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status) error {
	result := db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
