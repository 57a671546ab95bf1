// Package seed bootstraps the default catalog and payment methods on startup.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
	paymentmethoddomain "github.com/Victamina15/billtracky-2/internal/paymentmethod/domain"
)

// EnsureDefaults seeds the starter categories, services and payment methods
// so a fresh install can ring up an invoice without any setup.
func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := ensureCategoriesTx(ctx, tx, node)
		if err != nil {
			return err
		}
		if err := ensureServicesTx(ctx, tx, node, categories); err != nil {
			return err
		}
		return ensurePaymentMethodsTx(ctx, tx, node)
	})
}

func ensureCategoriesTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (map[string]snowflake.ID, error) {
	defaults := []catalogdomain.Category{
		{Name: "Lavado", Slug: "lavado", Color: "#3B82F6", Active: true},
		{Name: "Planchado", Slug: "planchado", Color: "#F59E0B", Active: true},
		{Name: "Lavado en Seco", Slug: "lavado-en-seco", Color: "#8B5CF6", Active: true},
		{Name: "Especiales", Slug: "especiales", Color: "#10B981", Active: true},
	}

	ids := make(map[string]snowflake.ID, len(defaults))
	for _, category := range defaults {
		var existing catalogdomain.Category
		err := tx.WithContext(ctx).Where("slug = ?", category.Slug).First(&existing).Error
		if err == nil {
			ids[category.Slug] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		category.ID = node.Generate()
		if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
			return nil, err
		}
		ids[category.Slug] = category.ID
	}
	return ids, nil
}

func ensureServicesTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, categories map[string]snowflake.ID) error {
	minutes := func(m int) *int { return &m }
	defaults := []struct {
		category string
		service  catalogdomain.Service
	}{
		{"lavado", catalogdomain.Service{
			Name:             "Lavado por libra",
			Price:            decimal.NewFromFloat(25),
			Unit:             catalogdomain.UnitWeight,
			EstimatedMinutes: minutes(90),
			Active:           true,
		}},
		{"lavado", catalogdomain.Service{
			Name:   "Edredón",
			Price:  decimal.NewFromFloat(350),
			Unit:   catalogdomain.UnitCount,
			Active: true,
		}},
		{"planchado", catalogdomain.Service{
			Name:             "Camisa",
			Price:            decimal.NewFromFloat(50),
			Unit:             catalogdomain.UnitCount,
			EstimatedMinutes: minutes(15),
			Active:           true,
		}},
		{"planchado", catalogdomain.Service{
			Name:             "Pantalón",
			Price:            decimal.NewFromFloat(60),
			Unit:             catalogdomain.UnitCount,
			EstimatedMinutes: minutes(15),
			Active:           true,
		}},
		{"lavado-en-seco", catalogdomain.Service{
			Name:   "Traje completo",
			Price:  decimal.NewFromFloat(450),
			Unit:   catalogdomain.UnitCount,
			Active: true,
		}},
		{"especiales", catalogdomain.Service{
			Name:   "Cortina por metro",
			Price:  decimal.NewFromFloat(80),
			Unit:   catalogdomain.UnitLength,
			Active: true,
		}},
	}

	for _, entry := range defaults {
		categoryID, ok := categories[entry.category]
		if !ok {
			continue
		}

		var count int64
		err := tx.WithContext(ctx).Model(&catalogdomain.Service{}).
			Where("name = ? AND category_id = ?", entry.service.Name, categoryID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		service := entry.service
		service.ID = node.Generate()
		service.CategoryID = categoryID
		if err := tx.WithContext(ctx).Create(&service).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensurePaymentMethodsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	commission := func(f float64) *decimal.Decimal {
		d := decimal.NewFromFloat(f)
		return &d
	}
	defaults := []paymentmethoddomain.PaymentMethod{
		{Name: "Efectivo", Type: paymentmethoddomain.TypeCash, RequiresReference: false, Active: true},
		{Name: "Tarjeta", Type: paymentmethoddomain.TypeCard, RequiresReference: true, CommissionPercent: commission(2.5), Active: true},
		{Name: "Transferencia", Type: paymentmethoddomain.TypeTransfer, RequiresReference: true, Active: true},
		{Name: "Crédito", Type: paymentmethoddomain.TypeCredit, RequiresReference: false, Active: true},
	}

	for _, method := range defaults {
		var count int64
		err := tx.WithContext(ctx).Model(&paymentmethoddomain.PaymentMethod{}).
			Where("name = ?", method.Name).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		method.ID = node.Generate()
		if err := tx.WithContext(ctx).Create(&method).Error; err != nil {
			return err
		}
	}
	return nil
}
