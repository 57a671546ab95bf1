package migration

import (
	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
	"github.com/Victamina15/billtracky-2/internal/config"
	customerdomain "github.com/Victamina15/billtracky-2/internal/customer/domain"
	invoicedomain "github.com/Victamina15/billtracky-2/internal/invoice/domain"
	paymentmethoddomain "github.com/Victamina15/billtracky-2/internal/paymentmethod/domain"
	"github.com/Victamina15/billtracky-2/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql installs rely on gorm's schema builder.
			if err := conn.AutoMigrate(
				&catalogdomain.Category{},
				&catalogdomain.Service{},
				&paymentmethoddomain.PaymentMethod{},
				&customerdomain.Customer{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaults(conn)
	}),
)
