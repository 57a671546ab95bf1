package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// BillingConfig carries the business-level invoicing settings. The tax rate is
// the Dominican ITBIS expressed as a percentage (18 means 18%).
type BillingConfig struct {
	BusinessName  string  `mapstructure:"businessName"`
	RNC           string  `mapstructure:"rnc"`
	Currency      string  `mapstructure:"currency"`
	InvoicePrefix string  `mapstructure:"invoicePrefix"`
	TaxRate       float64 `mapstructure:"taxRate"`
}

func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		BusinessName:  "Billtracky",
		Currency:      "DOP",
		InvoicePrefix: "F",
		TaxRate:       18,
	}
}

// TaxFraction returns the tax rate as a decimal fraction (0.18 for 18%).
func (c BillingConfig) TaxFraction() decimal.Decimal {
	return decimal.NewFromFloat(c.TaxRate).Div(decimal.NewFromInt(100))
}

type BillingConfigHolder struct {
	current atomic.Value // holds BillingConfig
}

func NewBillingConfigHolder() (*BillingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/billtracky")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLTRACKY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultBillingConfig()
		v.SetDefault("billing.businessName", defaults.BusinessName)
		v.SetDefault("billing.currency", defaults.Currency)
		v.SetDefault("billing.invoicePrefix", defaults.InvoicePrefix)
		v.SetDefault("billing.taxRate", defaults.TaxRate)
	}

	var cfg BillingConfig
	if err := v.UnmarshalKey("billing", &cfg); err != nil {
		return nil, err
	}
	if err := validateBillingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated BillingConfig
		if err := v.UnmarshalKey("billing", &updated); err != nil {
			log.Printf("[billing-config] reload failed: %v", err)
			return
		}
		if err := validateBillingConfig(updated); err != nil {
			log.Printf("[billing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[billing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticBillingConfigHolder returns a holder pinned to cfg, for tests.
func NewStaticBillingConfigHolder(cfg BillingConfig) *BillingConfigHolder {
	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *BillingConfigHolder) Get() BillingConfig {
	return h.current.Load().(BillingConfig)
}

func validateBillingConfig(cfg BillingConfig) error {
	if cfg.TaxRate < 0 || cfg.TaxRate > 100 {
		return errors.New("billing.taxRate must be between 0 and 100")
	}
	if strings.TrimSpace(cfg.InvoicePrefix) == "" {
		return errors.New("billing.invoicePrefix cannot be empty")
	}
	return nil
}
