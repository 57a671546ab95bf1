// Package domain contains the configurable payment method models.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Type tags a payment method. The wire values match the original storage
// schema.
type Type string

const (
	TypeCash     Type = "efectivo"
	TypeCard     Type = "tarjeta"
	TypeTransfer Type = "transferencia"
	TypeCredit   Type = "credito"
	TypeOther    Type = "otro"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCash, TypeCard, TypeTransfer, TypeCredit, TypeOther:
		return true
	default:
		return false
	}
}

// PaymentMethod is a tagged payment option. CommissionPercent is advisory
// only; it is surfaced for display and never applied to an invoice total.
type PaymentMethod struct {
	ID                snowflake.ID     `gorm:"primaryKey" json:"id"`
	Name              string           `gorm:"not null" json:"name"`
	Type              Type             `gorm:"type:text;not null" json:"type"`
	Icon              string           `gorm:"not null;default:''" json:"icon"`
	RequiresReference bool             `gorm:"not null;default:false" json:"requires_reference"`
	CommissionPercent *decimal.Decimal `gorm:"type:numeric(5,2)" json:"commission_percent,omitempty"`
	Active            bool             `gorm:"not null;default:true" json:"active"`
	CreatedAt         time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PaymentMethod) TableName() string { return "payment_methods" }

func (m *PaymentMethod) Validate() error {
	name := strings.TrimSpace(m.Name)
	if name == "" || len(name) > 50 {
		return ErrInvalidName
	}
	if !m.Type.Valid() {
		return ErrInvalidType
	}
	if m.CommissionPercent != nil {
		if m.CommissionPercent.IsNegative() || m.CommissionPercent.GreaterThan(decimal.NewFromInt(100)) {
			return ErrInvalidCommission
		}
	}
	return nil
}
