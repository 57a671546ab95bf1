// Package domain contains the sellable-service catalog models.
package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Unit is the unit of measure a service is billed in. The wire values match
// the original storage schema.
type Unit string

const (
	UnitWeight  Unit = "kg"
	UnitCount   Unit = "unidad"
	UnitLength  Unit = "metro"
	UnitService Unit = "servicio"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitWeight, UnitCount, UnitLength, UnitService:
		return true
	default:
		return false
	}
}

// Category groups services for display and filtering.
type Category struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"not null" json:"name"`
	Slug        string       `gorm:"not null;uniqueIndex" json:"slug"`
	Color       string       `gorm:"not null;default:'#6B7280'" json:"color"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	Active      bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func (c *Category) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" || len(name) > 50 {
		return ErrInvalidName
	}
	if !hexColor.MatchString(c.Color) {
		return ErrInvalidColor
	}
	if c.Description != nil && len(*c.Description) > 200 {
		return ErrInvalidDescription
	}
	return nil
}

// Service is one sellable catalog entry. Carts snapshot name, price and unit
// at add time; later edits here never reach an open cart.
type Service struct {
	ID               snowflake.ID    `gorm:"primaryKey" json:"id"`
	CategoryID       snowflake.ID    `gorm:"not null;index" json:"category_id"`
	Name             string          `gorm:"not null" json:"name"`
	Price            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Unit             Unit            `gorm:"type:text;not null" json:"unit"`
	Description      *string         `gorm:"type:text" json:"description,omitempty"`
	EstimatedMinutes *int            `gorm:"column:estimated_minutes" json:"estimated_minutes,omitempty"`
	Active           bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Service) TableName() string { return "services" }

func (s *Service) Validate() error {
	name := strings.TrimSpace(s.Name)
	if name == "" || len(name) > 100 {
		return ErrInvalidName
	}
	if s.CategoryID == 0 {
		return ErrInvalidCategory
	}
	if !s.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if !s.Unit.Valid() {
		return ErrInvalidUnit
	}
	if s.Description != nil && len(*s.Description) > 300 {
		return ErrInvalidDescription
	}
	if s.EstimatedMinutes != nil && *s.EstimatedMinutes <= 0 {
		return ErrInvalidEstimatedMinutes
	}
	return nil
}
