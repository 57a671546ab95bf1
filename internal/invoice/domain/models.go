// Package domain contains the durable invoice models. An invoice is written
// exactly once at commit; status transitions happen through UpdateStatus and
// never touch the money columns.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
)

// Status tracks an invoice through the shop workflow. New invoices always
// start at StatusPending.
type Status string

const (
	StatusPending   Status = "pending"
	StatusInProcess Status = "in_process"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProcess, StatusReady, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

type Invoice struct {
	ID               snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceNumber    string          `gorm:"not null;uniqueIndex" json:"invoice_number"`
	CustomerID       *snowflake.ID   `gorm:"index" json:"customer_id,omitempty"`
	DeliveryDate     *time.Time      `gorm:"type:date" json:"delivery_date,omitempty"`
	Subtotal         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Tax              decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tax"`
	Total            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	PaymentMethodID  snowflake.ID    `gorm:"not null" json:"payment_method_id"`
	PaymentReference *string         `json:"payment_reference,omitempty"`
	Notes            string          `gorm:"not null;default:''" json:"notes"`
	Status           Status          `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	Items            []InvoiceItem   `gorm:"foreignKey:InvoiceID" json:"items"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one persisted line. Name, price and unit were snapshotted
// when the line entered the cart, so catalog edits never rewrite history.
type InvoiceItem struct {
	ID          snowflake.ID       `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID       `gorm:"not null;index" json:"invoice_id"`
	ServiceID   snowflake.ID       `gorm:"not null" json:"service_id"`
	ServiceName string             `gorm:"column:service_name;not null" json:"service_name"`
	UnitPrice   decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity    decimal.Decimal    `gorm:"type:numeric(12,3);not null" json:"quantity"`
	Unit        catalogdomain.Unit `gorm:"type:text;not null" json:"unit"`
	Subtotal    decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	CreatedAt   time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }
