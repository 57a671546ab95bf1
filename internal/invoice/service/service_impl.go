package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Victamina15/billtracky-2/internal/clock"
	"github.com/Victamina15/billtracky-2/internal/config"
	"github.com/Victamina15/billtracky-2/internal/invoice/domain"
	"github.com/Victamina15/billtracky-2/pkg/db"
	"github.com/Victamina15/billtracky-2/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Billing *config.BillingConfigHolder
	Repo    domain.Repository
}

type service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	billing *config.BillingConfigHolder
	repo    domain.Repository
}

func New(p Params) domain.Service {
	return &service{
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		billing: p.Billing,
		repo:    p.Repo,
	}
}

// Create writes the header and every line inside one transaction. The
// snowflake suffix keeps numbers unique across concurrent commits, so two
// registers ringing up in the same millisecond never collide.
func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Invoice, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrNoItems
	}

	id := s.genID.Generate()
	invoice := &domain.Invoice{
		ID:               id,
		InvoiceNumber:    s.nextInvoiceNumber(id),
		CustomerID:       req.CustomerID,
		DeliveryDate:     req.DeliveryDate,
		Subtotal:         req.Subtotal,
		Tax:              req.Tax,
		Total:            req.Total,
		PaymentMethodID:  req.PaymentMethodID,
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
		Status:           domain.StatusPending,
		CreatedAt:        s.clock.Now().UTC(),
	}
	for _, item := range req.Items {
		invoice.Items = append(invoice.Items, domain.InvoiceItem{
			ID:          s.genID.Generate(),
			InvoiceID:   id,
			ServiceID:   item.ServiceID,
			ServiceName: item.Name,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Subtotal:    item.Subtotal,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.CreateInvoice(ctx, tx, invoice)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateNumber
		}
		s.log.Error("invoice commit rolled back",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	s.log.Info("invoice committed",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("total", invoice.Total.StringFixed(2)),
	)
	return invoice, nil
}

func (s *service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResult, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 50
	}

	filter := domain.ListFilter{
		Status: req.Status,
		// One extra row tells us whether another page exists.
		Limit: req.Limit + 1,
	}
	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		cursorTime, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		cursorID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		filter.CursorTime = &cursorTime
		filter.CursorID = cursorID
	}

	invoices, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	result := &domain.ListResult{Invoices: invoices}
	if len(invoices) > req.Limit {
		result.Invoices = invoices[:req.Limit]
		last := result.Invoices[len(result.Invoices)-1]
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        last.ID.String(),
			CreatedAt: last.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return nil, err
		}
		result.PageInfo = pagination.PageInfo{NextPageToken: token, HasMore: true}
	}
	return result, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Invoice, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	invoiceID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, s.db, invoiceID, status); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// nextInvoiceNumber builds "<prefix>-YYYYMMDD-<id>". The invoice's own
// snowflake id doubles as the uniqueness suffix.
func (s *service) nextInvoiceNumber(id snowflake.ID) string {
	cfg := s.billing.Get()
	day := s.clock.Now().UTC().Format("20060102")
	return fmt.Sprintf("%s-%s-%s", cfg.InvoicePrefix, day, id.String())
}

func parseID(id string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return parsed, nil
}
