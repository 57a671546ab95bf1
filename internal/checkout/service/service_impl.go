package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Victamina15/billtracky-2/internal/cart"
	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
	"github.com/Victamina15/billtracky-2/internal/checkout/domain"
	"github.com/Victamina15/billtracky-2/internal/checkout/session"
	"github.com/Victamina15/billtracky-2/internal/config"
	customerdomain "github.com/Victamina15/billtracky-2/internal/customer/domain"
	invoicedomain "github.com/Victamina15/billtracky-2/internal/invoice/domain"
	paymentmethoddomain "github.com/Victamina15/billtracky-2/internal/paymentmethod/domain"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Sessions  *session.Manager
	Billing   *config.BillingConfigHolder
	Catalog   catalogdomain.Catalog
	Payments  paymentmethoddomain.Service
	Customers customerdomain.Service
	Invoices  invoicedomain.Service
}

type service struct {
	log       *zap.Logger
	sessions  *session.Manager
	billing   *config.BillingConfigHolder
	catalog   catalogdomain.Catalog
	payments  paymentmethoddomain.Service
	customers customerdomain.Service
	invoices  invoicedomain.Service
}

func New(p Params) domain.Service {
	return &service{
		log:       p.Log.Named("checkout.service"),
		sessions:  p.Sessions,
		billing:   p.Billing,
		catalog:   p.Catalog,
		payments:  p.Payments,
		customers: p.Customers,
		invoices:  p.Invoices,
	}
}

func (s *service) StartSession(_ context.Context) (*domain.CartView, error) {
	id, c := s.sessions.Create()
	return s.view(id, c), nil
}

func (s *service) View(_ context.Context, sessionID string) (*domain.CartView, error) {
	c, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sessionID, c), nil
}

func (s *service) AddItem(ctx context.Context, sessionID, serviceID string, quantity decimal.Decimal) (*domain.CartView, error) {
	c, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}

	svc, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		return nil, classifyLookupErr(err, catalogdomain.ErrNotFound, catalogdomain.ErrInvalidID)
	}

	if _, err := c.AddService(&svc, quantity); err != nil {
		return nil, err
	}
	return s.view(sessionID, c), nil
}

func (s *service) SetQuantity(_ context.Context, sessionID, lineID string, quantity decimal.Decimal) (*domain.CartView, error) {
	return s.mutate(sessionID, func(c *cart.Cart) error {
		return c.SetQuantity(lineID, quantity)
	})
}

func (s *service) Increment(_ context.Context, sessionID, lineID string) (*domain.CartView, error) {
	return s.mutate(sessionID, func(c *cart.Cart) error {
		return c.Increment(lineID)
	})
}

func (s *service) Decrement(_ context.Context, sessionID, lineID string) (*domain.CartView, error) {
	return s.mutate(sessionID, func(c *cart.Cart) error {
		return c.Decrement(lineID)
	})
}

func (s *service) RemoveItem(_ context.Context, sessionID, lineID string) (*domain.CartView, error) {
	return s.mutate(sessionID, func(c *cart.Cart) error {
		c.RemoveItem(lineID)
		return nil
	})
}

func (s *service) UpdateHeader(ctx context.Context, sessionID string, req domain.HeaderUpdate) (*domain.CartView, error) {
	c, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		if *req.CustomerID == "" {
			c.SetCustomer(nil)
		} else {
			customer, err := s.customers.GetByID(ctx, *req.CustomerID)
			if err != nil {
				return nil, classifyLookupErr(err, customerdomain.ErrNotFound, customerdomain.ErrInvalidID)
			}
			id := customer.ID
			c.SetCustomer(&id)
		}
	}
	if req.DeliveryDate != nil {
		date := *req.DeliveryDate
		c.SetDeliveryDate(&date)
	}
	if req.Notes != nil {
		c.SetNotes(*req.Notes)
	}
	return s.view(sessionID, c), nil
}

func (s *service) SelectPaymentMethod(ctx context.Context, sessionID, methodID string) (*domain.CartView, error) {
	c, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}

	method, err := s.payments.GetByID(ctx, methodID)
	if err != nil {
		return nil, classifyLookupErr(err, paymentmethoddomain.ErrNotFound, paymentmethoddomain.ErrInvalidID)
	}

	c.SetPaymentMethod(&method)
	return s.view(sessionID, c), nil
}

func (s *service) SetReference(_ context.Context, sessionID, reference string) (*domain.CartView, error) {
	return s.mutate(sessionID, func(c *cart.Cart) error {
		return c.SetReference(reference)
	})
}

// Commit re-checks the cart's preconditions itself rather than trusting a
// stale UI check, then snapshots the totals and hands them to the invoice
// transaction. The cart is only cleared once the write has committed.
func (s *service) Commit(ctx context.Context, sessionID string) (*invoicedomain.Invoice, error) {
	c, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}

	if err := c.CanCommit(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPrecondition, err)
	}

	items := c.Items()
	payment := c.Payment()
	totals := cart.ComputeTotals(items, s.billing.Get().TaxFraction())

	req := invoicedomain.CreateRequest{
		CustomerID:      c.CustomerID(),
		DeliveryDate:    c.DeliveryDate(),
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Total:           totals.Total,
		PaymentMethodID: payment.MethodID,
		Notes:           c.Notes(),
	}
	if payment.Reference != "" {
		reference := payment.Reference
		req.PaymentReference = &reference
	}
	for _, li := range items {
		req.Items = append(req.Items, invoicedomain.CreateItem{
			ServiceID: li.ServiceID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			Unit:      li.Unit,
			Subtotal:  li.Subtotal(),
		})
	}

	invoice, err := s.invoices.Create(ctx, req)
	if err != nil {
		// Rollback already happened storage-side; the cart keeps its
		// items so the operator can retry.
		return nil, err
	}

	c.Clear()
	return invoice, nil
}

func (s *service) Clear(_ context.Context, sessionID string) error {
	c, err := s.cart(sessionID)
	if err != nil {
		return err
	}
	c.Clear()
	return nil
}

func (s *service) cart(sessionID string) (*cart.Cart, error) {
	c, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return c, nil
}

func (s *service) mutate(sessionID string, fn func(*cart.Cart) error) (*domain.CartView, error) {
	c, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	return s.view(sessionID, c), nil
}

func (s *service) view(sessionID string, c *cart.Cart) *domain.CartView {
	items := c.Items()
	return &domain.CartView{
		SessionID: sessionID,
		Items:     items,
		ItemCount: c.ItemCount(),
		Totals:    cart.ComputeTotals(items, s.billing.Get().TaxFraction()),
		Payment:   c.Payment(),
		CanCommit: c.CanCommit() == nil,
	}
}

// classifyLookupErr keeps caller-input errors intact and tags everything else
// as a dependency failure so the UI can offer a retry instead of blaming the
// request.
func classifyLookupErr(err error, passthrough ...error) error {
	for _, sentinel := range passthrough {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrDependency, err)
}
