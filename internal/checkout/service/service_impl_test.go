package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
	catalogrepository "github.com/Victamina15/billtracky-2/internal/catalog/repository"
	catalogservice "github.com/Victamina15/billtracky-2/internal/catalog/service"
	"github.com/Victamina15/billtracky-2/internal/checkout/domain"
	"github.com/Victamina15/billtracky-2/internal/checkout/session"
	"github.com/Victamina15/billtracky-2/internal/clock"
	"github.com/Victamina15/billtracky-2/internal/config"
	customerdomain "github.com/Victamina15/billtracky-2/internal/customer/domain"
	customerrepository "github.com/Victamina15/billtracky-2/internal/customer/repository"
	customerservice "github.com/Victamina15/billtracky-2/internal/customer/service"
	invoicedomain "github.com/Victamina15/billtracky-2/internal/invoice/domain"
	invoicerepository "github.com/Victamina15/billtracky-2/internal/invoice/repository"
	invoiceservice "github.com/Victamina15/billtracky-2/internal/invoice/service"
	paymentmethoddomain "github.com/Victamina15/billtracky-2/internal/paymentmethod/domain"
	paymentmethodrepository "github.com/Victamina15/billtracky-2/internal/paymentmethod/repository"
	paymentmethodservice "github.com/Victamina15/billtracky-2/internal/paymentmethod/service"
)

type fixture struct {
	svc  domain.Service
	conn *gorm.DB

	cash   paymentmethoddomain.PaymentMethod
	card   paymentmethoddomain.PaymentMethod
	svcA   catalogdomain.Service
	svcB   catalogdomain.Service
	walkIn customerdomain.Customer
}

func setup(t *testing.T) *fixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&catalogdomain.Category{},
		&catalogdomain.Service{},
		&paymentmethoddomain.PaymentMethod{},
		&customerdomain.Customer{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	billing := config.NewStaticBillingConfigHolder(config.DefaultBillingConfig())
	fake := clock.NewFakeClock(time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC))

	catalog := catalogservice.New(catalogservice.Params{
		DB: conn, Log: log, GenID: node, Repo: catalogrepository.Provide(),
	})
	payments := paymentmethodservice.New(paymentmethodservice.Params{
		DB: conn, Log: log, GenID: node, Repo: paymentmethodrepository.Provide(),
	})
	customers := customerservice.New(customerservice.Params{
		DB: conn, Log: log, GenID: node, Repo: customerrepository.Provide(),
	})
	invoices := invoiceservice.New(invoiceservice.Params{
		DB: conn, Log: log, GenID: node, Clock: fake,
		Billing: billing, Repo: invoicerepository.Provide(),
	})

	ctx := context.Background()
	category, err := catalog.CreateCategory(ctx, catalogdomain.CreateCategoryRequest{
		Name: "Lavado", Color: "#3B82F6",
	})
	require.NoError(t, err)

	svcA, err := catalog.CreateService(ctx, catalogdomain.CreateServiceRequest{
		CategoryID: category.ID.String(),
		Name:       "Servicio A",
		Price:      decimal.NewFromFloat(150),
		Unit:       catalogdomain.UnitWeight,
	})
	require.NoError(t, err)
	svcB, err := catalog.CreateService(ctx, catalogdomain.CreateServiceRequest{
		CategoryID: category.ID.String(),
		Name:       "Servicio B",
		Price:      decimal.NewFromFloat(80),
		Unit:       catalogdomain.UnitCount,
	})
	require.NoError(t, err)

	cash, err := payments.Create(ctx, paymentmethoddomain.CreateRequest{
		Name: "Efectivo", Type: paymentmethoddomain.TypeCash,
	})
	require.NoError(t, err)
	card, err := payments.Create(ctx, paymentmethoddomain.CreateRequest{
		Name: "Tarjeta", Type: paymentmethoddomain.TypeCard, RequiresReference: true,
	})
	require.NoError(t, err)

	walkIn, err := customers.Create(ctx, customerdomain.CreateRequest{
		Name: "María Pérez", Phone: "809-555-0101",
	})
	require.NoError(t, err)

	svc := New(Params{
		Log:       log,
		Sessions:  session.NewManager(clock.NewSystem(), log),
		Billing:   billing,
		Catalog:   catalog,
		Payments:  payments,
		Customers: customers,
		Invoices:  invoices,
	})

	return &fixture{
		svc:    svc,
		conn:   conn,
		cash:   cash,
		card:   card,
		svcA:   svcA,
		svcB:   svcB,
		walkIn: *walkIn,
	}
}

func TestCheckoutEndToEnd(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	view, err := f.svc.StartSession(ctx)
	require.NoError(t, err)
	sessionID := view.SessionID

	view, err = f.svc.AddItem(ctx, sessionID, f.svcA.ID.String(), decimal.NewFromInt(2))
	require.NoError(t, err)
	view, err = f.svc.AddItem(ctx, sessionID, f.svcB.ID.String(), decimal.NewFromInt(1))
	require.NoError(t, err)

	assert.Equal(t, "380.00", view.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "68.40", view.Totals.Tax.StringFixed(2))
	assert.Equal(t, "448.40", view.Totals.Total.StringFixed(2))
	assert.False(t, view.CanCommit)

	customerID := f.walkIn.ID.String()
	_, err = f.svc.UpdateHeader(ctx, sessionID, domain.HeaderUpdate{CustomerID: &customerID})
	require.NoError(t, err)

	view, err = f.svc.SelectPaymentMethod(ctx, sessionID, f.cash.ID.String())
	require.NoError(t, err)
	assert.True(t, view.CanCommit)

	invoice, err := f.svc.Commit(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "448.40", invoice.Total.StringFixed(2))
	assert.Equal(t, invoicedomain.StatusPending, invoice.Status)
	require.NotNil(t, invoice.CustomerID)
	assert.Equal(t, f.walkIn.ID, *invoice.CustomerID)
	require.Len(t, invoice.Items, 2)

	sum := decimal.Zero
	for _, item := range invoice.Items {
		sum = sum.Add(item.Subtotal)
	}
	assert.Equal(t, "380.00", sum.StringFixed(2))

	// Commit clears the cart for the next customer.
	view, err = f.svc.View(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Nil(t, view.Payment)
}

func TestCommitEmptyCart(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	view, err := f.svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = f.svc.Commit(ctx, view.SessionID)
	assert.ErrorIs(t, err, domain.ErrPrecondition)

	var count int64
	require.NoError(t, f.conn.Model(&invoicedomain.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommitMissingRequiredReference(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	view, err := f.svc.StartSession(ctx)
	require.NoError(t, err)
	sessionID := view.SessionID

	_, err = f.svc.AddItem(ctx, sessionID, f.svcA.ID.String(), decimal.NewFromInt(1))
	require.NoError(t, err)
	_, err = f.svc.SelectPaymentMethod(ctx, sessionID, f.card.ID.String())
	require.NoError(t, err)

	_, err = f.svc.Commit(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrPrecondition)

	var count int64
	require.NoError(t, f.conn.Model(&invoicedomain.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)

	// With the reference supplied the same cart commits.
	_, err = f.svc.SetReference(ctx, sessionID, "AUTH-1234")
	require.NoError(t, err)
	invoice, err := f.svc.Commit(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, invoice.PaymentReference)
	assert.Equal(t, "AUTH-1234", *invoice.PaymentReference)
}

func TestCommitFailureKeepsCartIntact(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	view, err := f.svc.StartSession(ctx)
	require.NoError(t, err)
	sessionID := view.SessionID

	_, err = f.svc.AddItem(ctx, sessionID, f.svcA.ID.String(), decimal.NewFromInt(2))
	require.NoError(t, err)
	_, err = f.svc.SelectPaymentMethod(ctx, sessionID, f.cash.ID.String())
	require.NoError(t, err)

	// Header insert succeeds, item insert fails, transaction rolls back.
	require.NoError(t, f.conn.Migrator().DropTable(&invoicedomain.InvoiceItem{}))

	_, err = f.svc.Commit(ctx, sessionID)
	require.Error(t, err)
	assert.ErrorIs(t, err, invoicedomain.ErrPersistence)

	var count int64
	require.NoError(t, f.conn.Model(&invoicedomain.Invoice{}).Count(&count).Error)
	assert.Zero(t, count, "no header may survive the rollback")

	view, err = f.svc.View(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "300.00", view.Totals.Subtotal.StringFixed(2))
	assert.NotNil(t, view.Payment)
}

func TestAddItemMergesLines(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	view, err := f.svc.StartSession(ctx)
	require.NoError(t, err)
	sessionID := view.SessionID

	_, err = f.svc.AddItem(ctx, sessionID, f.svcA.ID.String(), decimal.NewFromInt(1))
	require.NoError(t, err)
	view, err = f.svc.AddItem(ctx, sessionID, f.svcA.ID.String(), decimal.NewFromInt(2))
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].Quantity.Equal(decimal.NewFromInt(3)))
}

func TestAddItemUnknownService(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	view, err := f.svc.StartSession(ctx)
	require.NoError(t, err)

	node, err := snowflake.NewNode(9)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, view.SessionID, node.Generate().String(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, catalogdomain.ErrNotFound)
}

func TestUnknownSession(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.View(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = f.svc.Commit(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
