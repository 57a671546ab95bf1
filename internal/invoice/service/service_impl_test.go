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
	"github.com/Victamina15/billtracky-2/internal/clock"
	"github.com/Victamina15/billtracky-2/internal/config"
	"github.com/Victamina15/billtracky-2/internal/invoice/domain"
	"github.com/Victamina15/billtracky-2/internal/invoice/repository"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Invoice{}, &domain.InvoiceItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC))
	svc := New(Params{
		DB:      conn,
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   fake,
		Billing: config.NewStaticBillingConfigHolder(config.DefaultBillingConfig()),
		Repo:    repository.Provide(),
	})
	return svc, conn, fake
}

func createRequest(node *snowflake.Node) domain.CreateRequest {
	return domain.CreateRequest{
		PaymentMethodID: node.Generate(),
		Subtotal:        decimal.NewFromFloat(380),
		Tax:             decimal.NewFromFloat(68.40),
		Total:           decimal.NewFromFloat(448.40),
		Items: []domain.CreateItem{
			{
				ServiceID: node.Generate(),
				Name:      "Servicio A",
				UnitPrice: decimal.NewFromFloat(150),
				Quantity:  decimal.NewFromInt(2),
				Unit:      catalogdomain.UnitWeight,
				Subtotal:  decimal.NewFromFloat(300),
			},
			{
				ServiceID: node.Generate(),
				Name:      "Servicio B",
				UnitPrice: decimal.NewFromFloat(80),
				Quantity:  decimal.NewFromInt(1),
				Unit:      catalogdomain.UnitCount,
				Subtotal:  decimal.NewFromFloat(80),
			},
		},
	}
}

func TestCreatePersistsHeaderAndItems(t *testing.T) {
	svc, conn, _ := setupService(t)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	invoice, err := svc.Create(context.Background(), createRequest(node))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, invoice.Status)
	assert.Regexp(t, `^F-20260115-\d+$`, invoice.InvoiceNumber)
	assert.Equal(t, "448.40", invoice.Total.StringFixed(2))
	require.Len(t, invoice.Items, 2)

	var stored domain.Invoice
	require.NoError(t, conn.Preload("Items").First(&stored, "id = ?", invoice.ID).Error)
	require.Len(t, stored.Items, 2)

	sum := decimal.Zero
	for _, item := range stored.Items {
		sum = sum.Add(item.Subtotal)
	}
	assert.Equal(t, "380.00", sum.StringFixed(2))
}

func TestCreateRequiresItems(t *testing.T) {
	svc, conn, _ := setupService(t)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	req := createRequest(node)
	req.Items = nil
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNoItems)

	var count int64
	require.NoError(t, conn.Model(&domain.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRollsBackOnItemFailure(t *testing.T) {
	svc, conn, _ := setupService(t)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	// The header insert succeeds, the item insert fails; nothing may
	// survive the rollback.
	require.NoError(t, conn.Migrator().DropTable(&domain.InvoiceItem{}))

	_, err = svc.Create(context.Background(), createRequest(node))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	var count int64
	require.NoError(t, conn.Model(&domain.Invoice{}).Count(&count).Error)
	assert.Zero(t, count, "header row must not survive a failed item insert")
}

func TestCreateInvoiceNumberFollowsClock(t *testing.T) {
	svc, _, fake := setupService(t)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	fake.Advance(24 * time.Hour)
	invoice, err := svc.Create(context.Background(), createRequest(node))
	require.NoError(t, err)
	assert.Regexp(t, `^F-20260116-\d+$`, invoice.InvoiceNumber)
}

func TestListFiltersByStatusAndOrdersRecentFirst(t *testing.T) {
	svc, _, fake := setupService(t)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	first, err := svc.Create(context.Background(), createRequest(node))
	require.NoError(t, err)
	fake.Advance(time.Hour)
	second, err := svc.Create(context.Background(), createRequest(node))
	require.NoError(t, err)

	result, err := svc.List(context.Background(), domain.ListRequest{Status: domain.StatusPending})
	require.NoError(t, err)
	require.Len(t, result.Invoices, 2)
	assert.Equal(t, second.ID, result.Invoices[0].ID)
	assert.Equal(t, first.ID, result.Invoices[1].ID)
	assert.False(t, result.PageInfo.HasMore)

	_, err = svc.List(context.Background(), domain.ListRequest{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestListPaginatesWithCursor(t *testing.T) {
	svc, _, fake := setupService(t)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	var ids []snowflake.ID
	for i := 0; i < 3; i++ {
		invoice, err := svc.Create(context.Background(), createRequest(node))
		require.NoError(t, err)
		ids = append(ids, invoice.ID)
		fake.Advance(time.Hour)
	}

	first, err := svc.List(context.Background(), domain.ListRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Invoices, 2)
	assert.True(t, first.PageInfo.HasMore)
	require.NotEmpty(t, first.PageInfo.NextPageToken)
	assert.Equal(t, ids[2], first.Invoices[0].ID)
	assert.Equal(t, ids[1], first.Invoices[1].ID)

	second, err := svc.List(context.Background(), domain.ListRequest{
		Limit:     2,
		PageToken: first.PageInfo.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, second.Invoices, 1)
	assert.Equal(t, ids[0], second.Invoices[0].ID)
	assert.False(t, second.PageInfo.HasMore)

	_, err = svc.List(context.Background(), domain.ListRequest{PageToken: "!!!"})
	assert.ErrorIs(t, err, domain.ErrInvalidPageToken)
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _ := setupService(t)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	invoice, err := svc.Create(context.Background(), createRequest(node))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), invoice.ID.String(), domain.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), invoice.ID.String(), "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), node.Generate().String(), domain.StatusReady)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID(t *testing.T) {
	svc, _, _ := setupService(t)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	invoice, err := svc.Create(context.Background(), createRequest(node))
	require.NoError(t, err)

	found, err := svc.GetByID(context.Background(), invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, invoice.InvoiceNumber, found.InvoiceNumber)
	assert.Len(t, found.Items, 2)

	_, err = svc.GetByID(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(context.Background(), node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
