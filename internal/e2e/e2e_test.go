package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
	catalogrepository "github.com/Victamina15/billtracky-2/internal/catalog/repository"
	catalogservice "github.com/Victamina15/billtracky-2/internal/catalog/service"
	checkoutservice "github.com/Victamina15/billtracky-2/internal/checkout/service"
	"github.com/Victamina15/billtracky-2/internal/checkout/session"
	"github.com/Victamina15/billtracky-2/internal/clock"
	"github.com/Victamina15/billtracky-2/internal/config"
	customerdomain "github.com/Victamina15/billtracky-2/internal/customer/domain"
	customerrepository "github.com/Victamina15/billtracky-2/internal/customer/repository"
	customerservice "github.com/Victamina15/billtracky-2/internal/customer/service"
	invoicedomain "github.com/Victamina15/billtracky-2/internal/invoice/domain"
	invoicerepository "github.com/Victamina15/billtracky-2/internal/invoice/repository"
	invoiceservice "github.com/Victamina15/billtracky-2/internal/invoice/service"
	"github.com/Victamina15/billtracky-2/internal/observability"
	obsmetrics "github.com/Victamina15/billtracky-2/internal/observability/metrics"
	paymentmethoddomain "github.com/Victamina15/billtracky-2/internal/paymentmethod/domain"
	paymentmethodrepository "github.com/Victamina15/billtracky-2/internal/paymentmethod/repository"
	paymentmethodservice "github.com/Victamina15/billtracky-2/internal/paymentmethod/service"
	"github.com/Victamina15/billtracky-2/internal/seed"
	"github.com/Victamina15/billtracky-2/internal/server"
)

type testEnv struct {
	db      *gorm.DB
	httpSrv *httptest.Server
	baseURL string
}

func startEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	require.NoError(t, seed.EnsureDefaults(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	billing := config.NewStaticBillingConfigHolder(config.DefaultBillingConfig())

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
		DB: conn, Log: log, GenID: node, Clock: clock.NewSystem(),
		Billing: billing, Repo: invoicerepository.Provide(),
	})
	checkouts := checkoutservice.New(checkoutservice.Params{
		Log:       log,
		Sessions:  session.NewManager(clock.NewSystem(), log),
		Billing:   billing,
		Catalog:   catalog,
		Payments:  payments,
		Customers: customers,
		Invoices:  invoices,
	})

	metrics, err := obsmetrics.NewHTTPMetrics()
	require.NoError(t, err)
	engine := server.NewEngine(observability.Config{}, metrics)
	server.NewServer(server.ServerParams{
		Gin:              engine,
		Cfg:              config.Config{},
		Log:              log,
		CatalogSvc:       catalog,
		PaymentMethodSvc: payments,
		CustomerSvc:      customers,
		InvoiceSvc:       invoices,
		CheckoutSvc:      checkouts,
	})

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return &testEnv{db: conn, httpSrv: srv, baseURL: srv.URL}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, e.baseURL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func decodeData(t *testing.T, payload []byte, out any) {
	t.Helper()
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &wrapper))
	require.NoError(t, json.Unmarshal(wrapper.Data, out))
}

func TestHealthCheck(t *testing.T) {
	env := startEnv(t)

	resp, _ := env.request(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSeededCatalogIsServed(t *testing.T) {
	env := startEnv(t)

	resp, payload := env.request(t, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []catalogdomain.Category
	decodeData(t, payload, &categories)
	assert.NotEmpty(t, categories)

	resp, payload = env.request(t, http.MethodGet, "/api/v1/payment-methods", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var methods []paymentmethoddomain.PaymentMethod
	decodeData(t, payload, &methods)
	assert.NotEmpty(t, methods)
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	env := startEnv(t)

	var services []catalogdomain.Service
	resp, payload := env.request(t, http.MethodGet, "/api/v1/services", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, payload, &services)
	require.NotEmpty(t, services)

	var methods []paymentmethoddomain.PaymentMethod
	resp, payload = env.request(t, http.MethodGet, "/api/v1/payment-methods", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, payload, &methods)

	var cash paymentmethoddomain.PaymentMethod
	for _, method := range methods {
		if !method.RequiresReference {
			cash = method
			break
		}
	}
	require.NotZero(t, cash.ID)

	resp, payload = env.request(t, http.MethodPost, "/api/v1/checkout/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var view struct {
		SessionID string `json:"session_id"`
	}
	decodeData(t, payload, &view)
	base := "/api/v1/checkout/sessions/" + view.SessionID

	// Committing the empty cart must fail before anything is written.
	resp, _ = env.request(t, http.MethodPost, base+"/commit", nil)
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)

	resp, _ = env.request(t, http.MethodPost, base+"/items", map[string]any{
		"service_id": services[0].ID.String(),
		"quantity":   "2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.request(t, http.MethodPost, base+"/payment-method", map[string]any{
		"method_id": cash.ID.String(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, payload = env.request(t, http.MethodPost, base+"/commit", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var committed invoicedomain.Invoice
	decodeData(t, payload, &committed)
	assert.Equal(t, invoicedomain.StatusPending, committed.Status)
	assert.Regexp(t, fmt.Sprintf(`^F-%s-\d+$`, time.Now().UTC().Format("20060102")), committed.InvoiceNumber)
	require.Len(t, committed.Items, 1)

	var count int64
	require.NoError(t, env.db.Model(&invoicedomain.InvoiceItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The session's cart is empty again after the commit.
	resp, payload = env.request(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var after struct {
		Items []json.RawMessage `json:"items"`
	}
	decodeData(t, payload, &after)
	assert.Empty(t, after.Items)
}

func TestUnknownServiceReturnsNotFound(t *testing.T) {
	env := startEnv(t)

	resp, payload := env.request(t, http.MethodPost, "/api/v1/checkout/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var view struct {
		SessionID string `json:"session_id"`
	}
	decodeData(t, payload, &view)

	node, err := snowflake.NewNode(7)
	require.NoError(t, err)
	resp, _ = env.request(t, http.MethodPost, "/api/v1/checkout/sessions/"+view.SessionID+"/items", map[string]any{
		"service_id": node.Generate().String(),
		"quantity":   "1",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
