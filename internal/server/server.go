package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Victamina15/billtracky-2/internal/catalog"
	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
	"github.com/Victamina15/billtracky-2/internal/checkout"
	checkoutdomain "github.com/Victamina15/billtracky-2/internal/checkout/domain"
	"github.com/Victamina15/billtracky-2/internal/config"
	"github.com/Victamina15/billtracky-2/internal/customer"
	customerdomain "github.com/Victamina15/billtracky-2/internal/customer/domain"
	"github.com/Victamina15/billtracky-2/internal/invoice"
	invoicedomain "github.com/Victamina15/billtracky-2/internal/invoice/domain"
	"github.com/Victamina15/billtracky-2/internal/observability"
	obsmiddleware "github.com/Victamina15/billtracky-2/internal/observability/logger"
	obsmetrics "github.com/Victamina15/billtracky-2/internal/observability/metrics"
	obstracing "github.com/Victamina15/billtracky-2/internal/observability/tracing"
	"github.com/Victamina15/billtracky-2/internal/paymentmethod"
	paymentmethoddomain "github.com/Victamina15/billtracky-2/internal/paymentmethod/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	catalog.Module,
	paymentmethod.Module,
	customer.Module,
	invoice.Module,
	checkout.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine           *gin.Engine
	cfg              config.Config
	log              *zap.Logger
	catalogSvc       catalogdomain.Catalog
	paymentMethodSvc paymentmethoddomain.Service
	customerSvc      customerdomain.Service
	invoiceSvc       invoicedomain.Service
	checkoutSvc      checkoutdomain.Service
}

type ServerParams struct {
	fx.In

	Gin              *gin.Engine
	Cfg              config.Config
	Log              *zap.Logger
	CatalogSvc       catalogdomain.Catalog
	PaymentMethodSvc paymentmethoddomain.Service
	CustomerSvc      customerdomain.Service
	InvoiceSvc       invoicedomain.Service
	CheckoutSvc      checkoutdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:           p.Gin,
		cfg:              p.Cfg,
		log:              p.Log.Named("http.server"),
		catalogSvc:       p.CatalogSvc,
		paymentMethodSvc: p.PaymentMethodSvc,
		customerSvc:      p.CustomerSvc,
		invoiceSvc:       p.InvoiceSvc,
		checkoutSvc:      p.CheckoutSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	api.GET("/categories", s.ListCategories)
	api.POST("/categories", s.CreateCategory)

	api.GET("/services", s.ListServices)
	api.POST("/services", s.CreateService)
	api.GET("/services/:id", s.GetService)
	api.PATCH("/services/:id", s.UpdateService)
	api.DELETE("/services/:id", s.DeleteService)
	api.POST("/services/:id/toggle", s.ToggleService)

	api.GET("/payment-methods", s.ListPaymentMethods)
	api.POST("/payment-methods", s.CreatePaymentMethod)
	api.POST("/payment-methods/:id/toggle", s.TogglePaymentMethod)

	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomer)
	api.PATCH("/customers/:id", s.UpdateCustomer)

	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoice)
	api.PATCH("/invoices/:id/status", s.UpdateInvoiceStatus)

	sessions := api.Group("/checkout/sessions")
	sessions.POST("", s.StartCheckoutSession)
	sessions.GET("/:sessionId", s.GetCheckoutSession)
	sessions.DELETE("/:sessionId", s.ClearCheckoutSession)
	sessions.POST("/:sessionId/items", s.AddCheckoutItem)
	sessions.PATCH("/:sessionId/items/:lineId", s.SetCheckoutItemQuantity)
	sessions.POST("/:sessionId/items/:lineId/increment", s.IncrementCheckoutItem)
	sessions.POST("/:sessionId/items/:lineId/decrement", s.DecrementCheckoutItem)
	sessions.DELETE("/:sessionId/items/:lineId", s.RemoveCheckoutItem)
	sessions.PATCH("/:sessionId/header", s.UpdateCheckoutHeader)
	sessions.POST("/:sessionId/payment-method", s.SelectCheckoutPaymentMethod)
	sessions.POST("/:sessionId/reference", s.SetCheckoutReference)
	sessions.POST("/:sessionId/commit", s.CommitCheckout)
}
