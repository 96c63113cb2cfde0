package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/odoo-facade/internal/infrastructure/logger"
	"github.com/erp/odoo-facade/internal/infrastructure/telemetry"
	"github.com/erp/odoo-facade/internal/interfaces/http/dto"
	"github.com/erp/odoo-facade/internal/interfaces/http/handler"
	"github.com/erp/odoo-facade/internal/interfaces/http/middleware"
)

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	System  *handler.SystemHandler
	Partner *handler.PartnerHandler
	Catalog *handler.CatalogHandler
	Trade   *handler.TradeHandler
	Finance *handler.FinanceHandler
	Support *handler.SupportHandler
}

// EngineConfig controls the middleware chain
type EngineConfig struct {
	Logger         *zap.Logger
	ServiceName    string
	TracingEnabled bool
	MeterProvider  *telemetry.MeterProvider
	CORS           middleware.CORSConfig
	Security       middleware.SecurityConfig
	MaxBodySize    int64
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter    *middleware.RateLimiter
	TrustedProxies []string

	// ProfilingEnabled attaches route labels to profiling samples.
	ProfilingEnabled bool
}

// NewEngine builds the gin engine with the full middleware chain and all
// routes mounted.
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	middleware.SetupValidator()

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.ServiceName,
			Enabled:     cfg.TracingEnabled,
		}),
		middleware.SpanAttributes(),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: cfg.MeterProvider,
			ServiceName:   cfg.ServiceName,
			Enabled:       cfg.MeterProvider != nil,
		}),
		middleware.ProfilingWithConfig(middleware.ProfilingConfig{
			Enabled:   cfg.ProfilingEnabled,
			SkipPaths: []string{"/health"},
		}),
		middleware.SecureWithConfig(cfg.Security),
		middleware.CORSWithConfig(cfg.CORS),
	)
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "route not found", middleware.GetRequestID(c)))
	})

	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, g := range domainGroups(h) {
		r.Register(g)
	}
	r.Setup()

	return engine, nil
}

func domainGroups(h Handlers) []*DomainGroup {
	system := NewDomainGroup("system", "/system").
		GET("/status", h.System.GetStatus).
		GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping)

	partner := NewDomainGroup("partner", "/partner").
		GET("/customers", h.Partner.ListCustomers).
		GET("/customers/:id", h.Partner.GetCustomer).
		POST("/customers/by-name/:name", h.Partner.UpdateContact)

	catalog := NewDomainGroup("catalog", "/catalog").
		GET("/products", h.Catalog.ListProducts)

	trade := NewDomainGroup("trade", "/trade").
		GET("/customers/:id/quotations", h.Trade.ListQuotations).
		GET("/customers/:id/sales-orders", h.Trade.ListSalesOrders).
		GET("/customers/:id/deliveries", h.Trade.ListDeliveries).
		POST("/quotations", h.Trade.CreateQuotation).
		POST("/sales-orders/confirm", h.Trade.ConfirmOrders).
		POST("/sales-orders/:id/cancel", h.Trade.CancelOrder).
		PUT("/sales-orders/:id/validate-delivery", h.Trade.ValidateDelivery)

	finance := NewDomainGroup("finance", "/finance").
		GET("/customers/:id/invoices", h.Finance.ListInvoices).
		GET("/invoices/:id", h.Finance.GetInvoice).
		GET("/invoices/:id/preview-url", h.Finance.GetPreviewURL).
		GET("/invoices/:id/pdf", h.Finance.DownloadPDF).
		POST("/invoices/:id/payments", h.Finance.RegisterPayment)

	support := NewDomainGroup("support", "/support").
		POST("/inquiries", h.Support.SubmitInquiry)

	return []*DomainGroup{system, partner, catalog, trade, finance, support}
}
