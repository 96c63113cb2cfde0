// Package bootstrap wires the remote gateway, repositories and application
// services from configuration. Both the HTTP server and facadectl start here.
package bootstrap

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	catalogapp "github.com/erp/odoo-facade/internal/application/catalog"
	financeapp "github.com/erp/odoo-facade/internal/application/finance"
	partnerapp "github.com/erp/odoo-facade/internal/application/partner"
	supportapp "github.com/erp/odoo-facade/internal/application/support"
	tradeapp "github.com/erp/odoo-facade/internal/application/trade"
	"github.com/erp/odoo-facade/internal/infrastructure/config"
	"github.com/erp/odoo-facade/internal/infrastructure/odoo"
	"github.com/erp/odoo-facade/internal/infrastructure/pdf"
	"github.com/erp/odoo-facade/internal/infrastructure/telemetry"
)

// Services holds the application services of the facade
type Services struct {
	Sessions   *odoo.SessionManager
	Customers  *partnerapp.CustomerService
	Products   *catalogapp.ProductService
	Orders     *tradeapp.SalesOrderService
	Deliveries *tradeapp.DeliveryService
	Invoices   *financeapp.InvoiceService
	Payments   *financeapp.PaymentService
	Contact    *supportapp.ContactService
}

// NewServices builds the XML-RPC caller, session manager, gateway and every
// service on top of them. meter may be a no-op meter.
func NewServices(cfg *config.Config, meter metric.Meter, log *zap.Logger) (*Services, error) {
	client := cfg.Odoo.Client()

	caller, err := odoo.NewXMLRPCCaller(&client)
	if err != nil {
		return nil, fmt.Errorf("odoo client: %w", err)
	}

	remoteMetrics, err := telemetry.NewRemoteCallMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("remote call metrics: %w", err)
	}
	lifecycle, err := telemetry.NewLifecycleMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("lifecycle metrics: %w", err)
	}

	sessions := odoo.NewSessionManager(caller, &client, remoteMetrics)
	gw := odoo.NewGateway(caller, sessions, &client, remoteMetrics)

	orderRepo := odoo.NewSalesOrderRepository(gw)
	productRepo := odoo.NewProductRepository(gw)

	orders := tradeapp.NewSalesOrderService(orderRepo, productRepo)
	orders.SetLifecycleMetrics(lifecycle)

	deliveries := tradeapp.NewDeliveryService(orderRepo, odoo.NewPickingRepository(gw))
	deliveries.SetLifecycleMetrics(lifecycle)

	invoices := financeapp.NewInvoiceService(odoo.NewInvoiceRepository(gw), &client)
	invoices.SetRenderer(pdf.NewInvoiceRenderer(cfg.Odoo.CompanyName))

	payments := financeapp.NewPaymentService(odoo.NewPaymentRepository(gw), cfg.Odoo.PaymentJournalID)
	payments.SetLifecycleMetrics(lifecycle)
	if cfg.Odoo.PaymentJournalID <= 0 {
		log.Warn("Payment journal not configured; payment registration is disabled")
	}

	log.Info("ERP gateway ready",
		zap.String("url", client.URL),
		zap.String("database", client.Database),
		zap.Duration("timeout", client.Timeout()),
	)

	return &Services{
		Sessions:   sessions,
		Customers:  partnerapp.NewCustomerService(odoo.NewPartnerRepository(gw)),
		Products:   catalogapp.NewProductService(productRepo),
		Orders:     orders,
		Deliveries: deliveries,
		Invoices:   invoices,
		Payments:   payments,
		Contact:    supportapp.NewContactService(odoo.NewChannelRepository(gw)),
	}, nil
}
