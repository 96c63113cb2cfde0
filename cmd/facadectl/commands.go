package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/urfave/cli/v2"

	tradeapp "github.com/erp/odoo-facade/internal/application/trade"
	"github.com/erp/odoo-facade/internal/domain/integration"
	"github.com/erp/odoo-facade/internal/domain/partner"
	"github.com/erp/odoo-facade/internal/domain/shared"
)

type customerLister interface {
	ListBusinessCustomers(ctx context.Context) ([]partner.CustomerSummary, error)
}

type deliveryService interface {
	GetCustomerDeliveries(ctx context.Context, customerID int64) (*tradeapp.CustomerDeliveries, error)
	ValidateDelivery(ctx context.Context, orderID int64) (*tradeapp.ValidateDeliveryResult, error)
}

type orderCanceller interface {
	CancelOrderWithNotification(ctx context.Context, orderID int64) (*tradeapp.CancelResult, error)
}

type backend struct {
	status     integration.StatusProvider
	customers  customerLister
	deliveries deliveryService
	orders     orderCanceller
}

type backendLoader func(ctx context.Context) (*backend, error)

type errorOutput struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

func newApp(load backendLoader, stdout, stderr io.Writer) *cli.App {
	var be *backend

	before := func(c *cli.Context) error {
		var err error
		be, err = load(c.Context)
		return err
	}

	orderFlag := &cli.Int64Flag{Name: "order", Usage: "sales order id", Required: true}

	return &cli.App{
		Name:      "facadectl",
		Usage:     "operate the ERP facade from the command line",
		Writer:    stdout,
		ErrWriter: stderr,
		// errors are rendered by run
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "probe the ERP server",
				Before: before,
				Action: func(c *cli.Context) error {
					return writeJSON(stdout, be.status.Status(c.Context))
				},
			},
			{
				Name:   "customers",
				Usage:  "list business customers",
				Before: before,
				Action: func(c *cli.Context) error {
					customers, err := be.customers.ListBusinessCustomers(c.Context)
					if err != nil {
						return err
					}
					if customers == nil {
						customers = []partner.CustomerSummary{}
					}
					return writeJSON(stdout, customers)
				},
			},
			{
				Name:   "deliveries",
				Usage:  "show the delivery status of a customer's orders",
				Before: before,
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "customer", Usage: "customer id", Required: true},
				},
				Action: func(c *cli.Context) error {
					result, err := be.deliveries.GetCustomerDeliveries(c.Context, c.Int64("customer"))
					if err != nil {
						return err
					}
					return writeJSON(stdout, result)
				},
			},
			{
				Name:   "validate-delivery",
				Usage:  "confirm an order if needed and validate its open pickings",
				Before: before,
				Flags:  []cli.Flag{orderFlag},
				Action: func(c *cli.Context) error {
					result, err := be.deliveries.ValidateDelivery(c.Context, c.Int64("order"))
					if err != nil {
						return err
					}
					return writeJSON(stdout, result)
				},
			},
			{
				Name:   "cancel-order",
				Usage:  "cancel an order and notify the customer",
				Before: before,
				Flags:  []cli.Flag{orderFlag},
				Action: func(c *cli.Context) error {
					result, err := be.orders.CancelOrderWithNotification(c.Context, c.Int64("order"))
					if err != nil {
						return err
					}
					return writeJSON(stdout, result)
				},
			},
		},
	}
}

// run executes args and returns the process exit code. Failures are written
// to stderr as a JSON error object.
func run(ctx context.Context, args []string, load backendLoader, stdout, stderr io.Writer) int {
	if err := newApp(load, stdout, stderr).RunContext(ctx, args); err != nil {
		_ = writeJSON(stderr, map[string]errorOutput{"error": toErrorOutput(err)})
		return 1
	}
	return 0
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toErrorOutput(err error) errorOutput {
	out := errorOutput{Code: "ERR_INTERNAL", Message: err.Error()}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		out.Code = domainErr.Code
	}
	var detailed shared.DetailedError
	if errors.As(err, &detailed) {
		out.Detail = detailed.ErrorDetail()
	}
	return out
}
