package partner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/erp/odoo-facade/internal/domain/partner"
	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/erp/odoo-facade/internal/infrastructure/logger"
)

// CustomerService handles customer lookups and contact updates
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

// ListBusinessCustomers returns company customers in remote order
func (s *CustomerService) ListBusinessCustomers(ctx context.Context) ([]partner.CustomerSummary, error) {
	return s.customerRepo.FindBusinessCustomers(ctx)
}

// GetCustomer retrieves one customer
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*partner.Customer, error) {
	if id <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "customer id must be positive")
	}
	return s.customerRepo.FindByID(ctx, id)
}

// UpdateByName updates the contact fields of the first customer whose name
// matches exactly. Only the fields present in update are written; an empty
// update writes nothing.
func (s *CustomerService) UpdateByName(ctx context.Context, name string, update partner.ContactUpdate) (*partner.ContactUpdateResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "customer name is required")
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	ids, err := s.customerRepo.FindIDsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("customer %q not found", name))
	}
	customerID := ids[0]

	fields := update.Fields()
	result := &partner.ContactUpdateResult{
		CustomerID:    customerID,
		FieldsChanged: fields,
	}
	if update.IsEmpty() {
		return result, nil
	}

	if err := s.customerRepo.UpdateContact(ctx, customerID, fields); err != nil {
		return nil, err
	}
	result.Updated = true

	logger.L(ctx).Info("Customer contact updated",
		zap.Int64("customer_id", customerID),
		zap.Int("fields", len(fields)),
	)
	return result, nil
}
