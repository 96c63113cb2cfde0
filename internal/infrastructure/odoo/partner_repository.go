package odoo

import (
	"context"
	"fmt"

	"github.com/erp/odoo-facade/internal/domain/partner"
	"github.com/erp/odoo-facade/internal/domain/shared"
)

const modelPartner = "res.partner"

// PartnerRepository implements partner.CustomerRepository over res.partner.
type PartnerRepository struct {
	gw *Gateway
}

// NewPartnerRepository creates a new PartnerRepository
func NewPartnerRepository(gw *Gateway) *PartnerRepository {
	return &PartnerRepository{gw: gw}
}

var _ partner.CustomerRepository = (*PartnerRepository)(nil)

func (r *PartnerRepository) FindBusinessCustomers(ctx context.Context) ([]partner.CustomerSummary, error) {
	reply, err := r.gw.Execute(ctx, SearchReadRequest{
		Model: modelPartner,
		Domain: Domain{
			Where("is_company", OpEqual, true),
			Where("customer_rank", OpGreaterEqual, 0),
		},
		Fields: []string{"name", "customer_rank"},
	})
	if err != nil {
		return nil, err
	}
	records, err := asRecords(reply)
	if err != nil {
		return nil, err
	}

	customers := make([]partner.CustomerSummary, 0, len(records))
	for _, rec := range records {
		customers = append(customers, partner.CustomerSummary{ID: rec.Int("id"), Name: rec.String("name")})
	}
	return customers, nil
}

func (r *PartnerRepository) FindByID(ctx context.Context, id int64) (*partner.Customer, error) {
	reply, err := r.gw.Execute(ctx, ReadRequest{
		Model:  modelPartner,
		IDs:    []int64{id},
		Fields: []string{"name", "email", "city", "country_id", "comment"},
	})
	if err != nil {
		return nil, err
	}
	records, err := asRecords(reply)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("customer %d not found", id))
	}

	rec := records[0]
	return &partner.Customer{
		ID:      id,
		Name:    rec.String("name"),
		Email:   rec.String("email"),
		City:    rec.String("city"),
		Country: rec.Many2one("country_id"),
		Comment: rec.String("comment"),
	}, nil
}

func (r *PartnerRepository) FindIDsByName(ctx context.Context, name string) ([]int64, error) {
	reply, err := r.gw.Execute(ctx, SearchRequest{
		Model:  modelPartner,
		Domain: Domain{Where("name", OpEqual, name)},
	})
	if err != nil {
		return nil, err
	}
	return asIDs(reply)
}

func (r *PartnerRepository) UpdateContact(ctx context.Context, id int64, fields map[string]string) error {
	values := make(map[string]any, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	_, err := r.gw.Execute(ctx, WriteRequest{
		Model:  modelPartner,
		IDs:    []int64{id},
		Values: values,
	})
	return err
}
