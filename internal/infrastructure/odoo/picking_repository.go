package odoo

import (
	"context"

	"github.com/erp/odoo-facade/internal/domain/inventory"
)

const modelPicking = "stock.picking"

// PickingRepository implements inventory.PickingRepository over stock.picking.
type PickingRepository struct {
	gw *Gateway
}

// NewPickingRepository creates a new PickingRepository
func NewPickingRepository(gw *Gateway) *PickingRepository {
	return &PickingRepository{gw: gw}
}

var _ inventory.PickingRepository = (*PickingRepository)(nil)

// FindByIDs reads pickings in the order the remote service returns them.
// No ids means no call.
func (r *PickingRepository) FindByIDs(ctx context.Context, ids []int64) ([]inventory.Picking, error) {
	if len(ids) == 0 {
		return []inventory.Picking{}, nil
	}
	reply, err := r.gw.Execute(ctx, ReadRequest{
		Model:  modelPicking,
		IDs:    ids,
		Fields: []string{"id", "name", "state", "scheduled_date", "date_done"},
	})
	if err != nil {
		return nil, err
	}
	records, err := asRecords(reply)
	if err != nil {
		return nil, err
	}

	pickings := make([]inventory.Picking, 0, len(records))
	for _, rec := range records {
		pickings = append(pickings, inventory.Picking{
			ID:            rec.Int("id"),
			Name:          rec.String("name"),
			State:         inventory.PickingState(rec.String("state")),
			ScheduledDate: rec.Time("scheduled_date"),
			DoneDate:      rec.Time("date_done"),
		})
	}
	return pickings, nil
}

// Validate presses the picking's validate button.
func (r *PickingRepository) Validate(ctx context.Context, id int64) error {
	_, err := r.gw.Execute(ctx, ActionRequest{
		Model:  modelPicking,
		Method: "button_validate",
		IDs:    []int64{id},
	})
	return err
}
