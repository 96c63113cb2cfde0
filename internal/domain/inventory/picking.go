package inventory

import (
	"context"
	"time"
)

// PickingState is the remote stock picking state.
type PickingState string

const (
	PickingStateDraft     PickingState = "draft"
	PickingStateWaiting   PickingState = "waiting"
	PickingStateConfirmed PickingState = "confirmed"
	PickingStateAssigned  PickingState = "assigned"
	PickingStateDone      PickingState = "done"
	PickingStateCancel    PickingState = "cancel"
)

// IsFinal reports done and cancel. Final pickings are never validated again.
func (s PickingState) IsFinal() bool {
	return s == PickingStateDone || s == PickingStateCancel
}

// IsPending reports the states in which goods are still expected to ship.
func (s PickingState) IsPending() bool {
	switch s {
	case PickingStateWaiting, PickingStateConfirmed, PickingStateAssigned:
		return true
	}
	return false
}

// Picking is a delivery transfer attached to a sales order.
type Picking struct {
	ID            int64        `json:"picking_id"`
	Name          string       `json:"name"`
	State         PickingState `json:"state"`
	ScheduledDate *time.Time   `json:"scheduled_date,omitempty"`
	DoneDate      *time.Time   `json:"date_done,omitempty"`
}

// States returns the state of each picking in order.
func States(pickings []Picking) []PickingState {
	states := make([]PickingState, len(pickings))
	for i, p := range pickings {
		states[i] = p.State
	}
	return states
}

// PickingRepository reads and validates remote pickings.
type PickingRepository interface {
	FindByIDs(ctx context.Context, ids []int64) ([]Picking, error)
	Validate(ctx context.Context, id int64) error
}
