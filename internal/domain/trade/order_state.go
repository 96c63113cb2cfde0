package trade

// OrderState is the remote sales order state.
type OrderState string

const (
	OrderStateDraft  OrderState = "draft"
	OrderStateSent   OrderState = "sent"
	OrderStateSale   OrderState = "sale"
	OrderStateDone   OrderState = "done"
	OrderStateCancel OrderState = "cancel"
)

// QuotationStates are the states in which an order is still a quotation.
var QuotationStates = []OrderState{OrderStateDraft, OrderStateSent}

// FulfilmentStates are the confirmed states that carry deliveries.
var FulfilmentStates = []OrderState{OrderStateSale, OrderStateDone}

// IsValid checks if the state is a known OrderState
func (s OrderState) IsValid() bool {
	switch s {
	case OrderStateDraft, OrderStateSent, OrderStateSale, OrderStateDone, OrderStateCancel:
		return true
	}
	return false
}

func (s OrderState) String() string {
	return string(s)
}

// IsQuotation reports draft and sent.
func (s OrderState) IsQuotation() bool {
	return s == OrderStateDraft || s == OrderStateSent
}

// IsConfirmed reports sale and done.
func (s OrderState) IsConfirmed() bool {
	return s == OrderStateSale || s == OrderStateDone
}

// IsTerminal reports done and cancel.
func (s OrderState) IsTerminal() bool {
	return s == OrderStateDone || s == OrderStateCancel
}

// CanTransitionTo checks if the state can move to target. States only move
// forward along draft, sent, sale, done; cancel is reachable from any
// non-terminal state.
func (s OrderState) CanTransitionTo(target OrderState) bool {
	if s.IsTerminal() || !target.IsValid() {
		return false
	}
	if target == OrderStateCancel {
		return true
	}
	return s.rank() < target.rank()
}

func (s OrderState) rank() int {
	switch s {
	case OrderStateDraft:
		return 0
	case OrderStateSent:
		return 1
	case OrderStateSale:
		return 2
	case OrderStateDone:
		return 3
	}
	return -1
}

// StateStrings converts states to their remote string values.
func StateStrings(states []OrderState) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}
