package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderState_Classification(t *testing.T) {
	assert.True(t, OrderStateDraft.IsQuotation())
	assert.True(t, OrderStateSent.IsQuotation())
	assert.False(t, OrderStateSale.IsQuotation())

	assert.True(t, OrderStateSale.IsConfirmed())
	assert.True(t, OrderStateDone.IsConfirmed())
	assert.False(t, OrderStateCancel.IsConfirmed())

	assert.False(t, OrderState("bogus").IsValid())
}

func TestOrderState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to OrderState
		want     bool
	}{
		{OrderStateDraft, OrderStateSent, true},
		{OrderStateDraft, OrderStateSale, true},
		{OrderStateSent, OrderStateSale, true},
		{OrderStateSale, OrderStateDone, true},
		{OrderStateDraft, OrderStateCancel, true},
		{OrderStateSale, OrderStateCancel, true},
		{OrderStateSale, OrderStateDraft, false},
		{OrderStateSent, OrderStateDraft, false},
		{OrderStateSale, OrderStateSale, false},
		{OrderStateDone, OrderStateCancel, false},
		{OrderStateCancel, OrderStateDraft, false},
		{OrderStateDraft, OrderState("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, []string{"draft", "sent"}, StateStrings(QuotationStates))
	assert.Equal(t, []string{"sale", "done"}, StateStrings(FulfilmentStates))
}
