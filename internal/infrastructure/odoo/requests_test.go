package odoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/odoo-facade/internal/domain/shared"
)

func TestDomain_Validate(t *testing.T) {
	tests := []struct {
		name    string
		domain  Domain
		wantErr bool
	}{
		{"empty", Domain{}, false},
		{"equality", Domain{Where("partner_id", OpEqual, int64(7))}, false},
		{"in list", Domain{Where("state", OpIn, []string{"draft", "sent"})}, false},
		{"dotted field", Domain{Where("partner_id.country_id", OpEqual, int64(1))}, false},
		{"unknown operator", Domain{Where("name", Operator("~"), "x")}, true},
		{"in without list", Domain{Where("state", OpIn, "draft")}, true},
		{"nil value", Domain{Where("email", OpEqual, nil)}, true},
		{"injected field", Domain{Where("name'); drop", OpEqual, "x")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.domain.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSearchReadRequest_Build(t *testing.T) {
	call, err := SearchReadRequest{
		Model: "sale.order",
		Domain: Domain{
			Where("partner_id", OpEqual, int64(7)),
			Where("state", OpIn, []string{"draft", "sent"}),
		},
		Fields: []string{"id", "name"},
		Limit:  10,
		Order:  "id desc",
	}.Build()
	require.NoError(t, err)

	assert.Equal(t, "sale.order", call.Model)
	assert.Equal(t, "search_read", call.Method)
	assert.Equal(t, []any{[]any{
		[]any{"partner_id", "=", int64(7)},
		[]any{"state", "in", []string{"draft", "sent"}},
	}}, call.Args)
	assert.Equal(t, map[string]any{"fields": []string{"id", "name"}, "limit": 10, "order": "id desc"}, call.Kwargs)
}

func TestReadRequest_Build(t *testing.T) {
	call, err := ReadRequest{Model: "res.partner", IDs: []int64{3}, Fields: []string{"name"}}.Build()
	require.NoError(t, err)
	assert.Equal(t, []any{[]int64{3}}, call.Args)
	assert.Equal(t, map[string]any{"fields": []string{"name"}}, call.Kwargs)

	_, err = ReadRequest{Model: "res.partner"}.Build()
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = ReadRequest{Model: "res.partner", IDs: []int64{0}}.Build()
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCreateRequest_Build(t *testing.T) {
	call, err := CreateRequest{
		Model:   "account.payment.register",
		Values:  map[string]any{"amount": 10.5},
		Context: map[string]any{"active_id": int64(4)},
	}.Build()
	require.NoError(t, err)
	assert.Equal(t, "create", call.Method)
	assert.Equal(t, []any{map[string]any{"amount": 10.5}}, call.Args)
	assert.Equal(t, map[string]any{"context": map[string]any{"active_id": int64(4)}}, call.Kwargs)

	_, err = CreateRequest{Model: "sale.order"}.Build()
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = CreateRequest{Model: "sale.order", Values: map[string]any{"note": nil}}.Build()
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestWriteRequest_Build(t *testing.T) {
	call, err := WriteRequest{Model: "res.partner", IDs: []int64{5}, Values: map[string]any{"email": "a@b.c"}}.Build()
	require.NoError(t, err)
	assert.Equal(t, "write", call.Method)
	assert.Equal(t, []any{[]int64{5}, map[string]any{"email": "a@b.c"}}, call.Args)

	_, err = WriteRequest{Model: "res.partner", IDs: []int64{5}}.Build()
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestActionRequest_Build(t *testing.T) {
	call, err := ActionRequest{Model: "stock.picking", Method: "button_validate", IDs: []int64{9}}.Build()
	require.NoError(t, err)
	assert.Equal(t, []any{[]int64{9}}, call.Args)
	assert.NotNil(t, call.Kwargs)

	_, err = ActionRequest{Model: "stock.picking", Method: "_action_done", IDs: []int64{9}}.Build()
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = ActionRequest{Model: "Stock Picking", Method: "button_validate", IDs: []int64{9}}.Build()
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCall_Validate(t *testing.T) {
	assert.NoError(t, Call{Model: "sale.order", Method: "action_confirm", Args: []any{}}.Validate())
	assert.Error(t, Call{Model: "sale.order", Method: "action_confirm"}.Validate())
	assert.Error(t, Call{Model: "sale.order", Method: "x", Args: []any{}, Kwargs: map[string]any{"k": nil}}.Validate())
}
