package odoo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/odoo-facade/internal/domain/shared"
)

// Remote datetime and date formats. Datetimes are UTC.
const (
	datetimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// Record is one decoded remote record. Empty fields arrive as false.
type Record map[string]any

// asRecords decodes a search_read or read reply.
func asRecords(reply any) ([]Record, error) {
	items, ok := reply.([]any)
	if !ok {
		if reply == nil || reply == false {
			return nil, nil
		}
		return nil, fmt.Errorf("odoo: expected a record list, got %T", reply)
	}
	records := make([]Record, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("odoo: expected a record, got %T", item)
		}
		records = append(records, Record(m))
	}
	return records, nil
}

// asIDs decodes a search reply or a list of ids.
func asIDs(reply any) ([]int64, error) {
	if reply == nil || reply == false {
		return nil, nil
	}
	items, ok := reply.([]any)
	if !ok {
		return nil, fmt.Errorf("odoo: expected an id list, got %T", reply)
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, ok := asInt64(item)
		if !ok {
			return nil, fmt.Errorf("odoo: expected an id, got %T", item)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// asID decodes the reply of create.
func asID(reply any) (int64, error) {
	id, ok := asInt64(reply)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("odoo: expected a record id, got %v", reply)
	}
	return id, nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case bool:
		return 0, !n
	}
	return 0, false
}

// Int returns an integer field, or 0.
func (r Record) Int(field string) int64 {
	n, _ := asInt64(r[field])
	return n
}

// String returns a text field; false becomes "".
func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Decimal returns a numeric field, or zero.
func (r Record) Decimal(field string) decimal.Decimal {
	switch v := r[field].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case string:
		d, err := decimal.NewFromString(v)
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}

// Time returns a datetime or date field in UTC, or nil.
func (r Record) Time(field string) *time.Time {
	switch v := r[field].(type) {
	case time.Time:
		t := v.UTC()
		return &t
	case string:
		for _, layout := range []string{datetimeLayout, dateLayout} {
			if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
				return &t
			}
		}
	}
	return nil
}

// Many2one returns a [id, label] field as a reference, or nil when unset.
func (r Record) Many2one(field string) *shared.Reference {
	pair, ok := r[field].([]any)
	if !ok || len(pair) == 0 {
		return nil
	}
	id, ok := asInt64(pair[0])
	if !ok || id == 0 {
		return nil
	}
	ref := &shared.Reference{ID: id}
	if len(pair) > 1 {
		ref.Name, _ = pair[1].(string)
	}
	return ref
}

// Many2oneID flattens a [id, label] field to its id, or 0 when unset.
func (r Record) Many2oneID(field string) int64 {
	if ref := r.Many2one(field); ref != nil {
		return ref.ID
	}
	return 0
}

// IDs returns a one2many or many2many field.
func (r Record) IDs(field string) []int64 {
	ids, err := asIDs(r[field])
	if err != nil {
		return nil
	}
	return ids
}
