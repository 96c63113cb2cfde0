package odoo

import (
	"fmt"
	"regexp"

	"github.com/erp/odoo-facade/internal/domain/shared"
)

// Operator is a domain filter operator understood by the remote ORM.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpEqualOrUnset Operator = "=?"
	OpLike         Operator = "like"
	OpNotLike      Operator = "not like"
	OpILike        Operator = "ilike"
	OpNotILike     Operator = "not ilike"
	OpEqualLike    Operator = "=like"
	OpEqualILike   Operator = "=ilike"
	OpIn           Operator = "in"
	OpNotIn        Operator = "not in"
	OpChildOf      Operator = "child_of"
	OpParentOf     Operator = "parent_of"
)

func (o Operator) IsValid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual, OpEqualOrUnset,
		OpLike, OpNotLike, OpILike, OpNotILike, OpEqualLike, OpEqualILike,
		OpIn, OpNotIn, OpChildOf, OpParentOf:
		return true
	}
	return false
}

var (
	modelPattern  = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z0-9_]+)*$`)
	methodPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	fieldPattern  = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)*$`)
)

// Condition is one (field, operator, value) term of a domain filter.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// Where builds a Condition.
func Where(field string, op Operator, value any) Condition {
	return Condition{Field: field, Operator: op, Value: value}
}

// Domain is a conjunction of conditions.
type Domain []Condition

// Validate checks fields, operators and values. XML-RPC has no nil, so
// conditions on unset fields use false.
func (d Domain) Validate() error {
	for _, c := range d {
		if !fieldPattern.MatchString(c.Field) {
			return invalidCall("invalid domain field %q", c.Field)
		}
		if !c.Operator.IsValid() {
			return invalidCall("unsupported domain operator %q", c.Operator)
		}
		if c.Value == nil {
			return invalidCall("nil value for domain field %q", c.Field)
		}
		if (c.Operator == OpIn || c.Operator == OpNotIn) && !isList(c.Value) {
			return invalidCall("operator %q on %q needs a list value", c.Operator, c.Field)
		}
	}
	return nil
}

func (d Domain) encode() []any {
	terms := make([]any, len(d))
	for i, c := range d {
		terms[i] = []any{c.Field, string(c.Operator), c.Value}
	}
	return terms
}

func isList(v any) bool {
	switch v.(type) {
	case []any, []string, []int64, []int:
		return true
	}
	return false
}

// Call is a validated execute_kw invocation.
type Call struct {
	Model  string
	Method string
	Args   []any
	Kwargs map[string]any
}

// Validate checks the call before it is sent.
func (c Call) Validate() error {
	if !modelPattern.MatchString(c.Model) {
		return invalidCall("invalid model name %q", c.Model)
	}
	if !methodPattern.MatchString(c.Method) {
		return invalidCall("invalid or private method name %q", c.Method)
	}
	if c.Args == nil {
		return invalidCall("%s.%s: args must not be nil", c.Model, c.Method)
	}
	for k, v := range c.Kwargs {
		if v == nil {
			return invalidCall("%s.%s: nil value for keyword %q", c.Model, c.Method, k)
		}
	}
	return nil
}

// Request is a typed remote request that validates itself into a Call.
type Request interface {
	Build() (Call, error)
}

// SearchReadRequest is search_read(domain, fields=..., limit=..., order=...).
type SearchReadRequest struct {
	Model  string
	Domain Domain
	Fields []string
	Limit  int
	Order  string
}

func (r SearchReadRequest) Build() (Call, error) {
	if err := r.Domain.Validate(); err != nil {
		return Call{}, err
	}
	if err := validateFields(r.Fields); err != nil {
		return Call{}, err
	}
	if r.Limit < 0 {
		return Call{}, invalidCall("negative limit %d", r.Limit)
	}

	kwargs := map[string]any{"fields": r.Fields}
	if r.Limit > 0 {
		kwargs["limit"] = r.Limit
	}
	if r.Order != "" {
		kwargs["order"] = r.Order
	}
	return validated(Call{
		Model:  r.Model,
		Method: "search_read",
		Args:   []any{r.Domain.encode()},
		Kwargs: kwargs,
	})
}

// ReadRequest is read(ids, fields=...).
type ReadRequest struct {
	Model  string
	IDs    []int64
	Fields []string
}

func (r ReadRequest) Build() (Call, error) {
	if err := validateIDs(r.IDs); err != nil {
		return Call{}, err
	}
	if err := validateFields(r.Fields); err != nil {
		return Call{}, err
	}
	return validated(Call{
		Model:  r.Model,
		Method: "read",
		Args:   []any{r.IDs},
		Kwargs: map[string]any{"fields": r.Fields},
	})
}

// SearchRequest is search(domain, limit=...).
type SearchRequest struct {
	Model  string
	Domain Domain
	Limit  int
}

func (r SearchRequest) Build() (Call, error) {
	if err := r.Domain.Validate(); err != nil {
		return Call{}, err
	}
	kwargs := map[string]any{}
	if r.Limit > 0 {
		kwargs["limit"] = r.Limit
	}
	return validated(Call{
		Model:  r.Model,
		Method: "search",
		Args:   []any{r.Domain.encode()},
		Kwargs: kwargs,
	})
}

// CreateRequest is create(values) with an optional evaluation context.
type CreateRequest struct {
	Model   string
	Values  map[string]any
	Context map[string]any
}

func (r CreateRequest) Build() (Call, error) {
	if len(r.Values) == 0 {
		return Call{}, invalidCall("%s.create: no values", r.Model)
	}
	if err := validateValues(r.Values); err != nil {
		return Call{}, err
	}
	kwargs := map[string]any{}
	if len(r.Context) > 0 {
		kwargs["context"] = r.Context
	}
	return validated(Call{
		Model:  r.Model,
		Method: "create",
		Args:   []any{r.Values},
		Kwargs: kwargs,
	})
}

// WriteRequest is write(ids, values).
type WriteRequest struct {
	Model  string
	IDs    []int64
	Values map[string]any
}

func (r WriteRequest) Build() (Call, error) {
	if err := validateIDs(r.IDs); err != nil {
		return Call{}, err
	}
	if len(r.Values) == 0 {
		return Call{}, invalidCall("%s.write: no values", r.Model)
	}
	if err := validateValues(r.Values); err != nil {
		return Call{}, err
	}
	return validated(Call{
		Model:  r.Model,
		Method: "write",
		Args:   []any{r.IDs, r.Values},
		Kwargs: map[string]any{},
	})
}

// ActionRequest calls a public record method on ids, e.g. action_confirm.
type ActionRequest struct {
	Model  string
	Method string
	IDs    []int64
	Kwargs map[string]any
}

func (r ActionRequest) Build() (Call, error) {
	if err := validateIDs(r.IDs); err != nil {
		return Call{}, err
	}
	kwargs := r.Kwargs
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return validated(Call{
		Model:  r.Model,
		Method: r.Method,
		Args:   []any{r.IDs},
		Kwargs: kwargs,
	})
}

func validated(c Call) (Call, error) {
	if err := c.Validate(); err != nil {
		return Call{}, err
	}
	return c, nil
}

func validateIDs(ids []int64) error {
	if len(ids) == 0 {
		return invalidCall("at least one record id is required")
	}
	for _, id := range ids {
		if id <= 0 {
			return invalidCall("invalid record id %d", id)
		}
	}
	return nil
}

func validateFields(fields []string) error {
	for _, f := range fields {
		if !fieldPattern.MatchString(f) {
			return invalidCall("invalid field name %q", f)
		}
	}
	return nil
}

func validateValues(values map[string]any) error {
	for k, v := range values {
		if !fieldPattern.MatchString(k) {
			return invalidCall("invalid field name %q", k)
		}
		if v == nil {
			return invalidCall("nil value for field %q", k)
		}
	}
	return nil
}

func invalidCall(format string, args ...any) error {
	return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf(format, args...))
}
