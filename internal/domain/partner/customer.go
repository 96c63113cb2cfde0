package partner

import (
	"context"
	"net/mail"
	"strings"

	"github.com/erp/odoo-facade/internal/domain/shared"
)

// CustomerSummary is the list projection of a business customer.
type CustomerSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Customer is a read projection of a remote partner record.
type Customer struct {
	ID      int64             `json:"id"`
	Name    string            `json:"name"`
	Email   string            `json:"email,omitempty"`
	City    string            `json:"city,omitempty"`
	Country *shared.Reference `json:"country,omitempty"`
	Comment string            `json:"comment,omitempty"`
}

// ContactUpdate is a partial update of a customer's contact fields.
// Nil fields are left untouched.
type ContactUpdate struct {
	Phone   *string
	Mobile  *string
	Email   *string
	Website *string
}

// Fields returns the remote field names and values of the non-nil members.
func (u ContactUpdate) Fields() map[string]string {
	fields := make(map[string]string, 4)
	if u.Phone != nil {
		fields["phone"] = *u.Phone
	}
	if u.Mobile != nil {
		fields["mobile"] = *u.Mobile
	}
	if u.Email != nil {
		fields["email"] = *u.Email
	}
	if u.Website != nil {
		fields["website"] = *u.Website
	}
	return fields
}

// IsEmpty reports whether no field is set.
func (u ContactUpdate) IsEmpty() bool {
	return u.Phone == nil && u.Mobile == nil && u.Email == nil && u.Website == nil
}

// Validate checks the email format when an email is supplied.
// An empty email clears the field and is accepted.
func (u ContactUpdate) Validate() error {
	if u.Email != nil && strings.TrimSpace(*u.Email) != "" {
		if _, err := mail.ParseAddress(*u.Email); err != nil {
			return shared.NewDomainError(shared.CodeInvalidInput, "email is not a valid address")
		}
	}
	return nil
}

// ContactUpdateResult reports what a contact update changed.
type ContactUpdateResult struct {
	CustomerID    int64             `json:"customer_id,omitempty"`
	Updated       bool              `json:"updated"`
	FieldsChanged map[string]string `json:"fields_changed"`
}

// CustomerRepository reads and mutates remote partner records.
type CustomerRepository interface {
	FindBusinessCustomers(ctx context.Context) ([]CustomerSummary, error)
	FindByID(ctx context.Context, id int64) (*Customer, error)
	FindIDsByName(ctx context.Context, name string) ([]int64, error)
	UpdateContact(ctx context.Context, id int64, fields map[string]string) error
}
