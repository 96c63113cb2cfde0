package partner

import (
	"github.com/erp/odoo-facade/internal/domain/partner"
)

// UpdateContactRequest represents a request to update a customer's contact
// details. Omitted fields are left untouched.
type UpdateContactRequest struct {
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Mobile  *string `json:"mobile" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email,max=200"`
	Website *string `json:"website" binding:"omitempty,max=200"`
}

// ToContactUpdate converts the request into the domain update.
func (r UpdateContactRequest) ToContactUpdate() partner.ContactUpdate {
	return partner.ContactUpdate{
		Phone:   r.Phone,
		Mobile:  r.Mobile,
		Email:   r.Email,
		Website: r.Website,
	}
}
