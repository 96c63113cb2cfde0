package support

import "github.com/erp/odoo-facade/internal/domain/support"

// SubmitInquiryRequest represents a customer service contact form
type SubmitInquiryRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	Email     string `json:"email" binding:"required,email"`
	IssueType string `json:"issue_type" binding:"required,max=100"`
	Message   string `json:"message" binding:"required,max=5000"`
}

// ToInquiry converts the request to a domain inquiry
func (r SubmitInquiryRequest) ToInquiry() support.Inquiry {
	return support.Inquiry{
		Name:      r.Name,
		Email:     r.Email,
		IssueType: r.IssueType,
		Message:   r.Message,
	}
}
