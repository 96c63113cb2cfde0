package support

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/erp/odoo-facade/internal/domain/shared"
)

// Channel names searched, in order, for a place to post inquiries.
var ChannelCandidates = []string{"General", "Support"}

// Inquiry is a customer-service contact request.
type Inquiry struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	IssueType string `json:"issue_type"`
	Message   string `json:"message"`
}

// Validate checks that every field is present and the email is well formed.
func (i Inquiry) Validate() error {
	fields := []struct{ name, value string }{
		{"name", i.Name},
		{"email", i.Email},
		{"issue_type", i.IssueType},
		{"message", i.Message},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return shared.NewDomainError(shared.CodeInvalidInput, f.name+" is required")
		}
	}
	if _, err := mail.ParseAddress(i.Email); err != nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "email is not a valid address")
	}
	return nil
}

// Body renders the inquiry as the message body posted to the channel: the
// four fields as a list of quoted string literals, e.g.
//
//	['Ann', 'ann@example.com', 'billing', "It's broken"]
//
// Quoting and escaping follow Python's repr.
func (i Inquiry) Body() string {
	parts := []string{i.Name, i.Email, i.IssueType, i.Message}
	quoted := make([]string, len(parts))
	for n, p := range parts {
		quoted[n] = quoteLiteral(p)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func quoteLiteral(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r == ' ' || unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}

// PostedInquiry is the result of a successful submission.
type PostedInquiry struct {
	Message    string  `json:"message"`
	ChannelID  int64   `json:"channel_id"`
	MessageID  int64   `json:"message_id,omitempty"`
	Body       string  `json:"body"`
	PostedData Inquiry `json:"posted_data"`
}

// ChannelRepository finds discussion channels and posts to them.
type ChannelRepository interface {
	// FindByName returns the ids of channels whose name contains name,
	// case-insensitively.
	FindByName(ctx context.Context, name string) ([]int64, error)
	// Post posts body as a comment authored by the session user and returns
	// the message id.
	Post(ctx context.Context, channelID int64, body string) (int64, error)
}
