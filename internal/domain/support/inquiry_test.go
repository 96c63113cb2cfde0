package support

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestInquiry_Body(t *testing.T) {
	tests := []struct {
		name    string
		inquiry Inquiry
		want    string
	}{
		{
			name:    "plain fields",
			inquiry: Inquiry{Name: "Ann", Email: "ann@example.com", IssueType: "billing", Message: "Hi"},
			want:    `['Ann', 'ann@example.com', 'billing', 'Hi']`,
		},
		{
			name:    "apostrophe switches to double quotes",
			inquiry: Inquiry{Name: "Ann O'Neil", Email: "a@b.c", IssueType: "x", Message: "It's broken"},
			want:    `["Ann O'Neil", 'a@b.c', 'x', "It's broken"]`,
		},
		{
			name:    "both quote kinds escape the single quote",
			inquiry: Inquiry{Name: "a", Email: "a@b.c", IssueType: "x", Message: `say "it's" now`},
			want:    `['a', 'a@b.c', 'x', 'say "it\'s" now']`,
		},
		{
			name:    "control characters and backslash",
			inquiry: Inquiry{Name: "a", Email: "a@b.c", IssueType: "x", Message: "line1\nline2\ttab\\end\x01"},
			want:    `['a', 'a@b.c', 'x', 'line1\nline2\ttab\\end\x01']`,
		},
		{
			name:    "printable unicode is kept",
			inquiry: Inquiry{Name: "Zoë", Email: "z@b.c", IssueType: "x", Message: "ça va"},
			want:    `['Zoë', 'z@b.c', 'x', 'ça va']`,
		},
		{
			name:    "non printable unicode is escaped",
			inquiry: Inquiry{Name: "a", Email: "a@b.c", IssueType: "x", Message: "a\u200bb\u00a0c"},
			want:    `['a', 'a@b.c', 'x', 'a\u200bb\xa0c']`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inquiry.Body())
		})
	}
}

func TestInquiry_Validate(t *testing.T) {
	valid := Inquiry{
		Name:      gofakeit.Name(),
		Email:     gofakeit.Email(),
		IssueType: "delivery",
		Message:   gofakeit.Phrase(),
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.Message = "  "
	assert.ErrorIs(t, missing.Validate(), shared.ErrInvalidInput)

	badEmail := valid
	badEmail.Email = "nope"
	assert.ErrorIs(t, badEmail.Validate(), shared.ErrInvalidInput)
}
