package partner

import (
	"testing"

	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestContactUpdate_Fields(t *testing.T) {
	t.Run("only set fields are returned", func(t *testing.T) {
		u := ContactUpdate{Email: ptr("ann@example.com")}

		assert.Equal(t, map[string]string{"email": "ann@example.com"}, u.Fields())
		assert.False(t, u.IsEmpty())
	})

	t.Run("all fields", func(t *testing.T) {
		u := ContactUpdate{
			Phone:   ptr("+1 555 0100"),
			Mobile:  ptr("+1 555 0101"),
			Email:   ptr("ann@example.com"),
			Website: ptr("https://example.com"),
		}

		assert.Len(t, u.Fields(), 4)
	})

	t.Run("empty update", func(t *testing.T) {
		u := ContactUpdate{}

		assert.True(t, u.IsEmpty())
		assert.Empty(t, u.Fields())
	})
}

func TestContactUpdate_Validate(t *testing.T) {
	assert.NoError(t, ContactUpdate{}.Validate())
	assert.NoError(t, ContactUpdate{Email: ptr("")}.Validate())
	assert.NoError(t, ContactUpdate{Email: ptr("ann@example.com")}.Validate())

	err := ContactUpdate{Email: ptr("not-an-email")}.Validate()
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
