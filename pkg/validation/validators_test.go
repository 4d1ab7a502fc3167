package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileForm struct {
	FirstName string   `validate:"required,valid_name,no_emoji"`
	Phone     string   `validate:"omitempty,valid_phone"`
	Headline  string   `validate:"omitempty,max=10"`
	Skills    []string `validate:"omitempty,dive,min=2"`
	Role      string   `validate:"omitempty,oneof=talent recruiter org_admin"`
}

func TestCustomTags(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(profileForm{FirstName: "Ana-Maria O'Neil", Phone: "+351912345678"}))
	assert.Error(t, v.Struct(profileForm{FirstName: "<script>"}))
	assert.Error(t, v.Struct(profileForm{FirstName: "Ana 🚀"}))
	assert.Error(t, v.Struct(profileForm{FirstName: "Ana", Phone: "12-34"}))
}

func TestFormatValidationErrors(t *testing.T) {
	v := New()

	err := v.Struct(profileForm{
		Phone:    "abc",
		Headline: "far too long headline",
		Skills:   []string{"go", "x"},
		Role:     "admin",
	})
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	assert.Contains(t, msgs, "First name: is required")
	assert.Contains(t, msgs, "Phone number: invalid phone number (7-15 digits, optional +)")
	assert.Contains(t, msgs, "Headline: must be at most 10 characters")
	assert.Contains(t, msgs, "Skills: must be at least 2 characters")
	assert.Contains(t, msgs, "Role: must be one of: talent, recruiter, org_admin")
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	assert.Equal(t, []string{"boom"}, FormatValidationErrors(errors.New("boom")))
}

func TestFormatCamelCase(t *testing.T) {
	assert.Equal(t, "Unknown Field", getFieldLabel("UnknownField"))
}
