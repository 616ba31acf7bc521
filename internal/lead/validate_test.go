package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MissingName(t *testing.T) {
	s := Submission{Name: "", Email: "a@b.com"}
	errs := Validate(&s)

	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestValidate_BadEmail(t *testing.T) {
	s := Submission{Name: "A", Email: "not-an-email"}
	errs := Validate(&s)

	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
}

func TestValidate_EmailVariants(t *testing.T) {
	valid := []string{"a@b.com", "first.last@example.co.uk", "x+tag@y.io"}
	invalid := []string{"", "a@b", "a b@c.com", "@b.com", "a@", "a@@b.com"}

	for _, email := range valid {
		s := Submission{Name: "A", Email: email}
		assert.Empty(t, Validate(&s), "expected %q to validate", email)
	}
	for _, email := range invalid {
		s := Submission{Name: "A", Email: email}
		assert.NotEmpty(t, Validate(&s), "expected %q to fail", email)
	}
}

func TestValidate_CollectsMultipleErrors(t *testing.T) {
	s := Submission{}
	errs := Validate(&s)

	require.Len(t, errs, 2)
	assert.Contains(t, errs.Error(), "name")
	assert.Contains(t, errs.Error(), "email")
}

func TestValidate_SanitizesOptionalFields(t *testing.T) {
	s := Submission{
		Name:     "  Jordan <script>alert(1)</script> Lee  ",
		Email:    "jordan@example.com",
		Business: "Acme <b>Sports</b>\x00\x07",
		City:     "Spring\tfield",
	}
	errs := Validate(&s)

	require.Empty(t, errs)
	assert.Equal(t, "Jordan  Lee", s.Name)
	assert.Equal(t, "Acme Sports", s.Business)
	assert.Equal(t, "Spring\tfield", s.City)
}

func TestValidate_TruncatesLongFields(t *testing.T) {
	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'x'
	}
	s := Submission{Name: string(long), Email: "a@b.com"}
	require.Empty(t, Validate(&s))
	assert.Len(t, s.Name, maxFieldLen)
}

func TestIsBot(t *testing.T) {
	assert.False(t, Submission{Website: ""}.IsBot())
	assert.False(t, Submission{Website: "   "}.IsBot())
	assert.True(t, Submission{Website: "spam"}.IsBot())
}
