package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string   `json:"name" validate:"notblank,max=120"`
	Email   string   `json:"email" validate:"required,email"`
	Locale  string   `json:"locale" validate:"omitempty,oneof=fr en"`
	Options []string `json:"options" validate:"max=2,unique"`
}

func TestValidate_Success(t *testing.T) {
	err := Validate(contactForm{Name: "Alice", Email: "alice@example.com", Locale: "en"})
	assert.NoError(t, err)
}

func TestValidate_FieldNamesUseJSONTags(t *testing.T) {
	err := Validate(contactForm{Name: "  ", Email: "not-an-email"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
}

func TestValidate_OneOfAndSlices(t *testing.T) {
	err := Validate(contactForm{
		Name:    "Alice",
		Email:   "a@b.co",
		Locale:  "de",
		Options: []string{"seo", "seo", "cms"},
	})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "must be one of: fr en", fields["locale"])
	assert.Equal(t, "must contain at most 2 items", fields["options"])
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(contactForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'name' is required")
}

func TestEmailShape(t *testing.T) {
	tests := map[string]bool{
		"a@b.co":            true,
		"first.last@x.y.fr": true,
		"no-at-sign.com":    false,
		"a@nodot":           false,
		"a b@c.de":          false,
		"@c.de":             false,
		"":                  false,
	}
	for in, want := range tests {
		assert.Equal(t, want, EmailShape(in), in)
	}
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Bob","email":"bob@site.io"}`))
		var dst contactForm
		require.NoError(t, DecodeAndValidate(r, &dst))
		assert.Equal(t, "Bob", dst.Name)
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var dst contactForm
		err := DecodeAndValidate(r, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode request body")
	})

	t.Run("too large", func(t *testing.T) {
		body := `{"name":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var dst contactForm
		err := DecodeAndValidate(r, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds")
	})

	t.Run("invalid fields", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Bob","email":"nope"}`))
		var dst contactForm
		var valErr *ValidationError
		require.ErrorAs(t, DecodeAndValidate(r, &dst), &valErr)
	})
}
