package i18n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// normalizeSpaces maps the narrow and regular no-break spaces CLDR uses as
// French group separators to a plain space.
func normalizeSpaces(s string) string {
	return strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
		ok   bool
	}{
		{"fr", French, true},
		{"FR", French, true},
		{"fr-FR", French, true},
		{"fr_CA", French, true},
		{"en", English, true},
		{"en-US", English, true},
		{"de", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrDefault(t *testing.T) {
	assert.Equal(t, English, ParseOrDefault("en"))
	assert.Equal(t, French, ParseOrDefault("es"))
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, English, Negotiate("en-US,en;q=0.9"))
	assert.Equal(t, French, Negotiate("fr-FR,fr;q=0.9,en;q=0.8"))
	assert.Equal(t, English, Negotiate("de-DE,en;q=0.5"))
	assert.Equal(t, French, Negotiate(""))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1 950", normalizeSpaces(FormatAmount(French, 1950)))
	assert.Equal(t, "12 500", normalizeSpaces(FormatAmount(French, 12500)))
	assert.Equal(t, "1,950", FormatAmount(English, 1950))
	assert.Equal(t, "300", FormatAmount(English, 300))
	assert.Equal(t, "0", FormatAmount(French, 0))
}

func TestFormatAmount_FrenchGroupingSeparator(t *testing.T) {
	// CLDR data in x/text groups French digits with a no-break space.
	assert.Equal(t, "1\u00a0950", FormatAmount(French, 1950))
	assert.Equal(t, "1\u00a0250\u00a0000", FormatAmount(French, 1250000))
}

func TestT(t *testing.T) {
	assert.Equal(t, "Nom et email requis", T(French, KeyContactNameEmail))
	assert.Equal(t, "Name and email are required", T(English, KeyContactNameEmail))
	assert.Equal(t, "Nom et email requis", T(Locale("xx"), KeyContactNameEmail))
	assert.Equal(t, "missing.key", T(English, "missing.key"))
}

func TestEveryKeyTranslated(t *testing.T) {
	for key := range messages[French] {
		_, ok := messages[English][key]
		assert.True(t, ok, "english translation missing for %s", key)
	}
	for key := range messages[English] {
		_, ok := messages[French][key]
		assert.True(t, ok, "french translation missing for %s", key)
	}
}
