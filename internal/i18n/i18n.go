// Package i18n provides the static translation tables and locale helpers
// shared by the quote engine and the contact relay.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is a supported user-facing language.
type Locale string

const (
	French  Locale = "fr"
	English Locale = "en"
)

// Default is the locale used when nothing else can be determined.
const Default = French

var supportedTags = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(supportedTags)

// Supported returns the supported locales in preference order.
func Supported() []Locale {
	return []Locale{French, English}
}

// Parse converts a locale string such as "fr", "en-US" or "FR_fr" into a
// supported Locale. The second return value is false when the language is
// not supported.
func Parse(s string) (Locale, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case "fr":
		return French, true
	case "en":
		return English, true
	default:
		return "", false
	}
}

// ParseOrDefault behaves like Parse but returns Default for unsupported input.
func ParseOrDefault(s string) Locale {
	if l, ok := Parse(s); ok {
		return l
	}
	return Default
}

// Negotiate picks the best supported locale for an Accept-Language header.
func Negotiate(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Supported()[idx]
}

// Tag returns the BCP 47 tag for the locale.
func (l Locale) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.French
}

// FormatAmount formats a whole amount with the locale's digit grouping,
// e.g. "12 500" in French (U+00A0 separator) and "12,500" in English.
func FormatAmount(l Locale, amount int64) string {
	return message.NewPrinter(l.Tag()).Sprintf("%d", amount)
}
