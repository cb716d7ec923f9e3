package domain

import (
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
)

// Preferences is the only state kept across visits: the interface language
// and whether sound effects are muted.
type Preferences struct {
	Locale i18n.Locale `json:"locale"`
	Muted  bool        `json:"muted"`
}

// DefaultPreferences returns the preferences of a first visit.
func DefaultPreferences(locale i18n.Locale) Preferences {
	return Preferences{Locale: locale}
}
