package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/httputil"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/validator"
)

// PreferencesCookie is the name of the signed preferences cookie.
const PreferencesCookie = "prefs"

const preferencesMaxAge = 365 * 24 * time.Hour

// PreferencesStore reads and writes the signed preferences cookie.
type PreferencesStore struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewPreferencesStore signs cookies with hashKey and, when blockKey is set,
// encrypts them. secure restricts the cookie to HTTPS.
func NewPreferencesStore(hashKey, blockKey []byte, secure bool) *PreferencesStore {
	if len(blockKey) == 0 {
		blockKey = nil
	}
	codec := securecookie.New(hashKey, blockKey).
		MaxAge(int(preferencesMaxAge.Seconds())).
		SetSerializer(securecookie.JSONEncoder{})
	return &PreferencesStore{codec: codec, secure: secure}
}

// Read returns the stored preferences. Missing, tampered or expired cookies
// report false.
func (s *PreferencesStore) Read(r *http.Request) (domain.Preferences, bool) {
	c, err := r.Cookie(PreferencesCookie)
	if err != nil {
		return domain.Preferences{}, false
	}
	var prefs domain.Preferences
	if err := s.codec.Decode(PreferencesCookie, c.Value, &prefs); err != nil {
		return domain.Preferences{}, false
	}
	if _, ok := i18n.Parse(string(prefs.Locale)); !ok {
		prefs.Locale = ""
	}
	return prefs, true
}

// Write stores prefs in the cookie.
func (s *PreferencesStore) Write(w http.ResponseWriter, prefs domain.Preferences) error {
	value, err := s.codec.Encode(PreferencesCookie, prefs)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     PreferencesCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(preferencesMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// --- Locale resolution ---

type localeKey struct{}

// Locale resolves the request locale from ?locale=, then the preferences
// cookie, then Accept-Language, and stores it in the context.
func Locale(store *PreferencesStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := resolveLocale(r, store)
			w.Header().Set("Content-Language", string(l))
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), localeKey{}, l)))
		})
	}
}

func resolveLocale(r *http.Request, store *PreferencesStore) i18n.Locale {
	if l, ok := i18n.Parse(r.URL.Query().Get("locale")); ok {
		return l
	}
	if store != nil {
		if prefs, ok := store.Read(r); ok && prefs.Locale != "" {
			return prefs.Locale
		}
	}
	return i18n.Negotiate(r.Header.Get("Accept-Language"))
}

// LocaleFromContext returns the locale resolved by Locale, or the default.
func LocaleFromContext(ctx context.Context) i18n.Locale {
	if l, ok := ctx.Value(localeKey{}).(i18n.Locale); ok {
		return l
	}
	return i18n.Default
}

// --- Handlers ---

// PreferencesHandler serves the visitor's locale and mute preferences.
type PreferencesHandler struct {
	store  *PreferencesStore
	logger *slog.Logger
}

// NewPreferencesHandler creates a new preferences HTTP handler.
func NewPreferencesHandler(store *PreferencesStore, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{store: store, logger: logger}
}

// UpdatePreferencesRequest is the JSON request body for updating preferences.
// Omitted fields keep their current value.
type UpdatePreferencesRequest struct {
	Locale *string `json:"locale" validate:"omitempty,oneof=fr en"`
	Muted  *bool   `json:"muted"`
}

// GetPreferences handles GET /api/v1/preferences
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.current(r))
}

// UpdatePreferences handles PUT /api/v1/preferences
func (h *PreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req UpdatePreferencesRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	prefs := h.current(r)
	if req.Locale != nil {
		prefs.Locale = i18n.Locale(*req.Locale)
	}
	if req.Muted != nil {
		prefs.Muted = *req.Muted
	}

	if err := h.store.Write(w, prefs); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, prefs)
}

func (h *PreferencesHandler) current(r *http.Request) domain.Preferences {
	prefs, ok := h.store.Read(r)
	if !ok {
		return domain.DefaultPreferences(i18n.Negotiate(r.Header.Get("Accept-Language")))
	}
	if prefs.Locale == "" {
		prefs.Locale = i18n.Negotiate(r.Header.Get("Accept-Language"))
	}
	return prefs
}
