package http

import (
	"log/slog"
	"net/http"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/service"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/httputil"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/validator"
)

// ContactHandler handles the contact form endpoint.
type ContactHandler struct {
	service *service.ContactService
	logger  *slog.Logger
}

// NewContactHandler creates a new contact HTTP handler.
func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{service: svc, logger: logger}
}

// ContactRequest is the JSON request body of the contact form. Presence and
// email format are checked by the service so the messages are localized;
// the tags only bound sizes.
type ContactRequest struct {
	Name           string `json:"name" validate:"max=200"`
	Email          string `json:"email" validate:"max=254"`
	Message        string `json:"message" validate:"max=5000"`
	QuoteSummary   string `json:"quote_summary" validate:"max=10000"`
	QuoteSessionID string `json:"quote_session_id" validate:"omitempty,uuid"`
	Locale         string `json:"locale" validate:"omitempty,oneof=fr en"`
}

type contactResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Submit handles POST /api/v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	l := LocaleFromContext(r.Context())
	if parsed, ok := i18n.Parse(req.Locale); ok {
		l = parsed
	}

	sub, err := h.service.Submit(r.Context(), service.ContactInput{
		Name:           req.Name,
		Email:          req.Email,
		Message:        req.Message,
		QuoteSummary:   req.QuoteSummary,
		QuoteSessionID: req.QuoteSessionID,
		Locale:         l,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, contactResponse{
		Success: true,
		ID:      sub.ID,
		Message: i18n.T(l, i18n.KeyContactSuccess),
	})
}
