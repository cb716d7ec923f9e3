package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/service"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/httputil"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/pagination"
)

// AdminHandler exposes recorded contact submissions to the site owner.
type AdminHandler struct {
	service *service.ContactService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.ContactService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{service: svc, logger: logger}
}

// ListSubmissions handles GET /api/v1/admin/contact-submissions
func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)

	subs, total, err := h.service.ListSubmissions(r.Context(), r.URL.Query().Get("status"), page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse[domain.ContactSubmission](subs, total, page.Page, page.PerPage))
}

// GetSubmission handles GET /api/v1/admin/contact-submissions/{id}
func (h *AdminHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	sub, err := h.service.GetSubmission(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, sub)
}

// RetrySubmission handles POST /api/v1/admin/contact-submissions/{id}/retry
func (h *AdminHandler) RetrySubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	sub, err := h.service.RetrySubmission(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "contact submission resent",
		slog.String("submission_id", sub.ID),
		slog.Int("attempts", sub.Attempts),
	)
	httputil.WriteData(w, http.StatusOK, sub)
}
