package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/catalog"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/quote"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/service"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/httputil"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/validator"
)

// QuoteHandler handles HTTP requests for the quote simulator endpoints.
type QuoteHandler struct {
	service *service.QuoteService
	logger  *slog.Logger
}

// NewQuoteHandler creates a new quote HTTP handler.
func NewQuoteHandler(svc *service.QuoteService, logger *slog.Logger) *QuoteHandler {
	return &QuoteHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// SelectProjectTypeRequest selects a project type; null or "" resets.
type SelectProjectTypeRequest struct {
	ProjectType *string `json:"project_type" validate:"omitempty,max=64"`
}

// ToggleProjectTypeRequest toggles a project type.
type ToggleProjectTypeRequest struct {
	ProjectType string `json:"project_type" validate:"notblank,max=64"`
}

// SetSubTypeRequest picks a package of the active project type.
type SetSubTypeRequest struct {
	SubTypeID string `json:"sub_type_id" validate:"notblank,max=64"`
}

// EstimateRequest prices a selection without a session.
type EstimateRequest struct {
	ProjectType string   `json:"project_type" validate:"notblank,max=64"`
	SubTypeID   string   `json:"sub_type_id" validate:"omitempty,max=64"`
	Options     []string `json:"options" validate:"max=32,dive,required,max=64"`
	Locale      string   `json:"locale" validate:"omitempty,oneof=fr en"`
}

// --- Response DTOs ---

type quoteResponse struct {
	ID          string               `json:"id"`
	ProjectType *catalog.ProjectType `json:"project_type"`
	SubTypeID   string               `json:"sub_type_id,omitempty"`
	Options     []string             `json:"options"`
	Included    []string             `json:"included"`
	SubTypes    []subTypeResponse    `json:"sub_types"`
	Total       int64                `json:"total"`
	Currency    string               `json:"currency"`
	Breakdown   *quote.Breakdown     `json:"breakdown,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type estimateResponse struct {
	Breakdown quote.Breakdown `json:"breakdown"`
	Summary   string          `json:"summary"`
}

type summaryResponse struct {
	Locale  i18n.Locale `json:"locale"`
	Summary string      `json:"summary"`
}

func toQuoteResponse(q *service.Quote, l i18n.Locale) quoteResponse {
	state := q.Engine.State()
	resp := quoteResponse{
		ID:        q.Session.ID,
		SubTypeID: state.SubTypeID,
		Options:   state.Options,
		Included:  []string{},
		SubTypes:  toSubTypeResponses(q.Engine.SubTypes(), l),
		Total:     q.Engine.Total(),
		Currency:  catalog.Currency,
		CreatedAt: q.Session.CreatedAt,
		UpdatedAt: q.Session.UpdatedAt,
	}
	if !state.IsEmpty() {
		pt := state.ProjectType
		resp.ProjectType = &pt
	}
	for _, opt := range q.Engine.IncludedOptions() {
		resp.Included = append(resp.Included, opt.ID)
	}
	if b, ok := q.Engine.Breakdown(l); ok {
		resp.Breakdown = &b
	}
	return resp
}

// --- Handlers ---

// CreateSession handles POST /api/v1/quotes
func (h *QuoteHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.CreateSession(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, toQuoteResponse(q, LocaleFromContext(r.Context())))
}

// GetSession handles GET /api/v1/quotes/{id}
func (h *QuoteHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	q, err := h.service.GetSession(r.Context(), id.String())
	h.writeQuote(w, r, q, err)
}

// SelectProjectType handles PUT /api/v1/quotes/{id}/project-type
func (h *QuoteHandler) SelectProjectType(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req SelectProjectTypeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	var t catalog.ProjectType
	if req.ProjectType != nil {
		t = catalog.ProjectType(*req.ProjectType)
	}

	q, err := h.service.SelectProjectType(r.Context(), id.String(), t)
	h.writeQuote(w, r, q, err)
}

// ToggleProjectType handles POST /api/v1/quotes/{id}/project-type/toggle
func (h *QuoteHandler) ToggleProjectType(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req ToggleProjectTypeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	q, err := h.service.ToggleProjectType(r.Context(), id.String(), catalog.ProjectType(req.ProjectType))
	h.writeQuote(w, r, q, err)
}

// SetSubType handles PUT /api/v1/quotes/{id}/sub-type
func (h *QuoteHandler) SetSubType(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req SetSubTypeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	q, err := h.service.SetSubType(r.Context(), id.String(), req.SubTypeID)
	h.writeQuote(w, r, q, err)
}

// ToggleOption handles POST /api/v1/quotes/{id}/options/{optionId}/toggle
func (h *QuoteHandler) ToggleOption(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	q, err := h.service.ToggleOption(r.Context(), id.String(), chi.URLParam(r, "optionId"))
	h.writeQuote(w, r, q, err)
}

// Reset handles POST /api/v1/quotes/{id}/reset
func (h *QuoteHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	q, err := h.service.Reset(r.Context(), id.String())
	h.writeQuote(w, r, q, err)
}

// Summary handles GET /api/v1/quotes/{id}/summary
func (h *QuoteHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	l := LocaleFromContext(r.Context())
	text, err := h.service.Summary(r.Context(), id.String(), l)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, summaryResponse{Locale: l, Summary: text})
}

// DeleteSession handles DELETE /api/v1/quotes/{id}
func (h *QuoteHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteSession(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Estimate handles POST /api/v1/quotes/estimate
func (h *QuoteHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	l := LocaleFromContext(r.Context())
	if parsed, ok := i18n.Parse(req.Locale); ok {
		l = parsed
	}

	b, text, err := h.service.Estimate(r.Context(), service.EstimateInput{
		ProjectType: catalog.ProjectType(req.ProjectType),
		SubTypeID:   req.SubTypeID,
		Options:     req.Options,
	}, l)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, estimateResponse{Breakdown: b, Summary: text})
}

func (h *QuoteHandler) writeQuote(w http.ResponseWriter, r *http.Request, q *service.Quote, err error) {
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, toQuoteResponse(q, LocaleFromContext(r.Context())))
}
