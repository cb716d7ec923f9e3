package http

import (
	"log/slog"
	"net/http"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/catalog"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/httputil"
)

// CatalogHandler serves the pricing catalog.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(cat *catalog.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: cat, logger: logger}
}

// --- Response DTOs ---

type subTypeResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	BasePrice int64    `json:"base_price"`
	Duration  string   `json:"duration"`
	Includes  []string `json:"includes"`
}

type projectResponse struct {
	Type     catalog.ProjectType `json:"type"`
	Label    string              `json:"label"`
	Icon     string              `json:"icon"`
	SubTypes []subTypeResponse   `json:"sub_types"`
}

type optionResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       int64            `json:"price"`
	Category    catalog.Category `json:"category"`
}

type categoryResponse struct {
	Category catalog.Category `json:"category"`
	Label    string           `json:"label"`
	Icon     string           `json:"icon"`
}

type catalogResponse struct {
	Locale     i18n.Locale        `json:"locale"`
	Currency   string             `json:"currency"`
	Projects   []projectResponse  `json:"projects"`
	Options    []optionResponse   `json:"options"`
	Categories []categoryResponse `json:"categories"`
}

func toSubTypeResponses(subTypes []catalog.SubType, l i18n.Locale) []subTypeResponse {
	out := make([]subTypeResponse, 0, len(subTypes))
	for _, st := range subTypes {
		includes := st.Includes
		if includes == nil {
			includes = []string{}
		}
		out = append(out, subTypeResponse{
			ID:        st.ID,
			Name:      st.Name.In(l),
			BasePrice: st.BasePrice,
			Duration:  st.Duration.In(l),
			Includes:  includes,
		})
	}
	return out
}

// GetCatalog handles GET /api/v1/catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	l := LocaleFromContext(r.Context())

	resp := catalogResponse{
		Locale:   l,
		Currency: catalog.Currency,
	}
	for _, p := range h.catalog.Projects() {
		resp.Projects = append(resp.Projects, projectResponse{
			Type:     p.Type,
			Label:    p.Label.In(l),
			Icon:     p.Icon,
			SubTypes: toSubTypeResponses(p.SubTypes, l),
		})
	}
	for _, o := range h.catalog.Options() {
		resp.Options = append(resp.Options, optionResponse{
			ID:          o.ID,
			Name:        o.Name.In(l),
			Description: o.Description.In(l),
			Price:       o.Price,
			Category:    o.Category,
		})
	}
	for _, c := range h.catalog.Categories() {
		resp.Categories = append(resp.Categories, categoryResponse{
			Category: c.Category,
			Label:    c.Label.In(l),
			Icon:     c.Icon,
		})
	}

	httputil.WriteData(w, http.StatusOK, resp)
}
