package quote

import (
	"fmt"
	"strings"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/catalog"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
)

// LineItem is one option row of a Breakdown.
type LineItem struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Price    int64            `json:"price"`
	Category catalog.Category `json:"category"`
}

// Breakdown is the localized, structured form of a quote.
type Breakdown struct {
	ProjectType  catalog.ProjectType `json:"project_type"`
	ProjectLabel string              `json:"project_label"`
	SubTypeID    string              `json:"sub_type_id"`
	SubTypeName  string              `json:"sub_type_name"`
	Duration     string              `json:"duration"`
	BasePrice    int64               `json:"base_price"`
	Included     []LineItem          `json:"included"`
	Extras       []LineItem          `json:"extras"`
	Total        int64               `json:"total"`
	Currency     string              `json:"currency"`
}

// Breakdown returns the structured quote for the locale, or false when Empty.
func (e *Engine) Breakdown(l i18n.Locale) (Breakdown, bool) {
	st, ok := e.CurrentSubType()
	if !ok {
		return Breakdown{}, false
	}
	p, _ := e.cat.Project(e.projectType)

	b := Breakdown{
		ProjectType:  e.projectType,
		ProjectLabel: p.Label.In(l),
		SubTypeID:    st.ID,
		SubTypeName:  st.Name.In(l),
		Duration:     st.Duration.In(l),
		BasePrice:    st.BasePrice,
		Included:     lineItems(e.IncludedOptions(), l),
		Extras:       lineItems(e.ExtraOptions(), l),
		Total:        e.Total(),
		Currency:     catalog.Currency,
	}
	return b, true
}

func lineItems(opts []catalog.Option, l i18n.Locale) []LineItem {
	items := make([]LineItem, 0, len(opts))
	for _, opt := range opts {
		items = append(items, LineItem{
			ID:       opt.ID,
			Name:     opt.Name.In(l),
			Price:    opt.Price,
			Category: opt.Category,
		})
	}
	return items
}

// Summary renders the selection as plain text in the locale. It returns ""
// when no project type is chosen.
func (e *Engine) Summary(l i18n.Locale) string {
	b, ok := e.Breakdown(l)
	if !ok {
		return ""
	}
	return RenderSummary(b, l)
}

// RenderSummary formats a Breakdown as the text attached to quote e-mails.
func RenderSummary(b Breakdown, l i18n.Locale) string {
	var sb strings.Builder

	sb.WriteString(i18n.T(l, i18n.KeySummaryTitle))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s: %s\n", i18n.T(l, i18n.KeySummaryProject), b.ProjectLabel)
	fmt.Fprintf(&sb, "%s: %s\n", i18n.T(l, i18n.KeySummaryPackage), b.SubTypeName)
	fmt.Fprintf(&sb, "%s: %s\n\n", i18n.T(l, i18n.KeySummaryDuration), b.Duration)

	if len(b.Included) > 0 {
		fmt.Fprintf(&sb, "%s:\n", i18n.T(l, i18n.KeySummaryIncluded))
		for _, item := range b.Included {
			fmt.Fprintf(&sb, "  ✓ %s\n", item.Name)
		}
		sb.WriteString("\n")
	}

	if len(b.Extras) > 0 {
		fmt.Fprintf(&sb, "%s:\n", i18n.T(l, i18n.KeySummaryAdditions))
		for _, item := range b.Extras {
			fmt.Fprintf(&sb, "  + %s (+%d€)\n", item.Name, item.Price)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, i18n.T(l, i18n.KeySummaryEstimate), i18n.FormatAmount(l, b.Total))
	return sb.String()
}
