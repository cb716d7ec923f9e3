// Package quote implements the quote simulator: the option-selection state
// machine over the pricing catalog and the totals and summaries derived from
// it.
package quote

import (
	"sort"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/catalog"
)

// State is a serializable snapshot of a selection. Options holds the
// explicitly selected ids only; included options are always derived from the
// sub-type.
type State struct {
	ProjectType catalog.ProjectType `json:"project_type"`
	SubTypeID   string              `json:"sub_type_id"`
	Options     []string            `json:"options"`
}

// IsEmpty reports whether no project type is chosen.
func (s State) IsEmpty() bool {
	return s.ProjectType == ""
}

// Engine holds one QuoteSelection over an immutable catalog. It is not safe
// for concurrent use; callers serialize access per session.
type Engine struct {
	cat         *catalog.Catalog
	projectType catalog.ProjectType
	subTypeID   string
	selected    map[string]struct{}
}

// NewEngine returns an engine in the Empty state.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{
		cat:      cat,
		selected: make(map[string]struct{}),
	}
}

// Restore rebuilds an engine from a snapshot. Unknown project types yield an
// Empty engine, unknown sub-types fall back to the first sub-type and unknown
// or included option ids are dropped.
func Restore(cat *catalog.Catalog, s State) *Engine {
	e := NewEngine(cat)
	if !cat.IsValidProjectType(s.ProjectType) {
		return e
	}
	st, _ := cat.ResolveSubType(s.ProjectType, s.SubTypeID)
	e.projectType = s.ProjectType
	e.subTypeID = st.ID
	for _, id := range s.Options {
		if _, ok := cat.Option(id); !ok || st.IncludesOption(id) {
			continue
		}
		e.selected[id] = struct{}{}
	}
	return e
}

// State returns a snapshot of the selection with options sorted by id.
func (e *Engine) State() State {
	opts := make([]string, 0, len(e.selected))
	for id := range e.selected {
		opts = append(opts, id)
	}
	sort.Strings(opts)
	return State{
		ProjectType: e.projectType,
		SubTypeID:   e.subTypeID,
		Options:     opts,
	}
}

// Catalog returns the catalog the engine prices against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// ProjectType returns the active project type, "" when Empty.
func (e *Engine) ProjectType() catalog.ProjectType {
	return e.projectType
}

// IsEmpty reports whether no project type is chosen.
func (e *Engine) IsEmpty() bool {
	return e.projectType == ""
}

// SelectProjectType activates t with its first sub-type and clears the
// explicit options, even when t is already active. An empty t resets the
// selection. Unknown types are ignored.
func (e *Engine) SelectProjectType(t catalog.ProjectType) {
	if t == "" {
		e.Reset()
		return
	}
	first, ok := e.cat.FirstSubType(t)
	if !ok {
		return
	}
	e.projectType = t
	e.subTypeID = first.ID
	e.clearOptions()
}

// ToggleProjectType deselects t when it is already active and selects it
// otherwise.
func (e *Engine) ToggleProjectType(t catalog.ProjectType) {
	if e.projectType != "" && e.projectType == t {
		e.Reset()
		return
	}
	e.SelectProjectType(t)
}

// SetSubType switches the package of the active project type and clears the
// explicit options. An id outside the active type falls back to its first
// sub-type. It does nothing when Empty.
func (e *Engine) SetSubType(id string) {
	if e.IsEmpty() {
		return
	}
	st, _ := e.cat.ResolveSubType(e.projectType, id)
	e.subTypeID = st.ID
	e.clearOptions()
}

// ToggleOption flips the explicit selection of an option and reports whether
// the selection changed. Included options, unknown ids and the Empty state
// leave the selection untouched.
func (e *Engine) ToggleOption(id string) bool {
	if e.IsEmpty() || e.IsOptionIncluded(id) {
		return false
	}
	if _, ok := e.cat.Option(id); !ok {
		return false
	}
	if _, ok := e.selected[id]; ok {
		delete(e.selected, id)
	} else {
		e.selected[id] = struct{}{}
	}
	return true
}

// IsOptionSelected reports whether the option is explicitly selected or
// included by the current sub-type.
func (e *Engine) IsOptionSelected(id string) bool {
	if _, ok := e.selected[id]; ok {
		return true
	}
	return e.IsOptionIncluded(id)
}

// IsOptionIncluded reports whether the current sub-type bundles the option.
func (e *Engine) IsOptionIncluded(id string) bool {
	st, ok := e.CurrentSubType()
	if !ok {
		return false
	}
	return st.IncludesOption(id)
}

// IncludedOptions returns the options bundled by the current sub-type in
// catalog order.
func (e *Engine) IncludedOptions() []catalog.Option {
	st, ok := e.CurrentSubType()
	if !ok {
		return nil
	}
	var out []catalog.Option
	for _, opt := range e.cat.Options() {
		if st.IncludesOption(opt.ID) {
			out = append(out, opt)
		}
	}
	return out
}

// ExtraOptions returns the explicitly selected, non-included options in
// catalog order.
func (e *Engine) ExtraOptions() []catalog.Option {
	st, ok := e.CurrentSubType()
	if !ok {
		return nil
	}
	var out []catalog.Option
	for _, opt := range e.cat.Options() {
		if _, sel := e.selected[opt.ID]; sel && !st.IncludesOption(opt.ID) {
			out = append(out, opt)
		}
	}
	return out
}

// CurrentSubType returns the active sub-type, or false when Empty.
func (e *Engine) CurrentSubType() (catalog.SubType, bool) {
	if e.IsEmpty() {
		return catalog.SubType{}, false
	}
	return e.cat.ResolveSubType(e.projectType, e.subTypeID)
}

// SubTypes returns the sub-types of the active project type, or those of the
// first catalog project when Empty.
func (e *Engine) SubTypes() []catalog.SubType {
	if p, ok := e.cat.Project(e.projectType); ok {
		return p.SubTypes
	}
	projects := e.cat.Projects()
	if len(projects) == 0 {
		return nil
	}
	return projects[0].SubTypes
}

// Total is the base price plus every non-included selected option, 0 when
// Empty.
func (e *Engine) Total() int64 {
	st, ok := e.CurrentSubType()
	if !ok {
		return 0
	}
	total := st.BasePrice
	for _, opt := range e.ExtraOptions() {
		total += opt.Price
	}
	return total
}

// Reset returns the engine to the Empty state.
func (e *Engine) Reset() {
	e.projectType = ""
	e.subTypeID = ""
	e.clearOptions()
}

func (e *Engine) clearOptions() {
	for id := range e.selected {
		delete(e.selected, id)
	}
}
