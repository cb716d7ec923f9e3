// Package catalog holds the immutable pricing catalog of the quote
// simulator: project types, their sub-type packages and the add-on options.
package catalog

import (
	"fmt"
	"sync"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
)

// ProjectType is the top-level category of a quoted project.
type ProjectType string

// Project type constants.
const (
	ProjectWebsite     ProjectType = "website"
	ProjectApplication ProjectType = "application"
	ProjectShopify     ProjectType = "shopify"
	ProjectCustom      ProjectType = "custom"
)

// Category groups options for display.
type Category string

// Option category constants.
const (
	CategoryTech      Category = "tech"
	CategoryMarketing Category = "marketing"
	CategoryDesign    Category = "design"
	CategorySupport   Category = "support"
)

// Currency is the ISO code of every amount in the catalog.
const Currency = "EUR"

// Text is a string translated into every supported locale.
type Text struct {
	FR string `json:"fr"`
	EN string `json:"en"`
}

// In returns the translation for the locale.
func (t Text) In(l i18n.Locale) string {
	if l == i18n.English {
		return t.EN
	}
	return t.FR
}

// SubType is a concrete package within a project type.
type SubType struct {
	ID string `json:"id"`
	// Name is the display name of the package.
	Name Text `json:"name"`
	// BasePrice is expressed in whole euros.
	BasePrice int64 `json:"base_price"`
	Duration  Text  `json:"duration"`
	// Includes lists the option ids bundled into BasePrice.
	Includes []string `json:"includes"`
}

// IncludesOption reports whether the option is bundled into the sub-type.
func (s SubType) IncludesOption(optionID string) bool {
	for _, id := range s.Includes {
		if id == optionID {
			return true
		}
	}
	return false
}

// Project is a project type with its packages.
type Project struct {
	Type     ProjectType `json:"type"`
	Label    Text        `json:"label"`
	Icon     string      `json:"icon"`
	SubTypes []SubType   `json:"sub_types"`
}

// Option is an add-on that can be bought on top of a package.
type Option struct {
	ID          string `json:"id"`
	Name        Text   `json:"name"`
	Description Text   `json:"description"`
	// Price is expressed in whole euros.
	Price    int64    `json:"price"`
	Category Category `json:"category"`
}

// CategoryMeta describes how a category is rendered.
type CategoryMeta struct {
	Category Category `json:"category"`
	Label    Text     `json:"label"`
	Icon     string   `json:"icon"`
}

// Catalog is the validated, read-only pricing catalog.
type Catalog struct {
	projects   []Project
	projectIdx map[ProjectType]int
	options    []Option
	optionIdx  map[string]int
	categories []CategoryMeta
}

// New builds a catalog and checks its invariants.
func New(projects []Project, options []Option, categories []CategoryMeta) (*Catalog, error) {
	c := &Catalog{
		projects:   projects,
		projectIdx: make(map[ProjectType]int, len(projects)),
		options:    options,
		optionIdx:  make(map[string]int, len(options)),
		categories: categories,
	}

	knownCategories := make(map[Category]struct{}, len(categories))
	for _, meta := range categories {
		if _, dup := knownCategories[meta.Category]; dup {
			return nil, fmt.Errorf("duplicate category %q", meta.Category)
		}
		knownCategories[meta.Category] = struct{}{}
	}

	for i, opt := range options {
		if opt.ID == "" {
			return nil, fmt.Errorf("option at index %d has no id", i)
		}
		if _, dup := c.optionIdx[opt.ID]; dup {
			return nil, fmt.Errorf("duplicate option id %q", opt.ID)
		}
		if opt.Price < 0 {
			return nil, fmt.Errorf("option %q has negative price %d", opt.ID, opt.Price)
		}
		if _, ok := knownCategories[opt.Category]; !ok {
			return nil, fmt.Errorf("option %q has unknown category %q", opt.ID, opt.Category)
		}
		c.optionIdx[opt.ID] = i
	}

	for i, p := range projects {
		if p.Type == "" {
			return nil, fmt.Errorf("project at index %d has no type", i)
		}
		if _, dup := c.projectIdx[p.Type]; dup {
			return nil, fmt.Errorf("duplicate project type %q", p.Type)
		}
		if len(p.SubTypes) == 0 {
			return nil, fmt.Errorf("project %q has no sub-types", p.Type)
		}
		seen := make(map[string]struct{}, len(p.SubTypes))
		for _, st := range p.SubTypes {
			if st.ID == "" {
				return nil, fmt.Errorf("project %q has a sub-type without id", p.Type)
			}
			if _, dup := seen[st.ID]; dup {
				return nil, fmt.Errorf("project %q: duplicate sub-type id %q", p.Type, st.ID)
			}
			seen[st.ID] = struct{}{}
			if st.BasePrice < 0 {
				return nil, fmt.Errorf("sub-type %s/%s has negative base price %d", p.Type, st.ID, st.BasePrice)
			}
			for _, inc := range st.Includes {
				if _, ok := c.optionIdx[inc]; !ok {
					return nil, fmt.Errorf("sub-type %s/%s includes unknown option %q", p.Type, st.ID, inc)
				}
			}
		}
		c.projectIdx[p.Type] = i
	}

	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It panics if the static data breaks
// a catalog invariant.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(defaultProjects(), defaultOptions(), defaultCategories())
		if err != nil {
			panic(fmt.Sprintf("catalog: invalid built-in data: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Projects returns the project types in display order.
func (c *Catalog) Projects() []Project {
	return c.projects
}

// Project looks up a project type.
func (c *Catalog) Project(t ProjectType) (*Project, bool) {
	i, ok := c.projectIdx[t]
	if !ok {
		return nil, false
	}
	return &c.projects[i], true
}

// IsValidProjectType reports whether t is a catalog key.
func (c *Catalog) IsValidProjectType(t ProjectType) bool {
	_, ok := c.projectIdx[t]
	return ok
}

// SubType looks up a sub-type of the given project type.
func (c *Catalog) SubType(t ProjectType, id string) (SubType, bool) {
	p, ok := c.Project(t)
	if !ok {
		return SubType{}, false
	}
	for _, st := range p.SubTypes {
		if st.ID == id {
			return st, true
		}
	}
	return SubType{}, false
}

// FirstSubType returns the default package of a project type.
func (c *Catalog) FirstSubType(t ProjectType) (SubType, bool) {
	p, ok := c.Project(t)
	if !ok {
		return SubType{}, false
	}
	return p.SubTypes[0], true
}

// ResolveSubType returns the sub-type with the given id, or the project's
// first sub-type when id does not belong to it.
func (c *Catalog) ResolveSubType(t ProjectType, id string) (SubType, bool) {
	if st, ok := c.SubType(t, id); ok {
		return st, true
	}
	return c.FirstSubType(t)
}

// Options returns every option in catalog order.
func (c *Catalog) Options() []Option {
	return c.options
}

// Option looks up an option by id.
func (c *Catalog) Option(id string) (Option, bool) {
	i, ok := c.optionIdx[id]
	if !ok {
		return Option{}, false
	}
	return c.options[i], true
}

// OptionsByCategory returns the options of one category in catalog order.
func (c *Catalog) OptionsByCategory(cat Category) []Option {
	var out []Option
	for _, opt := range c.options {
		if opt.Category == cat {
			out = append(out, opt)
		}
	}
	return out
}

// Categories returns the category metadata in display order.
func (c *Catalog) Categories() []CategoryMeta {
	return c.categories
}
