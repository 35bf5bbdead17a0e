package ui

import "github.com/Zachkp/portfolio/internal/content"

// AllCategories is the implicit first filter that shows every project.
const AllCategories = "All"

// Categories returns "All" followed by the distinct project categories in
// order of first appearance.
func Categories(projects []content.Project) []string {
	seen := map[string]bool{AllCategories: true}
	out := []string{AllCategories}
	for _, p := range projects {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// CategoryFilter is the project filter bar state.
type CategoryFilter struct {
	projects   []content.Project
	categories []string
	active     string
}

func NewCategoryFilter(projects []content.Project) *CategoryFilter {
	return &CategoryFilter{
		projects:   projects,
		categories: Categories(projects),
		active:     AllCategories,
	}
}

// Select makes c the active category. An empty name means "All".
func (f *CategoryFilter) Select(c string) {
	if c == "" {
		c = AllCategories
	}
	f.active = c
}

func (f *CategoryFilter) Active() string {
	return f.active
}

func (f *CategoryFilter) Categories() []string {
	return f.categories
}

// Visible returns the projects shown for the active category, in content
// order. Unknown categories match nothing.
func (f *CategoryFilter) Visible() []content.Project {
	if f.active == AllCategories {
		return f.projects
	}
	out := make([]content.Project, 0, len(f.projects))
	for _, p := range f.projects {
		if p.Category == f.active {
			out = append(out, p)
		}
	}
	return out
}
