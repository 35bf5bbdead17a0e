// Package sections turns the content document into the view models the page
// templates render, one per section, and composes them in page order.
package sections

import (
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/icons"
	"github.com/Zachkp/portfolio/internal/ui"
	"github.com/Zachkp/portfolio/internal/visits"
)

// Order is the fixed vertical order of the page.
var Order = []string{"home", "about", "skills", "projects", "activity", "recommendations", "contact", "footer"}

// MaxStars caps the rating shown on a recommendation.
const MaxStars = 5

// State is the per-request interaction state the page is rendered in.
type State struct {
	Category       string // active project filter, "" means All
	Experience     int    // index of the expanded experience entry
	ExperienceOpen bool
	FocusedCard    int
	CardFocused    bool
	Visits         visits.Count
	Now            time.Time
}

// Page is the whole composed page.
type Page struct {
	Title           string
	Description     string
	Hero            Hero
	About           About
	Skills          Skills
	Projects        Projects
	Activity        *Activity
	Recommendations *Recommendations
	Contact         Contact
	Footer          Footer
}

type Hero struct {
	Greeting    string
	Name        string
	TypingText  string
	Description template.HTML
	Headline    string
	LinkedIn    string
	Cards       []HeroCard
}

type HeroCard struct {
	Index       int
	Title       string
	Description string
	Icon        icons.Icon
	Focused     bool
}

type About struct {
	Title                 string
	Description           template.HTML
	AdditionalDescription string
	Highlights            []Highlight
	Stats                 []content.Stat
	Experience            []ExperienceCard
	Modal                 *ExperienceModal
}

type Highlight struct {
	Title       string
	Description string
	Icon        icons.Icon
}

type ExperienceCard struct {
	Index   int
	Title   string
	Company string
	Period  string
	Summary string
}

// ExperienceModal is the expanded view of one entry plus the page effects
// held while it is open.
type ExperienceModal struct {
	Index        int
	Entry        content.ExperienceEntry
	ScrollLocked bool
	EscapeBound  bool
}

type Skills struct {
	Categories      []SkillCategory
	Specializations []Specialization
	Certifications  []content.Certification
}

type SkillCategory struct {
	Title  string
	Icon   icons.Icon
	Skills []string
}

type Specialization struct {
	Title       string
	Icon        icons.Icon
	Description string
	Features    []string
}

type Projects struct {
	Filters []Filter
	Active  string
	Cards   []ProjectCard
	Contact string
}

type Filter struct {
	Name   string
	Active bool
}

type ProjectCard struct {
	content.Project
	Icon            icons.Icon
	DescriptionHTML template.HTML
}

type Activity struct {
	Title           string
	Subtitle        string
	LinkedInProfile string
	Posts           []content.ActivityPost
}

// HasPosts picks between the posts grid and the empty call-to-action.
func (a *Activity) HasPosts() bool {
	return len(a.Posts) > 0
}

type Recommendations struct {
	Title    string
	Subtitle string
	Items    []Recommendation
}

type Recommendation struct {
	Name     string
	Initial  string
	Avatar   string
	RoleLine string
	Content  string
	Stars    int
}

// StarList exists for templates, which can only range over collections.
func (r Recommendation) StarList() []struct{} {
	return make([]struct{}, r.Stars)
}

type Contact struct {
	Title    string
	Subtitle string
	Email    string
	LinkedIn string
	Location string
}

type Footer struct {
	Name        string
	Description string
	Services    []string
	Email       string
	LinkedIn    string
	Location    string
	Year        int
	Visits      visits.Count
}

// Stars is the number of rating units displayed: none for zero or
// negative ratings, at most MaxStars otherwise. Fractions round down.
func Stars(rating float64) int {
	if rating <= 0 {
		return 0
	}
	return min(int(rating), MaxStars)
}

// Builder builds section view models; it owns the markdown renderer.
type Builder struct {
	md *content.Markdown
}

func NewBuilder(md *content.Markdown) *Builder {
	if md == nil {
		md = content.NewMarkdown()
	}
	return &Builder{md: md}
}

// Compose is the composition root: every section, in page order.
func (b *Builder) Compose(doc *content.Document, st State) Page {
	if st.Now.IsZero() {
		st.Now = time.Now()
	}
	return Page{
		Title:           pageTitle(doc.Personal),
		Description:     doc.Footer.Description,
		Hero:            b.Hero(doc, st),
		About:           b.About(doc, st),
		Skills:          b.Skills(doc),
		Projects:        b.Projects(doc, st.Category),
		Activity:        b.Activity(doc),
		Recommendations: b.Recommendations(doc),
		Contact:         b.Contact(doc),
		Footer:          b.Footer(doc, st),
	}
}

func pageTitle(p content.Personal) string {
	if p.Title == "" {
		return p.Name
	}
	return p.Name + " | " + p.Title
}

func (b *Builder) Hero(doc *content.Document, st State) Hero {
	focus := ui.NewCardFocus(len(doc.Hero.FloatingCards))
	if st.CardFocused {
		focus.Toggle(st.FocusedCard)
	}

	cards := make([]HeroCard, len(doc.Hero.FloatingCards))
	for i, c := range doc.Hero.FloatingCards {
		cards[i] = HeroCard{
			Index:       i,
			Title:       c.Title,
			Description: c.Description,
			Icon:        icons.Resolve(c.Icon),
			Focused:     focus.IsFocused(i),
		}
	}
	return Hero{
		Greeting:    doc.Hero.Greeting,
		Name:        doc.Personal.Name,
		TypingText:  doc.Hero.TypingText,
		Description: b.md.Render(doc.Hero.Description),
		Headline:    doc.Personal.Description,
		LinkedIn:    doc.Personal.LinkedIn,
		Cards:       cards,
	}
}

func (b *Builder) About(doc *content.Document, st State) About {
	a := About{
		Title:                 doc.About.Title,
		Description:           b.md.Render(doc.About.Description),
		AdditionalDescription: doc.About.AdditionalDescription,
		Stats:                 doc.About.Stats,
	}
	for _, h := range doc.About.Highlights {
		a.Highlights = append(a.Highlights, Highlight{
			Title:       h.Title,
			Description: h.Description,
			Icon:        icons.Resolve(h.Icon),
		})
	}
	for i, e := range doc.Experience {
		a.Experience = append(a.Experience, ExperienceCard{
			Index:   i,
			Title:   e.Title,
			Company: e.Company,
			Period:  e.Period,
			Summary: e.Summary(),
		})
	}
	if st.ExperienceOpen {
		a.Modal = b.ExperienceModal(doc, st.Experience)
	}
	return a
}

// ExperienceModal runs the modal state machine for entry i and returns the
// open view, or nil when i does not name an entry.
func (b *Builder) ExperienceModal(doc *content.Document, i int) *ExperienceModal {
	fx := &ui.PageEffects{}
	m := ui.NewExperienceModal(len(doc.Experience), fx)
	if err := m.Open(i); err != nil {
		return nil
	}
	defer m.Teardown()

	idx, _ := m.Selected()
	return &ExperienceModal{
		Index:        idx,
		Entry:        doc.Experience[idx],
		ScrollLocked: fx.ScrollLocked,
		EscapeBound:  fx.EscapeBound,
	}
}

func (b *Builder) Skills(doc *content.Document) Skills {
	s := Skills{Certifications: doc.Skills.Certifications}
	for _, c := range doc.Skills.Categories {
		names := make([]string, len(c.Skills))
		for i, sk := range c.Skills {
			names[i] = sk.Name
		}
		s.Categories = append(s.Categories, SkillCategory{Title: c.Title, Icon: icons.Resolve(c.Icon), Skills: names})
	}
	for _, sp := range doc.Skills.Specializations {
		s.Specializations = append(s.Specializations, Specialization{
			Title:       sp.Title,
			Icon:        icons.Resolve(sp.Icon),
			Description: sp.Description,
			Features:    sp.Features,
		})
	}
	return s
}

// Projects runs the category filter with category selected.
func (b *Builder) Projects(doc *content.Document, category string) Projects {
	f := ui.NewCategoryFilter(doc.Projects)
	f.Select(category)

	p := Projects{Active: f.Active(), Contact: doc.Personal.LinkedIn}
	for _, c := range f.Categories() {
		p.Filters = append(p.Filters, Filter{Name: c, Active: c == f.Active()})
	}
	for _, pr := range f.Visible() {
		p.Cards = append(p.Cards, ProjectCard{
			Project:         pr,
			Icon:            icons.Resolve(pr.Icon),
			DescriptionHTML: b.md.Render(pr.Description),
		})
	}
	return p
}

// Activity is nil when the document has no activity section.
func (b *Builder) Activity(doc *content.Document) *Activity {
	if doc.Activity == nil {
		return nil
	}
	return &Activity{
		Title:           doc.Activity.Title,
		Subtitle:        doc.Activity.Subtitle,
		LinkedInProfile: doc.Activity.LinkedInProfile,
		Posts:           doc.Activity.Posts,
	}
}

// Recommendations is nil when there is nothing to show.
func (b *Builder) Recommendations(doc *content.Document) *Recommendations {
	r := doc.Recommendations
	if r == nil || len(r.Items) == 0 {
		return nil
	}
	out := &Recommendations{Title: r.Title, Subtitle: r.Subtitle}
	for _, it := range r.Items {
		role := it.Role
		if it.Company != "" {
			role += " at " + it.Company
		}
		out.Items = append(out.Items, Recommendation{
			Name:     it.Name,
			Initial:  initial(it.Name),
			Avatar:   it.Avatar,
			RoleLine: role,
			Content:  it.Content,
			Stars:    Stars(it.Rating),
		})
	}
	return out
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(r)
}

func (b *Builder) Contact(doc *content.Document) Contact {
	return Contact{
		Title:    doc.Contact.Title,
		Subtitle: doc.Contact.Subtitle,
		Email:    doc.Personal.Email,
		LinkedIn: doc.Personal.LinkedIn,
		Location: doc.Personal.Location,
	}
}

func (b *Builder) Footer(doc *content.Document, st State) Footer {
	return Footer{
		Name:        doc.Personal.Name,
		Description: doc.Footer.Description,
		Services:    doc.Footer.Services,
		Email:       doc.Personal.Email,
		LinkedIn:    doc.Personal.LinkedIn,
		Location:    doc.Personal.Location,
		Year:        st.Now.Year(),
		Visits:      st.Visits,
	}
}
