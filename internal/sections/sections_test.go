package sections

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/icons"
	"github.com/Zachkp/portfolio/internal/visits"
)

func testDoc() *content.Document {
	doc, err := content.Parse([]byte(`{
		"personal": {"name": "Jane Doe", "title": "QA Engineer", "linkedin": "https://linkedin.example/jane"},
		"hero": {"typingText": "Quality Advocate", "floatingCards": [{"title": "A", "icon": "FaBug"}, {"title": "B", "icon": "Nope"}]},
		"experience": [
			{"title": "QA", "company": "Acme", "period": "2023", "overview": "short", "description": "long", "technologies": ["Selenium"]},
			{"title": "Intern", "company": "Beta", "period": "2021", "description": "only desc"}
		],
		"projects": [
			{"title": "p1", "category": "Automation", "icon": "SiSelenium"},
			{"title": "p2", "category": "API"},
			{"title": "p3", "category": "Automation", "icon": "SiGit"}
		],
		"recommendations": {"items": [
			{"name": "Bob", "role": "Dev", "company": "Acme", "rating": 7},
			{"name": "carol", "role": "PM", "rating": 0},
			{"name": "Dan", "role": "QA"},
			{"name": "Eve", "role": "QA", "rating": 3}
		]},
		"footer": {"services": ["Testing"]}
	}`), content.FormatJSON)
	if err != nil {
		panic(err)
	}
	return doc
}

func TestStars(t *testing.T) {
	assert.Equal(t, 5, Stars(7))
	assert.Equal(t, 5, Stars(5))
	assert.Equal(t, 3, Stars(3))
	assert.Equal(t, 0, Stars(0))
	assert.Equal(t, 0, Stars(-2))
	assert.Equal(t, 4, Stars(4.5))
	assert.Equal(t, 0, Stars(0.5))
}

func TestRecommendations(t *testing.T) {
	b := NewBuilder(nil)
	r := b.Recommendations(testDoc())
	require.NotNil(t, r)
	require.Len(t, r.Items, 4)

	assert.Equal(t, 5, r.Items[0].Stars)
	assert.Len(t, r.Items[0].StarList(), 5)
	assert.Equal(t, "Dev at Acme", r.Items[0].RoleLine)
	assert.Equal(t, "B", r.Items[0].Initial)

	assert.Equal(t, 0, r.Items[1].Stars)
	assert.Equal(t, "c", r.Items[1].Initial)
	assert.Equal(t, "PM", r.Items[1].RoleLine)
	assert.Equal(t, 0, r.Items[2].Stars)
	assert.Equal(t, 3, r.Items[3].Stars)
}

func TestRecommendationsOmittedWhenEmpty(t *testing.T) {
	b := NewBuilder(nil)
	doc := testDoc()
	doc.Recommendations.Items = nil
	assert.Nil(t, b.Recommendations(doc))

	doc.Recommendations = nil
	assert.Nil(t, b.Recommendations(doc))
}

func TestActivityBranches(t *testing.T) {
	b := NewBuilder(nil)
	doc := testDoc()
	assert.Nil(t, b.Activity(doc))

	doc.Activity = &content.Activity{Title: "Activity"}
	a := b.Activity(doc)
	require.NotNil(t, a)
	assert.False(t, a.HasPosts())

	doc.Activity.Posts = []content.ActivityPost{{Title: "post"}}
	assert.True(t, b.Activity(doc).HasPosts())
}

func TestProjectsFilter(t *testing.T) {
	b := NewBuilder(nil)
	doc := testDoc()

	p := b.Projects(doc, "")
	assert.Equal(t, "All", p.Active)
	require.Len(t, p.Filters, 3)
	assert.Equal(t, Filter{Name: "All", Active: true}, p.Filters[0])
	assert.Len(t, p.Cards, 3)

	p = b.Projects(doc, "Automation")
	assert.Equal(t, "Automation", p.Active)
	assert.True(t, p.Filters[1].Active)
	require.Len(t, p.Cards, 2)
	assert.Equal(t, "p1", p.Cards[0].Title)
	assert.Equal(t, icons.SiSelenium, p.Cards[0].Icon.ID)
	assert.Equal(t, "p3", p.Cards[1].Title)

	p = b.Projects(doc, "API")
	require.Len(t, p.Cards, 1)
	assert.Equal(t, icons.Default, p.Cards[0].Icon.ID)
}

func TestAboutModal(t *testing.T) {
	b := NewBuilder(nil)
	doc := testDoc()

	a := b.About(doc, State{})
	assert.Nil(t, a.Modal)
	require.Len(t, a.Experience, 2)
	assert.Equal(t, "short", a.Experience[0].Summary)
	assert.Equal(t, "only desc", a.Experience[1].Summary)

	a = b.About(doc, State{ExperienceOpen: true, Experience: 1})
	require.NotNil(t, a.Modal)
	assert.Equal(t, 1, a.Modal.Index)
	assert.Equal(t, "Beta", a.Modal.Entry.Company)
	assert.NotNil(t, a.Modal.Entry.Technologies)
	assert.True(t, a.Modal.ScrollLocked)
	assert.True(t, a.Modal.EscapeBound)

	a = b.About(doc, State{ExperienceOpen: true, Experience: 9})
	assert.Nil(t, a.Modal)
}

func TestHeroCards(t *testing.T) {
	b := NewBuilder(nil)
	doc := testDoc()

	h := b.Hero(doc, State{CardFocused: true, FocusedCard: 1})
	require.Len(t, h.Cards, 2)
	assert.Equal(t, icons.FaBug, h.Cards[0].Icon.ID)
	assert.Equal(t, icons.Default, h.Cards[1].Icon.ID)
	assert.False(t, h.Cards[0].Focused)
	assert.True(t, h.Cards[1].Focused)
	assert.Equal(t, "Quality Advocate", h.TypingText)
}

func TestComposeFooter(t *testing.T) {
	b := NewBuilder(nil)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	page := b.Compose(testDoc(), State{Visits: visits.Known(42), Now: now})

	assert.Equal(t, "Jane Doe | QA Engineer", page.Title)
	assert.Equal(t, 2026, page.Footer.Year)
	assert.Equal(t, visits.Known(42), page.Footer.Visits)
	assert.Equal(t, []string{"Testing"}, page.Footer.Services)
	assert.Nil(t, page.Activity)
	assert.NotNil(t, page.Recommendations)
}

func TestOrder(t *testing.T) {
	assert.Equal(t, []string{"home", "about", "skills", "projects", "activity", "recommendations", "contact", "footer"}, Order)
}
