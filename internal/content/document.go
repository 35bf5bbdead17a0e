package content

// Document is the whole portfolio content file. It is loaded once and never
// mutated; a reload builds a new Document.
type Document struct {
	Personal        Personal          `json:"personal" yaml:"personal"`
	Hero            Hero              `json:"hero" yaml:"hero"`
	About           About             `json:"about" yaml:"about"`
	Experience      []ExperienceEntry `json:"experience" yaml:"experience"`
	Skills          Skills            `json:"skills" yaml:"skills"`
	Projects        []Project         `json:"projects" yaml:"projects"`
	Activity        *Activity         `json:"activity,omitempty" yaml:"activity,omitempty"`
	Recommendations *Recommendations  `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Contact         Contact           `json:"contact" yaml:"contact"`
	Footer          Footer            `json:"footer" yaml:"footer"`
}

type Personal struct {
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title" yaml:"title"`
	Email       string `json:"email" yaml:"email"`
	Phone       string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location    string `json:"location" yaml:"location"`
	LinkedIn    string `json:"linkedin" yaml:"linkedin"`
	GitHub      string `json:"github,omitempty" yaml:"github,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Hero struct {
	Greeting      string `json:"greeting" yaml:"greeting"`
	TypingText    string `json:"typingText" yaml:"typingText"`
	Description   string `json:"description" yaml:"description"`
	FloatingCards []Card `json:"floatingCards" yaml:"floatingCards"`
}

// Card is a titled blurb with an icon name, used by the hero cards and the
// about highlights.
type Card struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}

type About struct {
	Title                 string `json:"title" yaml:"title"`
	Description           string `json:"description" yaml:"description"`
	AdditionalDescription string `json:"additionalDescription,omitempty" yaml:"additionalDescription,omitempty"`
	Highlights            []Card `json:"highlights" yaml:"highlights"`
	Stats                 []Stat `json:"stats" yaml:"stats"`
}

type Stat struct {
	Number string `json:"number" yaml:"number"`
	Label  string `json:"label" yaml:"label"`
}

// ExperienceEntry is one position in the professional journey.
type ExperienceEntry struct {
	Title        string   `json:"title" yaml:"title"`
	Company      string   `json:"company" yaml:"company"`
	Period       string   `json:"period" yaml:"period"`
	Location     string   `json:"location,omitempty" yaml:"location,omitempty"`
	Overview     string   `json:"overview,omitempty" yaml:"overview,omitempty"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Technologies []string `json:"technologies" yaml:"technologies"`
}

// Summary is the short text shown on the experience card.
func (e ExperienceEntry) Summary() string {
	if e.Overview != "" {
		return e.Overview
	}
	return e.Description
}

type Skills struct {
	Categories      []SkillCategory  `json:"categories" yaml:"categories"`
	Specializations []Specialization `json:"specializations" yaml:"specializations"`
	Certifications  []Certification  `json:"certifications" yaml:"certifications"`
}

type SkillCategory struct {
	Title  string  `json:"title" yaml:"title"`
	Icon   string  `json:"icon" yaml:"icon"`
	Skills []Skill `json:"skills" yaml:"skills"`
}

type Skill struct {
	Name  string `json:"name" yaml:"name"`
	Level int    `json:"level,omitempty" yaml:"level,omitempty"`
}

type Specialization struct {
	Title       string   `json:"title" yaml:"title"`
	Icon        string   `json:"icon" yaml:"icon"`
	Description string   `json:"description" yaml:"description"`
	Features    []string `json:"features" yaml:"features"`
}

type Certification struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Project is a showcased piece of work. Category drives the filter bar.
type Project struct {
	Title        string   `json:"title" yaml:"title"`
	Category     string   `json:"category" yaml:"category"`
	Description  string   `json:"description" yaml:"description"`
	Image        string   `json:"image" yaml:"image"`
	Demo         string   `json:"demo" yaml:"demo"`
	GitHub       string   `json:"github" yaml:"github"`
	Features     []string `json:"features" yaml:"features"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Icon         string   `json:"icon" yaml:"icon"`
}

type Activity struct {
	Title           string         `json:"title" yaml:"title"`
	Subtitle        string         `json:"subtitle" yaml:"subtitle"`
	LinkedInProfile string         `json:"linkedinProfile" yaml:"linkedinProfile"`
	Posts           []ActivityPost `json:"posts" yaml:"posts"`
}

type ActivityPost struct {
	Title   string `json:"title" yaml:"title"`
	Excerpt string `json:"excerpt" yaml:"excerpt"`
	Date    string `json:"date" yaml:"date"`
	Link    string `json:"link" yaml:"link"`
	Image   string `json:"image,omitempty" yaml:"image,omitempty"`
}

type Recommendations struct {
	Title    string               `json:"title" yaml:"title"`
	Subtitle string               `json:"subtitle" yaml:"subtitle"`
	Items    []RecommendationItem `json:"items" yaml:"items"`
}

// RecommendationItem is a testimonial. A zero Rating means no rating;
// fractional ratings are accepted and shown as whole stars.
type RecommendationItem struct {
	Name    string  `json:"name" yaml:"name"`
	Role    string  `json:"role" yaml:"role"`
	Company string  `json:"company,omitempty" yaml:"company,omitempty"`
	Content string  `json:"content" yaml:"content"`
	Avatar  string  `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Rating  float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
}

type Contact struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
}

type Footer struct {
	Description string   `json:"description" yaml:"description"`
	Services    []string `json:"services" yaml:"services"`
}

// normalize fills in the few fields templates rely on being non-nil.
func (d *Document) normalize() {
	for i := range d.Experience {
		if d.Experience[i].Technologies == nil {
			d.Experience[i].Technologies = []string{}
		}
	}
	for i := range d.Projects {
		if d.Projects[i].Features == nil {
			d.Projects[i].Features = []string{}
		}
		if d.Projects[i].Technologies == nil {
			d.Projects[i].Technologies = []string{}
		}
	}
}
