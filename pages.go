package folio

import (
	"github.com/eringen/folio/i18n"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	Image       string // og:image, external URLs only
}

// SkillGroup is one category of the skills section.
type SkillGroup struct {
	Category string
	Skills   []Skill
}

// HomePage is everything the public page template needs.
type HomePage struct {
	Config      SiteConfig
	Meta        PageMeta
	T           *i18n.Translator
	Locales     []i18n.Locale
	Settings    SiteSettings
	About       *About
	Skills      []SkillGroup
	Experiences []Experience
	Projects    []Project
	ThemeCSS    string
	JsonLD      string
	Year        int
}

// LoginPage renders the admin sign-in form.
type LoginPage struct {
	Config    SiteConfig
	T         *i18n.Translator
	CSRFToken string
	Email     string
	ShowError bool
	Limited   bool
}

// AdminPage renders the dashboard and the per-section editors. Section is
// empty on the dashboard.
type AdminPage struct {
	Config      SiteConfig
	T           *i18n.Translator
	CSRFToken   string
	Section     string
	Counts      map[string]int64
	About       *About
	Skills      []Skill
	Experiences []Experience
	Projects    []Project
	Settings    []Setting
	Categories  []string
	Sections    []string
}

// ErrorPage renders 404 and 5xx responses for browsers.
type ErrorPage struct {
	Config SiteConfig
	T      *i18n.Translator
}

// Admin editor sections, in navigation order.
const (
	EditorAbout       = "about"
	EditorSkills      = "skills"
	EditorExperiences = "experiences"
	EditorProjects    = "projects"
	EditorSettings    = "settings"
)

// Editors lists the admin editor sections.
var Editors = []string{EditorAbout, EditorSkills, EditorExperiences, EditorProjects, EditorSettings}

// GroupSkills splits skills, already ordered by category, into groups in
// SkillCategories order. Empty categories are left out.
func GroupSkills(skills []Skill) []SkillGroup {
	byCategory := make(map[string][]Skill, len(SkillCategories))
	for _, s := range skills {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}
	var groups []SkillGroup
	for _, c := range SkillCategories {
		if len(byCategory[c]) > 0 {
			groups = append(groups, SkillGroup{Category: c, Skills: byCategory[c]})
		}
	}
	return groups
}
