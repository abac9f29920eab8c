package folio

// Recognized setting keys. Any other key is accepted and kept in
// SiteSettings.Raw.
const (
	SettingSiteName        = "siteName"
	SettingPrimaryColor    = "primaryColor"
	SettingTheme           = "portfolioTheme"
	SettingContactEmail    = "contactEmail"
	SettingContactPhone    = "contactPhone"
	SettingContactLocation = "contactLocation"
	SettingGithubURL       = "githubUrl"
	SettingLinkedinURL     = "linkedinUrl"
	SettingEmailURL        = "emailUrl"
)

// Page sections that can be hidden from the public page. Their visibility
// is stored under "section.<name>".
const (
	SectionHero       = "hero"
	SectionSkills     = "skills"
	SectionExperience = "experience"
	SectionProjects   = "projects"
	SectionContact    = "contact"
)

// Sections lists the toggleable sections in page order.
var Sections = []string{SectionHero, SectionSkills, SectionExperience, SectionProjects, SectionContact}

// SectionKey returns the settings key holding the visibility of section.
func SectionKey(section string) string {
	return "section." + section
}

const (
	DefaultSiteName     = "Portfolio"
	DefaultPrimaryColor = "#0ea5e9"
	DefaultTheme        = "modern"
)

// SiteSettings is the typed view of the settings table.
type SiteSettings struct {
	SiteName        string
	PrimaryColor    string
	Theme           string
	ContactEmail    string
	ContactPhone    string
	ContactLocation string
	GithubURL       string
	LinkedinURL     string
	EmailURL        string
	Sections        map[string]bool
	Raw             map[string]string
}

// ParseSettings applies defaults to the raw key/value pairs.
func ParseSettings(raw map[string]string) SiteSettings {
	s := SiteSettings{
		SiteName:        orDefault(raw[SettingSiteName], DefaultSiteName),
		PrimaryColor:    orDefault(raw[SettingPrimaryColor], DefaultPrimaryColor),
		Theme:           orDefault(raw[SettingTheme], DefaultTheme),
		ContactEmail:    raw[SettingContactEmail],
		ContactPhone:    raw[SettingContactPhone],
		ContactLocation: raw[SettingContactLocation],
		GithubURL:       raw[SettingGithubURL],
		LinkedinURL:     raw[SettingLinkedinURL],
		EmailURL:        raw[SettingEmailURL],
		Sections:        make(map[string]bool, len(Sections)),
		Raw:             raw,
	}
	for _, name := range Sections {
		s.Sections[name] = parseBool(raw, SectionKey(name), true)
	}
	return s
}

// Visible reports whether a page section should render.
func (s SiteSettings) Visible(section string) bool {
	v, ok := s.Sections[section]
	return !ok || v
}

func parseBool(raw map[string]string, key string, fallback bool) bool {
	v, ok := raw[key]
	if !ok {
		return fallback
	}
	return v == "true" || v == "1"
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// DefaultSettings are the rows `folio init` seeds into an empty site.
func DefaultSettings() []Setting {
	settings := []Setting{
		{Key: SettingSiteName, Value: DefaultSiteName, Description: "Site name shown in the header and page title"},
		{Key: SettingPrimaryColor, Value: DefaultPrimaryColor, Description: "Accent color, #rrggbb"},
		{Key: SettingTheme, Value: DefaultTheme, Description: "One of modern, classic, minimal, bold"},
	}
	for _, name := range Sections {
		settings = append(settings, Setting{
			Key:         SectionKey(name),
			Value:       "true",
			Description: "Show the " + name + " section",
		})
	}
	return settings
}
