package folio

import "testing"

func TestParseSettingsDefaults(t *testing.T) {
	s := ParseSettings(map[string]string{})
	if s.SiteName != DefaultSiteName || s.PrimaryColor != DefaultPrimaryColor || s.Theme != DefaultTheme {
		t.Errorf("defaults not applied: %+v", s)
	}
	for _, name := range Sections {
		if !s.Visible(name) {
			t.Errorf("section %q should be visible by default", name)
		}
	}
}

func TestParseSettingsSections(t *testing.T) {
	s := ParseSettings(map[string]string{
		"section.skills":   "false",
		"section.projects": "1",
		"section.contact":  "",
		"siteName":         "Ada",
		"customKey":        "kept",
	})
	tests := map[string]bool{
		SectionHero:     true,
		SectionSkills:   false,
		SectionProjects: true,
		SectionContact:  false,
	}
	for section, want := range tests {
		if got := s.Visible(section); got != want {
			t.Errorf("Visible(%q) = %v, want %v", section, got, want)
		}
	}
	if s.SiteName != "Ada" || s.Raw["customKey"] != "kept" {
		t.Errorf("settings = %+v", s)
	}
	if !s.Visible("unknown") {
		t.Error("unknown sections should be visible")
	}
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	keys := make(map[string]string, len(settings))
	for _, st := range settings {
		keys[st.Key] = st.Value
	}
	if keys[SettingTheme] != DefaultTheme || keys[SectionKey(SectionHero)] != "true" {
		t.Errorf("DefaultSettings = %v", keys)
	}
	if len(settings) != 3+len(Sections) {
		t.Errorf("len = %d", len(settings))
	}
}
