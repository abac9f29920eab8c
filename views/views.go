// Package views holds the site's page templates. They are html/template
// files embedded in the binary and exposed to folio as templ components.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/theme"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"markdown": func(s string) template.HTML {
		// goldmark drops raw HTML and unsafe links from the source.
		return template.HTML(markdown.HTML(s))
	},
	"css":     func(s string) template.CSS { return template.CSS(s) },
	"jsonld":  func(s string) template.JS { return template.JS(s) },
	"rootCSS": theme.RootCSS,
	"imgsrc":  imgSrc,
	"tel":     telURL,
	"join":    strings.Join,
	"lines":   func(items []string) string { return strings.Join(items, "\n") },
	"pair":    func(a, b any) Pair { return Pair{a, b} },

	"presets":       theme.Presets,
	"defaultPreset": func() string { return theme.DefaultPreset },

	"editors":       func() []string { return folio.Editors },
	"sectionKey":    folio.SectionKey,
	"settingFields": func() []string { return settingFields },
	"settingMap":    settingMap,
	"newAbout":      func() *folio.About { return &folio.About{} },
	"newSkill":      func() folio.Skill { return folio.Skill{Category: folio.CategoryFrontend} },
	"newExperience": func() folio.Experience { return folio.Experience{} },
	"newProject":    func() folio.Project { return folio.Project{} },
}

// Pair passes two values to a sub-template.
type Pair struct {
	First, Second any
}

var settingFields = []string{
	folio.SettingSiteName,
	folio.SettingPrimaryColor,
	folio.SettingTheme,
	folio.SettingContactEmail,
	folio.SettingContactPhone,
	folio.SettingContactLocation,
	folio.SettingGithubURL,
	folio.SettingLinkedinURL,
	folio.SettingEmailURL,
}

// Templates is the parsed set of pages.
type Templates struct {
	home, login, dashboard, editor, notFound, serverError *template.Template
}

// Parse reads the embedded templates. Each page is parsed into its own copy
// of the layout so pages can define the same blocks.
func Parse() (*Templates, error) {
	base, err := template.New("layout").Funcs(funcs).ParseFS(files, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	page := func(name string) (*template.Template, error) {
		set, err := template.Must(base.Clone()).ParseFS(files, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		return set.Lookup(name), nil
	}

	var t Templates
	for _, p := range []struct {
		dst  **template.Template
		name string
	}{
		{&t.home, "home.html"},
		{&t.login, "login.html"},
		{&t.dashboard, "dashboard.html"},
		{&t.editor, "editor.html"},
		{&t.notFound, "notfound.html"},
		{&t.serverError, "error.html"},
	} {
		if *p.dst, err = page(p.name); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// Funcs returns the view functions folio renders pages with.
func Funcs() folio.ViewFuncs {
	t, err := Parse()
	if err != nil {
		panic(err)
	}
	return t.Funcs()
}

// Funcs adapts the parsed templates to folio.ViewFuncs.
func (t *Templates) Funcs() folio.ViewFuncs {
	return folio.ViewFuncs{
		Home:           func(p folio.HomePage) templ.Component { return templ.FromGoHTML(t.home, p) },
		AdminLogin:     func(p folio.LoginPage) templ.Component { return templ.FromGoHTML(t.login, p) },
		AdminDashboard: func(p folio.AdminPage) templ.Component { return templ.FromGoHTML(t.dashboard, p) },
		AdminEditor:    func(p folio.AdminPage) templ.Component { return templ.FromGoHTML(t.editor, p) },
		NotFound:       func(p folio.ErrorPage) templ.Component { return templ.FromGoHTML(t.notFound, p) },
		ServerError:    func(p folio.ErrorPage) templ.Component { return templ.FromGoHTML(t.serverError, p) },
	}
}

// imgSrc trusts image data URLs built by folio and http(s) URLs; anything
// else is dropped.
func imgSrc(src *string) template.URL {
	if src == nil {
		return ""
	}
	s := *src
	switch {
	case strings.HasPrefix(s, "data:image/"),
		strings.HasPrefix(s, "https://"),
		strings.HasPrefix(s, "http://"),
		strings.HasPrefix(s, "/"):
		return template.URL(s)
	}
	return ""
}

func telURL(phone string) template.URL {
	var b strings.Builder
	for _, r := range phone {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return template.URL("tel:" + b.String())
}

func settingMap(settings []folio.Setting) map[string]string {
	m := make(map[string]string, len(settings))
	for _, s := range settings {
		m[s.Key] = s.Value
	}
	return m
}
