// Package i18n serves the site's interface strings in English, French and
// Arabic from dictionaries embedded in the binary.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

// Locale identifies a supported language.
type Locale string

const (
	EN Locale = "en"
	FR Locale = "fr"
	AR Locale = "ar"
)

// Default is used when nothing better can be negotiated.
const Default = EN

// Supported lists the locales in switcher order.
var Supported = []Locale{EN, FR, AR}

var matcher = language.NewMatcher([]language.Tag{language.English, language.French, language.Arabic})

// Label is the locale's name in its own language.
func (l Locale) Label() string {
	switch l {
	case FR:
		return "Français"
	case AR:
		return "العربية"
	default:
		return "English"
	}
}

// Parse returns the supported locale named by s.
func Parse(s string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	for _, sup := range Supported {
		if l == sup {
			return l, true
		}
	}
	return "", false
}

// Bundle holds the loaded dictionaries.
type Bundle struct {
	dicts map[Locale]map[string]any
}

// Load reads the embedded dictionaries.
func Load() (*Bundle, error) {
	b := &Bundle{dicts: make(map[Locale]map[string]any, len(Supported))}
	for _, l := range Supported {
		raw, err := locales.ReadFile("locales/" + string(l) + ".json")
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", l, err)
		}
		var dict map[string]any
		if err := json.Unmarshal(raw, &dict); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", l, err)
		}
		b.dicts[l] = dict
	}
	return b, nil
}

// MustLoad is Load for package-level initialization.
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// Negotiate picks a locale from an explicit choice (query parameter), a
// remembered choice (cookie), then the Accept-Language header.
func (b *Bundle) Negotiate(query, cookie, acceptLanguage string) Locale {
	if l, ok := Parse(query); ok {
		return l
	}
	if l, ok := Parse(cookie); ok {
		return l
	}
	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return Supported[idx]
			}
		}
	}
	return Default
}

// For returns a Translator for l, falling back to the default locale.
func (b *Bundle) For(l Locale) *Translator {
	dict, ok := b.dicts[l]
	if !ok {
		l, dict = Default, b.dicts[Default]
	}
	return &Translator{locale: l, dict: dict}
}

// Translator resolves dotted keys such as "nav.home" for one locale.
type Translator struct {
	locale Locale
	dict   map[string]any
}

// T returns the string at key, or key itself when it is missing or does
// not name a string.
func (t *Translator) T(key string) string {
	var cur any = t.dict
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return key
		}
		if cur, ok = m[part]; !ok {
			return key
		}
	}
	if s, ok := cur.(string); ok {
		return s
	}
	return key
}

// Locale returns the translator's locale.
func (t *Translator) Locale() Locale { return t.locale }

// Dir is the text direction for the locale's script.
func (t *Translator) Dir() string {
	if t.locale == AR {
		return "rtl"
	}
	return "ltr"
}
