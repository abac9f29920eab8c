// Package theme turns the admin's theme and color choices into CSS custom
// properties for the public page.
package theme

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Preset is a named bundle of typography and colors.
type Preset struct {
	ID                   string
	Label                string
	FontFamily           string
	HeadingFontFamily    string
	BodyBackground       string
	BodyBackgroundDark   string
	TextColor            string
	TextColorDark        string
	HeadingTransform     string
	HeadingLetterSpacing string
}

// DefaultPreset is applied when the stored theme is unknown.
const DefaultPreset = "modern"

// DefaultColor is applied when the stored primary color is not a hex color.
const DefaultColor = "#0ea5e9"

var presets = map[string]Preset{
	"modern": {
		ID:                 "modern",
		Label:              "Modern",
		FontFamily:         `'Inter', 'Segoe UI', sans-serif`,
		HeadingFontFamily:  `'Poppins', 'Segoe UI', sans-serif`,
		BodyBackground:     "#f8fafc",
		BodyBackgroundDark: "#0f172a",
		TextColor:          "#0f172a",
		TextColorDark:      "#f8fafc",
		HeadingTransform:   "none",
	},
	"classic": {
		ID:                   "classic",
		Label:                "Classic",
		FontFamily:           `'Georgia', 'Times New Roman', serif`,
		HeadingFontFamily:    `'Playfair Display', 'Georgia', serif`,
		BodyBackground:       "#fffdf5",
		BodyBackgroundDark:   "#1f2937",
		TextColor:            "#1f2937",
		TextColorDark:        "#f3f4f6",
		HeadingTransform:     "none",
		HeadingLetterSpacing: "0.04em",
	},
	"minimal": {
		ID:                   "minimal",
		Label:                "Minimal",
		FontFamily:           `'Helvetica Neue', Helvetica, Arial, sans-serif`,
		HeadingFontFamily:    `'Helvetica Neue', Helvetica, Arial, sans-serif`,
		BodyBackground:       "#ffffff",
		BodyBackgroundDark:   "#111827",
		TextColor:            "#111827",
		TextColorDark:        "#f9fafb",
		HeadingTransform:     "uppercase",
		HeadingLetterSpacing: "0.08em",
	},
	"bold": {
		ID:                 "bold",
		Label:              "Bold",
		FontFamily:         `'Montserrat', 'Segoe UI', sans-serif`,
		HeadingFontFamily:  `'Montserrat', 'Segoe UI', sans-serif`,
		BodyBackground:     "#edf2ff",
		BodyBackgroundDark: "#0b1120",
		TextColor:          "#0b1120",
		TextColorDark:      "#e0e7ff",
		HeadingTransform:   "none",
	},
}

// Lookup returns the preset with the given id, or the default preset.
func Lookup(id string) Preset {
	if p, ok := presets[id]; ok {
		return p
	}
	return presets[DefaultPreset]
}

// Presets returns all presets ordered by id.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RGB is a parsed 8-bit color.
type RGB struct{ R, G, B int }

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, bool) {
	m := hexColor.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return RGB{}, false
	}
	var c [3]int
	for i := range c {
		v, _ := strconv.ParseUint(m[i+1], 16, 8)
		c[i] = int(v)
	}
	return RGB{c[0], c[1], c[2]}, true
}

// Shift adds delta to every channel, clamped to 0..255.
func (c RGB) Shift(delta int) RGB {
	return RGB{clamp(c.R + delta), clamp(c.G + delta), clamp(c.B + delta)}
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Alpha formats the color with the given opacity.
func (c RGB) Alpha(a float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(a, 'f', -1, 64))
}

func clamp(v int) int {
	return min(255, max(0, v))
}

// Var is one CSS custom property.
type Var struct {
	Name  string
	Value string
}

// ColorVars derives the primary color palette.
func ColorVars(color string) []Var {
	rgb, ok := ParseHex(color)
	if !ok {
		color = DefaultColor
		rgb, _ = ParseHex(color)
	}
	return []Var{
		{"--primary-color", strings.ToLower(color)},
		{"--primary-color-light", rgb.Shift(40).String()},
		{"--primary-color-dark", rgb.Shift(-40).String()},
		{"--primary-color-50", rgb.Alpha(0.1)},
		{"--primary-color-100", rgb.Alpha(0.2)},
		{"--primary-color-200", rgb.Alpha(0.3)},
	}
}

// PresetVars exposes the preset's values as custom properties.
func PresetVars(p Preset) []Var {
	vars := []Var{
		{"--font-body", p.FontFamily},
		{"--font-heading", p.HeadingFontFamily},
		{"--body-bg", p.BodyBackground},
		{"--body-bg-dark", p.BodyBackgroundDark},
		{"--text-color", p.TextColor},
		{"--text-color-dark", p.TextColorDark},
		{"--heading-transform", orNone(p.HeadingTransform)},
	}
	if p.HeadingLetterSpacing != "" {
		vars = append(vars, Var{"--heading-letter-spacing", p.HeadingLetterSpacing})
	} else {
		vars = append(vars, Var{"--heading-letter-spacing", "normal"})
	}
	return vars
}

// RootCSS renders the ":root" rule for a theme id and primary color.
func RootCSS(themeID, color string) string {
	var b strings.Builder
	b.WriteString(":root{")
	for _, v := range append(PresetVars(Lookup(themeID)), ColorVars(color)...) {
		b.WriteString(v.Name)
		b.WriteByte(':')
		b.WriteString(v.Value)
		b.WriteByte(';')
	}
	b.WriteString("}")
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
