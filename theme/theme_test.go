package theme

import (
	"strings"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"#0ea5e9", RGB{14, 165, 233}, true},
		{"FFFFFF", RGB{255, 255, 255}, true},
		{"#fff", RGB{}, false},
		{"red", RGB{}, false},
		{"", RGB{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseHex(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseHex(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestColorVarsClamp(t *testing.T) {
	vars := ColorVars("#f0100a")
	want := map[string]string{
		"--primary-color":       "#f0100a",
		"--primary-color-light": "rgb(255, 56, 50)",
		"--primary-color-dark":  "rgb(200, 0, 0)",
		"--primary-color-50":    "rgba(240, 16, 10, 0.1)",
		"--primary-color-200":   "rgba(240, 16, 10, 0.3)",
	}
	got := make(map[string]string, len(vars))
	for _, v := range vars {
		got[v.Name] = v.Value
	}
	for name, val := range want {
		if got[name] != val {
			t.Errorf("%s = %q, want %q", name, got[name], val)
		}
	}
}

func TestColorVarsInvalidFallsBack(t *testing.T) {
	vars := ColorVars("javascript:alert(1)")
	if vars[0].Value != DefaultColor {
		t.Fatalf("--primary-color = %q, want default %q", vars[0].Value, DefaultColor)
	}
}

func TestLookupUnknownPreset(t *testing.T) {
	if got := Lookup("neon").ID; got != DefaultPreset {
		t.Errorf("Lookup(neon).ID = %q, want %q", got, DefaultPreset)
	}
	if got := Lookup("minimal").HeadingTransform; got != "uppercase" {
		t.Errorf("minimal heading transform = %q, want uppercase", got)
	}
}

func TestRootCSS(t *testing.T) {
	css := RootCSS("classic", "#123456")
	for _, want := range []string{
		":root{",
		"--font-heading:'Playfair Display', 'Georgia', serif;",
		"--heading-letter-spacing:0.04em;",
		"--primary-color:#123456;",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("RootCSS missing %q in %q", want, css)
		}
	}
}

func TestPresetsSorted(t *testing.T) {
	ps := Presets()
	if len(ps) != 4 {
		t.Fatalf("Presets() returned %d presets, want 4", len(ps))
	}
	for i := 1; i < len(ps); i++ {
		if ps[i-1].ID > ps[i].ID {
			t.Fatalf("Presets() not sorted: %q before %q", ps[i-1].ID, ps[i].ID)
		}
	}
}
