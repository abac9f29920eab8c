package i18n

import "testing"

func TestTranslatorLookup(t *testing.T) {
	b := MustLoad()
	tests := []struct {
		locale Locale
		key    string
		want   string
	}{
		{EN, "nav.home", "Home"},
		{FR, "nav.home", "Accueil"},
		{AR, "nav.projects", "المشاريع"},
		{EN, "nav.missing", "nav.missing"},
		{EN, "nav", "nav"},
		{EN, "nav.home.deeper", "nav.home.deeper"},
	}
	for _, tt := range tests {
		got := b.For(tt.locale).T(tt.key)
		if got != tt.want {
			t.Errorf("For(%s).T(%q) = %q, want %q", tt.locale, tt.key, got, tt.want)
		}
	}
}

func TestDictionariesShareKeys(t *testing.T) {
	b := MustLoad()
	var walk func(prefix string, m map[string]any, fn func(string))
	walk = func(prefix string, m map[string]any, fn func(string)) {
		for k, v := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if sub, ok := v.(map[string]any); ok {
				walk(key, sub, fn)
				continue
			}
			fn(key)
		}
	}
	walk("", b.dicts[EN], func(key string) {
		for _, l := range []Locale{FR, AR} {
			if got := b.For(l).T(key); got == key {
				t.Errorf("locale %s is missing key %q", l, key)
			}
		}
	})
}

func TestDir(t *testing.T) {
	b := MustLoad()
	if got := b.For(AR).Dir(); got != "rtl" {
		t.Errorf("AR Dir() = %q, want rtl", got)
	}
	if got := b.For(FR).Dir(); got != "ltr" {
		t.Errorf("FR Dir() = %q, want ltr", got)
	}
}

func TestNegotiate(t *testing.T) {
	b := MustLoad()
	tests := []struct {
		name                  string
		query, cookie, accept string
		want                  Locale
	}{
		{"query wins", "fr", "ar", "en-US", FR},
		{"cookie before header", "", "ar", "fr-FR,fr;q=0.9", AR},
		{"header", "", "", "fr-CA,fr;q=0.9,en;q=0.5", FR},
		{"unknown query ignored", "de", "", "ar-EG", AR},
		{"fallback", "", "", "ja-JP", EN},
		{"empty", "", "", "", EN},
	}
	for _, tt := range tests {
		if got := b.Negotiate(tt.query, tt.cookie, tt.accept); got != tt.want {
			t.Errorf("%s: Negotiate = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestForUnknownLocaleFallsBack(t *testing.T) {
	tr := MustLoad().For(Locale("xx"))
	if tr.Locale() != Default {
		t.Fatalf("Locale() = %q, want %q", tr.Locale(), Default)
	}
	if got := tr.T("nav.home"); got != "Home" {
		t.Errorf("T(nav.home) = %q, want Home", got)
	}
}
