package folio

import (
	"encoding/json"
	"strings"
	"testing"

	"gorm.io/datatypes"
)

func TestAboutViewImage(t *testing.T) {
	tests := []struct {
		name  string
		about About
		want  any
	}{
		{"binary wins", About{ImageData: []byte("img"), ImageMime: "image/png", ImageURL: "https://x/y.png"}, "data:image/png;base64,aW1n"},
		{"url", About{ImageURL: "https://x/y.png"}, "https://x/y.png"},
		{"none", About{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.about.View())
			if err != nil {
				t.Fatal(err)
			}
			var out map[string]any
			if err := json.Unmarshal(b, &out); err != nil {
				t.Fatal(err)
			}
			if out["image"] != tt.want {
				t.Errorf("image = %v, want %v", out["image"], tt.want)
			}
			if _, ok := out["imageData"]; ok {
				t.Error("imageData must not be exposed")
			}
			if _, ok := out["imageMime"]; ok {
				t.Error("imageMime must not be exposed")
			}
		})
	}
}

func TestAboutViewKeepsFields(t *testing.T) {
	a := About{Model: Model{ID: 7}, Title: "Engineer", Stats: datatypes.NewJSONType(AboutStats{Clients: 3, ShowClients: true})}
	b, err := json.Marshal(a.View())
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{`"id":7`, `"title":"Engineer"`, `"clients":3`, `"showClients":true`, `"image":null`} {
		if !strings.Contains(s, want) {
			t.Errorf("%s missing %s", s, want)
		}
	}
}

func TestSkillValidate(t *testing.T) {
	tests := []struct {
		skill Skill
		ok    bool
	}{
		{Skill{Name: "Go", Level: 0, Category: CategoryBackend}, true},
		{Skill{Name: "Go", Level: 100, Category: CategoryTools}, true},
		{Skill{Name: "Go", Level: 101, Category: CategoryBackend}, false},
		{Skill{Name: "Go", Level: -1, Category: CategoryBackend}, false},
		{Skill{Name: " ", Level: 50, Category: CategoryBackend}, false},
		{Skill{Name: "Go", Level: 50, Category: "Databases"}, false},
	}
	for _, tt := range tests {
		err := tt.skill.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("Validate(%+v) = %v, want ok=%v", tt.skill, err, tt.ok)
		}
		if err != nil && asError(err).Status() != 400 {
			t.Errorf("validation error status = %d", asError(err).Status())
		}
	}
}

func TestExperienceValidateFiltersDescription(t *testing.T) {
	e := Experience{Title: "Dev", Company: "Acme", Period: "2020", Description: datatypes.JSONSlice[string]{"a", " ", "", "b"}}
	if err := e.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(e.Description) != 2 {
		t.Errorf("description = %v", e.Description)
	}

	empty := Experience{Title: "Dev", Company: "Acme", Period: "2020"}
	if err := empty.Validate(); err != nil {
		t.Fatal(err)
	}
	b, _ := json.Marshal(empty.Description)
	if string(b) != "[]" {
		t.Errorf("empty description marshals as %s, want []", b)
	}
}

func TestProjectAnchor(t *testing.T) {
	p := Project{Title: "Café Finder 2.0"}
	if got := p.Anchor(); got != "project-cafe-finder-2-0" {
		t.Errorf("Anchor() = %q", got)
	}
}
