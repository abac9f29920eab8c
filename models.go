package folio

import (
	"encoding/base64"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Model is the identity shared by every stored row.
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Model) model() *Model { return m }

// Roles a User can hold. Only admins may change content.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a dashboard account. Password holds a bcrypt hash.
type User struct {
	Model
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Name     string `json:"name,omitempty"`
	Role     string `gorm:"size:16;not null;default:admin" json:"role"`
}

// AboutStats are the counters shown next to the profile, each with its own
// visibility flag.
type AboutStats struct {
	Projects       int  `json:"projects"`
	Experience     int  `json:"experience"`
	Clients        int  `json:"clients"`
	ShowProjects   bool `json:"showProjects"`
	ShowExperience bool `json:"showExperience"`
	ShowClients    bool `json:"showClients"`
}

// About is the profile shown in the hero and about sections. The newest row wins.
type About struct {
	Model
	Name        string                         `json:"name,omitempty"`
	JobTitle    string                         `json:"jobTitle,omitempty"`
	Title       string                         `gorm:"not null" json:"title"`
	Description string                         `gorm:"type:text;not null" json:"description"`
	ImageURL    string                         `json:"imageUrl,omitempty"`
	ImageData   []byte                         `json:"imageData,omitempty"`
	ImageMime   string                         `gorm:"size:64" json:"imageMime,omitempty"`
	Stats       datatypes.JSONType[AboutStats] `json:"stats"`
}

// ImageSrc returns the single display source for the profile image: an
// embedded data URL when binary data is stored, otherwise the external URL.
// It returns nil when the profile has no image.
func (a About) ImageSrc() *string {
	if len(a.ImageData) > 0 {
		mime := a.ImageMime
		if mime == "" {
			mime = "application/octet-stream"
		}
		src := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(a.ImageData)
		return &src
	}
	if a.ImageURL != "" {
		src := a.ImageURL
		return &src
	}
	return nil
}

// AboutView is the API shape of an About: the raw image columns are replaced
// by the derived image field.
type AboutView struct {
	*About
	ImageData *struct{} `json:"imageData,omitempty"`
	ImageMime *struct{} `json:"imageMime,omitempty"`
	Image     *string   `json:"image"`
}

// View returns the client-facing representation of a.
func (a *About) View() AboutView {
	return AboutView{About: a, Image: a.ImageSrc()}
}

func (a *About) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return ErrInvalid("title is required")
	}
	if strings.TrimSpace(a.Description) == "" {
		return ErrInvalid("description is required")
	}
	return nil
}

// Skill categories accepted by the dashboard.
const (
	CategoryFrontend = "Frontend"
	CategoryBackend  = "Backend"
	CategoryTools    = "Outils & Technologies"
)

// SkillCategories lists the categories in display order.
var SkillCategories = []string{CategoryFrontend, CategoryBackend, CategoryTools}

// Skill is a technology with a proficiency level between 0 and 100.
type Skill struct {
	Model
	Name     string `gorm:"not null" json:"name"`
	Level    int    `gorm:"not null" json:"level"`
	Category string `gorm:"size:64;not null" json:"category"`
	Icon     string `json:"icon,omitempty"`
	Order    int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (s *Skill) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrInvalid("name is required")
	}
	if s.Level < 0 || s.Level > 100 {
		return ErrInvalid("level must be between 0 and 100")
	}
	for _, c := range SkillCategories {
		if s.Category == c {
			return nil
		}
	}
	return ErrInvalid("category must be one of: " + strings.Join(SkillCategories, ", "))
}

// Experience is one entry of the career timeline.
type Experience struct {
	Model
	Title       string                      `gorm:"not null" json:"title"`
	Company     string                      `gorm:"not null" json:"company"`
	Period      string                      `gorm:"not null" json:"period"`
	Description datatypes.JSONSlice[string] `json:"description"`
	Order       int                         `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (e *Experience) Validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return ErrInvalid("title is required")
	case strings.TrimSpace(e.Company) == "":
		return ErrInvalid("company is required")
	case strings.TrimSpace(e.Period) == "":
		return ErrInvalid("period is required")
	}
	e.Description = datatypes.JSONSlice[string](FilterEmpty(e.Description))
	if e.Description == nil {
		e.Description = datatypes.JSONSlice[string]{}
	}
	return nil
}

// Project is a showcased piece of work.
type Project struct {
	Model
	Title        string                      `gorm:"not null" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Technologies datatypes.JSONSlice[string] `json:"technologies"`
	GithubURL    string                      `json:"githubUrl,omitempty"`
	DemoURL      string                      `json:"demoUrl,omitempty"`
	ImageURL     string                      `json:"imageUrl,omitempty"`
	Order        int                         `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrInvalid("title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrInvalid("description is required")
	}
	p.Technologies = datatypes.JSONSlice[string](FilterEmpty(p.Technologies))
	if p.Technologies == nil {
		p.Technologies = datatypes.JSONSlice[string]{}
	}
	return nil
}

// Anchor is the fragment identifier of the project on the public page.
func (p Project) Anchor() string {
	return "project-" + Slugify(p.Title)
}

// Setting is one free-form key/value pair.
type Setting struct {
	Model
	Key         string `gorm:"column:setting_key;uniqueIndex;size:191;not null" json:"key"`
	Value       string `gorm:"type:text;not null" json:"value"`
	Description string `json:"description,omitempty"`
}
