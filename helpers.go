package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/gosimple/slug"
)

// Slugify converts a title to a URL-safe slug, transliterating accents.
func Slugify(s string) string {
	return slug.Make(strings.TrimSpace(s))
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJsonLD(data)
}

// PersonJsonLD describes the profile owner. Binary images are not embedded.
func PersonJsonLD(about *About, settings SiteSettings, cfg SiteConfig) string {
	if about == nil {
		return WebsiteJsonLD(cfg)
	}
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     about.Name,
		"jobTitle": about.JobTitle,
		"url":      BuildURL(cfg.URL),
	}
	if about.ImageURL != "" {
		data["image"] = about.ImageURL
	}
	if settings.ContactEmail != "" {
		data["email"] = settings.ContactEmail
	}
	if same := FilterEmpty([]string{settings.GithubURL, settings.LinkedinURL}); len(same) > 0 {
		data["sameAs"] = same
	}
	return marshalJsonLD(data)
}

func marshalJsonLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
