package folio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/i18n"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// lastModified is the newest update across the public content.
func (s *Snapshot) lastModified() time.Time {
	var latest time.Time
	bump := func(m Model) {
		if m.UpdatedAt.After(latest) {
			latest = m.UpdatedAt
		}
	}
	if s.About != nil {
		bump(s.About.Model)
	}
	for _, r := range s.Skills {
		bump(r.Model)
	}
	for _, r := range s.Experiences {
		bump(r.Model)
	}
	for _, r := range s.Projects {
		bump(r.Model)
	}
	return latest
}

// renderSitemap lists the public page once per locale.
func (a *App) renderSitemap(c echo.Context, snap *Snapshot) error {
	home := BuildURL(a.Config.URL)
	var lastMod string
	if t := snap.lastModified(); !t.IsZero() {
		lastMod = t.UTC().Format("2006-01-02")
	}
	urls := make([]sitemapURL, 0, len(i18n.Supported))
	for _, l := range i18n.Supported {
		loc := home
		if l != i18n.Default {
			loc += "?lang=" + string(l)
		}
		urls = append(urls, sitemapURL{Loc: loc, LastMod: lastMod})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
