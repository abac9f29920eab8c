package folio

import (
	"encoding/xml"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category,omitempty"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
}

// renderRSS publishes the projects, newest first, each linking to its
// anchor on the public page.
func (a *App) renderRSS(c echo.Context, snap *Snapshot) error {
	home := BuildURL(a.Config.URL)
	projects := append([]Project(nil), snap.Projects...)
	sortNewestFirst(projects)

	items := make([]rssItem, 0, len(projects))
	for _, p := range projects {
		link := home + "#" + p.Anchor()
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Description,
			Categories:  p.Technologies,
			PubDate:     p.CreatedAt.UTC().Format(time.RFC1123Z),
			GUID:        link,
		})
	}

	settings := ParseSettings(snap.Settings)
	description := a.Config.Description
	if snap.About != nil && strings.TrimSpace(snap.About.Title) != "" {
		description = snap.About.Title
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       settings.SiteName,
			Link:        home,
			Description: description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

func sortNewestFirst(projects []Project) {
	slices.SortStableFunc(projects, func(x, y Project) int {
		return y.CreatedAt.Compare(x.CreatedAt)
	})
}
