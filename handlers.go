package folio

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/i18n"
	"github.com/eringen/folio/theme"
)

const localeCookie = "locale"

// view calls a template when the site provides one. A nil component makes
// RenderStatus fall back to plain text.
func view[P any](fn func(P) templ.Component, page P) templ.Component {
	if fn == nil {
		return nil
	}
	return fn(page)
}

// translator negotiates the visitor's locale. An explicit ?lang= choice is
// remembered in a cookie.
func (a *App) translator(c echo.Context) *i18n.Translator {
	query := c.QueryParam("lang")
	var cookie string
	if ck, err := c.Cookie(localeCookie); err == nil {
		cookie = ck.Value
	}
	l := a.I18n.Negotiate(query, cookie, c.Request().Header.Get("Accept-Language"))
	if _, ok := i18n.Parse(query); ok && query != cookie {
		c.SetCookie(&http.Cookie{
			Name:     localeCookie,
			Value:    string(l),
			Path:     "/",
			MaxAge:   365 * 24 * 60 * 60,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   a.Config.CookieSecure,
		})
	}
	return a.I18n.For(l)
}

func (a *App) handleHome(c echo.Context) error {
	snap, err := a.Cache.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}
	settings := ParseSettings(snap.Settings)

	meta := PageMeta{
		Title:       settings.SiteName,
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL),
	}
	if snap.About != nil {
		meta.Description = snap.About.Title
		meta.Image = snap.About.ImageURL
	}

	return Render(c, view(a.Views.Home, HomePage{
		Config:      a.Config,
		Meta:        meta,
		T:           a.translator(c),
		Locales:     i18n.Supported,
		Settings:    settings,
		About:       snap.About,
		Skills:      GroupSkills(snap.Skills),
		Experiences: snap.Experiences,
		Projects:    snap.Projects,
		ThemeCSS:    theme.RootCSS(settings.Theme, settings.PrimaryColor),
		JsonLD:      PersonJsonLD(snap.About, settings, a.Config),
		Year:        time.Now().Year(),
	}))
}

func (a *App) handleSitemap(c echo.Context) error {
	snap, err := a.Cache.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, snap)
}

func (a *App) handleFeed(c echo.Context) error {
	snap, err := a.Cache.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, snap)
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\nSitemap: " + strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) handleHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := a.Store.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "health check failed", slog.Any("error", err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleAsset(name, contentType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := staticAssets.ReadFile("static/" + name)
		if err != nil {
			return echo.ErrNotFound
		}
		return c.Blob(http.StatusOK, contentType, b)
	}
}

// errorResponse maps err to a status and a message that is safe to show.
// Every 5xx carries the same fixed message.
// A folio *Error wins over any echo.HTTPError it wraps.
func errorResponse(err error) (int, string) {
	var fe *Error
	if errors.As(err, &fe) {
		if fe.Status() >= 500 {
			return fe.Status(), messageInternal
		}
		return fe.Status(), fe.Message
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= 500 {
			return he.Code, messageInternal
		}
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		return he.Code, msg
	}
	e := asError(err)
	if e.Status() >= 500 {
		return e.Status(), messageInternal
	}
	return e.Status(), e.Message
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := errorResponse(err)
	if code >= 500 {
		slog.ErrorContext(c.Request().Context(), "server error",
			slog.Any("error", err),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		)
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, map[string]string{"message": msg})
		return
	}

	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, view(a.Views.NotFound, a.errorPage(c)))
	case code >= 500:
		_ = RenderStatus(c, code, view(a.Views.ServerError, a.errorPage(c)))
	default:
		_ = c.String(code, msg)
	}
}

func (a *App) errorPage(c echo.Context) ErrorPage {
	p := ErrorPage{Config: a.Config}
	if a.I18n != nil {
		p.T = a.translator(c)
	}
	return p
}
