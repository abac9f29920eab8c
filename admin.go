package folio

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleLoginPage(c echo.Context) error {
	if IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, view(a.Views.AdminLogin, a.loginPage(c)))
}

func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	page := a.loginPage(c)
	page.Email = strings.TrimSpace(c.FormValue("email"))

	if !a.loginLimiter.Check(ip) {
		loginAttempts.WithLabelValues("form", "limited").Inc()
		page.Limited = true
		return RenderStatus(c, http.StatusTooManyRequests, view(a.Views.AdminLogin, page))
	}

	user, err := a.Store.Authenticate(c.Request().Context(), page.Email, c.FormValue("password"))
	if errors.Is(err, errBadCredentials) {
		a.loginLimiter.Record(ip)
		loginAttempts.WithLabelValues("form", "failure").Inc()
		page.ShowError = true
		return RenderStatus(c, http.StatusUnauthorized, view(a.Views.AdminLogin, page))
	}
	if err != nil {
		return err
	}

	a.loginLimiter.Reset(ip)
	loginAttempts.WithLabelValues("form", "success").Inc()
	if err := setAdminSession(c, user); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func handleLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/login/")
}

func (a *App) handleDashboard(c echo.Context) error {
	counts, err := a.Store.Counts(c.Request().Context())
	if err != nil {
		return err
	}
	page := a.adminPage(c, "")
	page.Counts = counts
	return Render(c, view(a.Views.AdminDashboard, page))
}

// handleEditor renders the editor of one content section. Editors read
// from the store, not the public cache, so they always show the latest rows.
func (a *App) handleEditor(c echo.Context) error {
	section := c.Param("section")
	if !slices.Contains(Editors, section) {
		return echo.ErrNotFound
	}
	ctx := c.Request().Context()
	page := a.adminPage(c, section)

	var err error
	switch section {
	case EditorAbout:
		page.About, err = a.Store.LatestAbout(ctx)
		if errors.Is(err, ErrNotFound) {
			err = nil
		}
	case EditorSkills:
		page.Skills, err = a.Store.ListSkills(ctx)
	case EditorExperiences:
		page.Experiences, err = a.Store.ListExperiences(ctx)
	case EditorProjects:
		page.Projects, err = a.Store.ListProjects(ctx)
	case EditorSettings:
		page.Settings, err = a.Store.ListSettings(ctx)
	}
	if err != nil {
		return err
	}
	return Render(c, view(a.Views.AdminEditor, page))
}

func (a *App) loginPage(c echo.Context) LoginPage {
	return LoginPage{
		Config:    a.Config,
		T:         a.translator(c),
		CSRFToken: CsrfToken(c),
	}
}

func (a *App) adminPage(c echo.Context, section string) AdminPage {
	return AdminPage{
		Config:     a.Config,
		T:          a.translator(c),
		CSRFToken:  CsrfToken(c),
		Section:    section,
		Categories: SkillCategories,
		Sections:   Sections,
	}
}
