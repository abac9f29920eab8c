package folio

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) setupAPI() {
	g := a.Echo.Group("/api")

	g.POST("/auth/token", a.handleToken)

	about := newResource[About](a, orderNewestFirst)
	about.view = func(row *About) any { return row.View() }
	g.GET("/about", a.handleAboutLatest)
	g.POST("/about", about.create, a.requireAdmin, a.apiCSRF)
	g.PUT("/about", about.update, a.requireAdmin, a.apiCSRF)
	g.POST("/about/image", a.handleAboutImage, a.requireAdmin, a.apiCSRF)

	newResource[Skill](a, orderSkills).register(g, "/skills", true)
	newResource[Experience](a, orderByPosition).register(g, "/experiences", true)
	newResource[Project](a, orderByPosition).register(g, "/projects", true)

	g.GET("/settings", a.handleSettingsList)
	g.POST("/settings", a.handleSettingUpsert, a.requireAdmin, a.apiCSRF)
	g.PUT("/settings", a.handleSettingsBulk, a.requireAdmin, a.apiCSRF)

	g.GET("/migrate", a.handleMigrate, a.requireAdmin)
}

func (a *App) handleAboutLatest(c echo.Context) error {
	about, err := a.Store.LatestAbout(c.Request().Context())
	if errors.Is(err, ErrNotFound) {
		return ErrMissing("No profile found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, about.View())
}

func (a *App) handleToken(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return newError(ErrCodeTooManyRequests, "Too many login attempts. Try again later.", nil)
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	user, err := a.Store.Authenticate(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, errBadCredentials) {
		a.loginLimiter.Record(ip)
		loginAttempts.WithLabelValues("token", "failure").Inc()
		return newError(ErrCodeUnauthorized, "Invalid credentials", err)
	}
	if err != nil {
		return err
	}
	loginAttempts.WithLabelValues("token", "success").Inc()
	token, err := a.issueToken(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

func (a *App) handleSettingsList(c echo.Context) error {
	settings, err := a.Store.Settings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// settingInput accepts any JSON scalar as the value; it is stored as a string.
type settingInput struct {
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description"`
}

func (in settingInput) toSetting() (Setting, error) {
	key := strings.TrimSpace(in.Key)
	if key == "" || len(in.Value) == 0 {
		return Setting{}, ErrInvalid("key and value are required")
	}
	value, err := settingValue(in.Value)
	if err != nil {
		return Setting{}, err
	}
	return Setting{Key: key, Value: value, Description: in.Description}, nil
}

func settingValue(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", ErrInvalid("malformed setting value")
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case nil:
		return "", ErrInvalid("key and value are required")
	default:
		return "", ErrInvalid("setting value must be a string, number or boolean")
	}
}

func (a *App) handleSettingUpsert(c echo.Context) error {
	var in settingInput
	if err := decodeBody(c, &in); err != nil {
		return err
	}
	st, err := in.toSetting()
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	setting, created, err := a.Store.UpsertSetting(ctx, st.Key, st.Value, st.Description)
	if err != nil {
		return err
	}
	a.Cache.Invalidate(ctx)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, setting)
}

func (a *App) handleSettingsBulk(c echo.Context) error {
	var body struct {
		Settings json.RawMessage `json:"settings"`
	}
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	var inputs []settingInput
	if len(body.Settings) == 0 || body.Settings[0] != '[' || json.Unmarshal(body.Settings, &inputs) != nil {
		return ErrInvalid("settings must be an array")
	}
	settings := make([]Setting, 0, len(inputs))
	for _, in := range inputs {
		st, err := in.toSetting()
		if err != nil {
			return err
		}
		settings = append(settings, st)
	}
	ctx := c.Request().Context()
	n, err := a.Store.UpsertSettings(ctx, settings)
	if err != nil {
		return err
	}
	a.Cache.Invalidate(ctx)
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Settings updated",
		"updated": n,
	})
}

func (a *App) handleMigrate(c echo.Context) error {
	if err := a.Store.Migrate(); err != nil {
		return err
	}
	slog.InfoContext(c.Request().Context(), "schema migrated on request")
	return c.JSON(http.StatusOK, map[string]string{"message": "Database schema is up to date"})
}
