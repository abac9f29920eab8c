// Package folio is a single-owner portfolio site built with Go, Echo, gorm
// and templ. It serves a public page assembled from profile, skills,
// experience, projects and settings, a JSON API to manage that content, and
// an admin dashboard on top of the API.
//
// Templates are supplied by the caller through ViewFuncs; folio owns the
// handlers, middleware, storage and caching.
package folio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/i18n"
)

// ViewFuncs holds the page templates folio calls when rendering HTML. This
// is the inversion-of-control mechanism that lets the site own its markup.
type ViewFuncs struct {
	Home           func(p HomePage) templ.Component
	AdminLogin     func(p LoginPage) templ.Component
	AdminDashboard func(p AdminPage) templ.Component
	AdminEditor    func(p AdminPage) templ.Component
	NotFound       func(p ErrorPage) templ.Component
	ServerError    func(p ErrorPage) templ.Component
}

// App is the central folio application. It wires together the store,
// cache, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *ContentCache
	Views  ViewFuncs
	I18n   *i18n.Bundle

	loginLimiter *LoginLimiter
	apiCSRF      echo.MiddlewareFunc
	customRoutes []func(*App)
	staticDir    string
	closers      []func() error
	ownsStore    bool
}

// New creates a new folio App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the store, seeds the admin account and registers middleware
// and routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Setup(ctx context.Context) error {
	if err := a.Config.Validate(); err != nil {
		return err
	}

	if a.Store == nil {
		store, err := OpenStore(a.Config)
		if err != nil {
			return fmt.Errorf("folio: init store: %w", err)
		}
		a.Store = store
		a.ownsStore = true
	}

	created, err := a.Store.EnsureAdmin(ctx, a.Config.AdminEmail, a.Config.AdminPassword)
	if err != nil {
		return fmt.Errorf("folio: seed admin: %w", err)
	}
	if created {
		slog.InfoContext(ctx, "admin account created", slog.String("email", a.Config.AdminEmail))
	}

	cache, closeCache, err := newCache(a.Config, a.Store)
	if err != nil {
		return fmt.Errorf("folio: init cache: %w", err)
	}
	a.Cache = cache
	a.closers = append(a.closers, closeCache)

	bundle, err := i18n.Load()
	if err != nil {
		return err
	}
	a.I18n = bundle

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupAPI()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and serves until SIGINT or SIGTERM, then drains
// in-flight requests.
func (a *App) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Setup(ctx); err != nil {
		return err
	}
	defer a.Close()

	errc := make(chan error, 1)
	go func() {
		slog.Info("listening", slog.String("addr", a.Config.Addr), slog.String("url", a.Config.URL))
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/public/admin.js", a.handleAsset("admin.js", "text/javascript; charset=utf-8"))
	e.GET("/public/site.css", a.handleAsset("site.css", "text/css; charset=utf-8"))
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/healthz", a.handleHealth)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)

	e.GET("/admin/login/", a.handleLoginPage)
	e.POST("/admin/login/", a.handleLogin)
	e.POST("/admin/logout/", handleLogout)

	admin := e.Group("/admin", a.adminPages)
	admin.GET("/", a.handleDashboard)
	admin.GET("/:section/", a.handleEditor)
}

// Close releases the store (when folio opened it), the cache and the limiter.
func (a *App) Close() error {
	var errs []error
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	for _, fn := range a.closers {
		errs = append(errs, fn())
	}
	a.closers = nil
	if a.Store != nil && a.ownsStore {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}
