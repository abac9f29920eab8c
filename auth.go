package folio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionName = "admin_session"
	tokenTTL    = 24 * time.Hour
	bcryptCost  = 10
)

// errBadCredentials is returned for an unknown email or a wrong password.
var errBadCredentials = errors.New("invalid credentials")

// HashPassword returns the bcrypt hash stored in User.Password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Authenticate checks an email/password pair against the users table.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.UserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, ErrNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errBadCredentials
	}
	return user, nil
}

// EnsureAdmin creates the admin account when no user with that email exists.
// It reports whether an account was created.
func (s *Store) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		n, err := s.CountUsers(ctx)
		if err != nil {
			return false, err
		}
		if n == 0 {
			slog.Warn("no admin account exists; set ADMIN_EMAIL and ADMIN_PASSWORD or run `folio init`")
		}
		return false, nil
	}
	_, err := s.UserByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	if err := s.CreateUser(ctx, &User{Email: email, Password: hash, Name: "Administrator", Role: RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (a *App) issueToken(u *User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})
	return token.SignedString([]byte(a.Config.SessionSecret))
}

func (a *App) parseToken(raw string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(a.Config.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// IsAdmin reports whether the request carries an admin session or a valid
// admin bearer token.
func (a *App) IsAdmin(c echo.Context) bool {
	if raw := bearerToken(c); raw != "" {
		claims, err := a.parseToken(raw)
		return err == nil && claims.Role == RoleAdmin
	}
	return IsAdmin(c)
}

// IsAdmin checks if the current cookie session belongs to an admin.
func IsAdmin(c echo.Context) bool {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return false
	}
	role, ok := sess.Values["role"].(string)
	return ok && role == RoleAdmin
}

func setAdminSession(c echo.Context, u *User) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["user_id"] = u.ID
	sess.Values["role"] = u.Role
	return sess.Save(c.Request(), c.Response())
}

func clearAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// requireAdmin rejects API writes from callers without admin rights.
func (a *App) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !a.IsAdmin(c) {
			return ErrUnauthorized()
		}
		return next(c)
	}
}

// adminPages redirects anonymous visitors of /admin/ pages to the login form.
func (a *App) adminPages(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.Redirect(http.StatusSeeOther, "/admin/login/")
		}
		return next(c)
	}
}
