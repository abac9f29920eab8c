package folio

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := SiteConfig{DatabasePath: filepath.Join(t.TempDir(), "test.db")}
	s, err := OpenStore(cfg)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestOpenStorePartialPostgres(t *testing.T) {
	_, err := OpenStore(SiteConfig{Database: DatabaseConfig{Host: "db", User: "folio"}})
	if err == nil {
		t.Fatal("expected error for partial database parameters")
	}
	want := "folio: missing required environment variables: DB_NAME, DB_PASSWORD"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestStoreLogsThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	s := setupTestStore(t)
	ctx := context.Background()

	if _, err := s.LatestAbout(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LatestAbout: expected ErrNotFound, got %v", err)
	}
	if _, err := getRecord[Skill](ctx, s, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("getRecord: expected ErrNotFound, got %v", err)
	}
	if strings.Contains(buf.String(), "record not found") {
		t.Errorf("missing rows were logged as errors:\n%s", buf.String())
	}

	if err := s.db.WithContext(ctx).Exec("SELECT * FROM no_such_table").Error; err == nil {
		t.Fatal("expected an error from a missing table")
	}
	if !strings.Contains(buf.String(), "no_such_table") {
		t.Errorf("query error not logged through slog, got:\n%s", buf.String())
	}
}

func TestCreateAndGetSkill(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	skill := Skill{Name: "Go", Level: 90, Category: CategoryBackend}
	if err := createRecord(ctx, s, &skill); err != nil {
		t.Fatalf("createRecord failed: %v", err)
	}
	if skill.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	got, err := getRecord[Skill](ctx, s, skill.ID)
	if err != nil {
		t.Fatalf("getRecord failed: %v", err)
	}
	if got.Name != "Go" || got.Level != 90 {
		t.Errorf("got %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestGetRecordNotFound(t *testing.T) {
	s := setupTestStore(t)
	_, err := getRecord[Project](context.Background(), s, 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	p := Project{Title: "Site", Description: "A site"}
	if err := createRecord(ctx, s, &p); err != nil {
		t.Fatal(err)
	}
	if err := deleteRecord[Project](ctx, s, p.ID); err != nil {
		t.Fatalf("deleteRecord failed: %v", err)
	}
	if err := deleteRecord[Project](ctx, s, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestListSkillsOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, sk := range []Skill{
		{Name: "Docker", Level: 60, Category: CategoryTools, Order: 0},
		{Name: "Vue", Level: 70, Category: CategoryFrontend, Order: 2},
		{Name: "React", Level: 80, Category: CategoryFrontend, Order: 1},
		{Name: "Go", Level: 90, Category: CategoryBackend, Order: 0},
	} {
		sk := sk
		if err := createRecord(ctx, s, &sk); err != nil {
			t.Fatal(err)
		}
	}

	skills, err := s.ListSkills(ctx)
	if err != nil {
		t.Fatalf("ListSkills failed: %v", err)
	}
	var names []string
	for _, sk := range skills {
		names = append(names, sk.Name)
	}
	// Categories sort by name: "Backend" < "Frontend" < "Outils & Technologies".
	want := []string{"Go", "React", "Vue", "Docker"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestListProjectsTieBreakNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"old", "new"} {
		p := Project{Title: title, Description: "d", Model: Model{CreatedAt: base.Add(time.Duration(i) * time.Hour)}}
		if err := createRecord(ctx, s, &p); err != nil {
			t.Fatal(err)
		}
	}
	projects, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 2 || projects[0].Title != "new" {
		t.Fatalf("expected newest first on equal order, got %+v", projects)
	}
}

func TestExperienceDescriptionRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	e := Experience{Title: "Engineer", Company: "Acme", Period: "2020-2024",
		Description: datatypes.JSONSlice[string]{"Built APIs", "Led migrations"}}
	if err := createRecord(ctx, s, &e); err != nil {
		t.Fatal(err)
	}
	got, err := getRecord[Experience](ctx, s, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Description) != 2 || got.Description[1] != "Led migrations" {
		t.Errorf("description = %v", got.Description)
	}
}

func TestLatestAbout(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if _, err := s.LatestAbout(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty store: expected ErrNotFound, got %v", err)
	}

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second"} {
		a := About{Title: title, Description: "d", Model: Model{CreatedAt: base.Add(time.Duration(i) * time.Minute)},
			Stats: datatypes.NewJSONType(AboutStats{Projects: i})}
		if err := createRecord(ctx, s, &a); err != nil {
			t.Fatal(err)
		}
	}
	about, err := s.LatestAbout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if about.Title != "second" || about.Stats.Data().Projects != 1 {
		t.Errorf("LatestAbout = %+v", about)
	}
}

func TestUpsertSetting(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, created, err := s.UpsertSetting(ctx, "siteName", "Mine", "")
	if err != nil || !created {
		t.Fatalf("first upsert: created=%v err=%v", created, err)
	}
	st, created, err := s.UpsertSetting(ctx, "siteName", "Ours", "renamed")
	if err != nil || created {
		t.Fatalf("second upsert: created=%v err=%v", created, err)
	}
	if st.Value != "Ours" {
		t.Errorf("value = %q", st.Value)
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 1 || settings["siteName"] != "Ours" {
		t.Errorf("settings = %v", settings)
	}
}

func TestUpsertSettingsBulk(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if _, _, err := s.UpsertSetting(ctx, "primaryColor", "#000000", ""); err != nil {
		t.Fatal(err)
	}
	n, err := s.UpsertSettings(ctx, []Setting{
		{Key: "primaryColor", Value: "#ff0000"},
		{Key: "portfolioTheme", Value: "bold"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("updated = %d, want 2", n)
	}
	settings, _ := s.Settings(ctx)
	if settings["primaryColor"] != "#ff0000" || settings["portfolioTheme"] != "bold" {
		t.Errorf("settings = %v", settings)
	}
}

func TestSeedSettingsKeepsExisting(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if _, _, err := s.UpsertSetting(ctx, SettingSiteName, "Custom", ""); err != nil {
		t.Fatal(err)
	}
	added, err := s.SeedSettings(ctx, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	if added != len(DefaultSettings())-1 {
		t.Errorf("added = %d, want %d", added, len(DefaultSettings())-1)
	}
	settings, _ := s.Settings(ctx)
	if settings[SettingSiteName] != "Custom" {
		t.Errorf("siteName overwritten: %q", settings[SettingSiteName])
	}
}

func TestEnsureAdminAndAuthenticate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	created, err := s.EnsureAdmin(ctx, "admin@example.com", "s3cret")
	if err != nil || !created {
		t.Fatalf("EnsureAdmin: created=%v err=%v", created, err)
	}
	created, err = s.EnsureAdmin(ctx, "admin@example.com", "other")
	if err != nil || created {
		t.Fatalf("second EnsureAdmin: created=%v err=%v", created, err)
	}

	u, err := s.Authenticate(ctx, "admin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if u.Role != RoleAdmin {
		t.Errorf("role = %q", u.Role)
	}
	if u.Password == "s3cret" {
		t.Error("password stored in clear text")
	}
	if _, err := s.Authenticate(ctx, "admin@example.com", "wrong"); !errors.Is(err, errBadCredentials) {
		t.Errorf("wrong password: got %v", err)
	}
	if _, err := s.Authenticate(ctx, "nobody@example.com", "s3cret"); !errors.Is(err, errBadCredentials) {
		t.Errorf("unknown email: got %v", err)
	}
}

func TestCreateUserRoles(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	viewer := User{Email: "viewer@example.com", Password: "x", Role: RoleUser}
	if err := s.CreateUser(ctx, &viewer); err != nil {
		t.Fatalf("CreateUser(user): %v", err)
	}
	if err := s.CreateUser(ctx, &User{Email: "root@example.com", Password: "x", Role: "root"}); err == nil {
		t.Error("expected an error for an unknown role")
	}
	if n, _ := s.CountUsers(ctx); n != 1 {
		t.Errorf("CountUsers = %d, want 1", n)
	}
}

func TestCounts(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	sk := Skill{Name: "Go", Level: 1, Category: CategoryBackend}
	if err := createRecord(ctx, s, &sk); err != nil {
		t.Fatal(err)
	}
	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts["skills"] != 1 || counts["projects"] != 0 {
		t.Errorf("counts = %v", counts)
	}
}
