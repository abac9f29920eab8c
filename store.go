package folio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

const (
	maxOpenConns    = 5
	connMaxIdleTime = 10 * time.Second
)

// gormLogger sends gorm's slow-query and error lines through slog. Missing
// rows are an expected answer (ErrNotFound), not an error worth logging.
func gormLogger(level slog.Level) logger.Interface {
	gormLevel := logger.Warn
	if level <= slog.LevelDebug {
		gormLevel = logger.Info
	}
	return logger.New(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLevel,
		IgnoreRecordNotFoundError: true,
	})
}

// List orderings. Sort order is advisory, ties fall back to newest first.
const (
	orderSkills      = "category ASC, sort_order ASC, id ASC"
	orderByPosition  = "sort_order ASC, created_at DESC, id DESC"
	orderNewestFirst = "created_at DESC, id DESC"
)

// Store wraps the gorm handle and provides CRUD operations for site content.
type Store struct {
	db *gorm.DB
}

// OpenStore connects to PostgreSQL when the full set of DB_* parameters is
// configured, otherwise it opens (or creates) the SQLite database at
// cfg.DatabasePath. The schema is migrated before the store is returned.
func OpenStore(cfg SiteConfig) (*Store, error) {
	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	if cfg.Database.Postgres() {
		dialector = postgres.Open(cfg.Database.dsn())
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
			return nil, err
		}
		// modernc.org/sqlite registers itself as "sqlite". WAL plus a busy
		// timeout lets writers wait instead of failing with SQLITE_BUSY.
		dialector = sqlite.New(sqlite.Config{
			DriverName: "sqlite",
			DSN:        cfg.DatabasePath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger(cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxOpenConns)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Migrate creates missing tables and columns.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&User{}, &About{}, &Skill{}, &Experience{}, &Project{}, &Setting{})
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func listRecords[T any](ctx context.Context, s *Store, order string) ([]T, error) {
	rows := []T{}
	if err := s.db.WithContext(ctx).Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func getRecord[T any](ctx context.Context, s *Store, id uint) (*T, error) {
	var row T
	err := s.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func createRecord[T any](ctx context.Context, s *Store, row *T) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func saveRecord[T any](ctx context.Context, s *Store, row *T) error {
	return s.db.WithContext(ctx).Save(row).Error
}

func deleteRecord[T any](ctx context.Context, s *Store, id uint) error {
	res := s.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSkills returns skills grouped by category, then by sort order.
func (s *Store) ListSkills(ctx context.Context) ([]Skill, error) {
	return listRecords[Skill](ctx, s, orderSkills)
}

// ListExperiences returns the timeline by sort order, newest first on ties.
func (s *Store) ListExperiences(ctx context.Context) ([]Experience, error) {
	return listRecords[Experience](ctx, s, orderByPosition)
}

// ListProjects returns projects by sort order, newest first on ties.
func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	return listRecords[Project](ctx, s, orderByPosition)
}

// LatestAbout returns the most recently created profile.
func (s *Store) LatestAbout(ctx context.Context) (*About, error) {
	var about About
	err := s.db.WithContext(ctx).Order(orderNewestFirst).First(&about).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &about, nil
}

// Settings returns every setting as a key/value map.
func (s *Store) Settings(ctx context.Context) (map[string]string, error) {
	var rows []Setting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

// ListSettings returns the settings rows ordered by key.
func (s *Store) ListSettings(ctx context.Context) ([]Setting, error) {
	return listRecords[Setting](ctx, s, "setting_key ASC")
}

// UpsertSetting creates or overwrites the setting with the given key and
// reports whether it was created.
func (s *Store) UpsertSetting(ctx context.Context, key, value, description string) (*Setting, bool, error) {
	var (
		setting Setting
		created bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		setting, created, err = upsertSetting(tx, key, value, description)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return &setting, created, nil
}

// UpsertSettings writes all settings in one transaction.
func (s *Store) UpsertSettings(ctx context.Context, settings []Setting) (int, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, st := range settings {
			if _, _, err := upsertSetting(tx, st.Key, st.Value, st.Description); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(settings), nil
}

// SeedSettings inserts the settings whose keys are not stored yet and
// returns how many were added. Existing values are left untouched.
func (s *Store) SeedSettings(ctx context.Context, settings []Setting) (int, error) {
	added := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, st := range settings {
			var n int64
			if err := tx.Model(&Setting{}).Where("setting_key = ?", st.Key).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				continue
			}
			row := Setting{Key: st.Key, Value: st.Value, Description: st.Description}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			added++
		}
		return nil
	})
	return added, err
}

func upsertSetting(tx *gorm.DB, key, value, description string) (Setting, bool, error) {
	var setting Setting
	err := tx.Where("setting_key = ?", key).First(&setting).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = Setting{Key: key, Value: value, Description: description}
		return setting, true, tx.Create(&setting).Error
	case err != nil:
		return setting, false, err
	}
	setting.Value = value
	setting.Description = description
	return setting, false, tx.Save(&setting).Error
}

// UserByEmail looks up a dashboard account.
func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new account. The password must already be hashed.
func (s *Store) CreateUser(ctx context.Context, u *User) error {
	switch u.Role {
	case "":
		u.Role = RoleAdmin
	case RoleAdmin, RoleUser:
	default:
		return fmt.Errorf("create user: unknown role %q", u.Role)
	}
	return s.db.WithContext(ctx).Create(u).Error
}

// CountUsers returns the number of accounts.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&User{}).Count(&n).Error
	return n, err
}

// Counts returns the number of rows per content type, for the dashboard.
func (s *Store) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 4)
	for name, model := range map[string]any{
		"skills":      &Skill{},
		"experiences": &Experience{},
		"projects":    &Project{},
		"settings":    &Setting{},
	} {
		var n int64
		if err := s.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, nil
}
