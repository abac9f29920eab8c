package folio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const snapshotKey = "folio:snapshot"

// Snapshot is everything the public page renders, loaded in one pass.
type Snapshot struct {
	About       *About            `json:"about"`
	Skills      []Skill           `json:"skills"`
	Experiences []Experience      `json:"experiences"`
	Projects    []Project         `json:"projects"`
	Settings    map[string]string `json:"settings"`
}

// LoadSnapshot reads all public content from the store.
func (s *Store) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	snap.About, err = s.LatestAbout(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if snap.Skills, err = s.ListSkills(ctx); err != nil {
		return nil, err
	}
	if snap.Experiences, err = s.ListExperiences(ctx); err != nil {
		return nil, err
	}
	if snap.Projects, err = s.ListProjects(ctx); err != nil {
		return nil, err
	}
	if snap.Settings, err = s.Settings(ctx); err != nil {
		return nil, err
	}
	return &snap, nil
}

// snapshotBackend stores one encoded snapshot with a TTL.
type snapshotBackend interface {
	get(ctx context.Context) (*Snapshot, bool)
	set(ctx context.Context, snap *Snapshot, ttl time.Duration)
	clear(ctx context.Context)
}

// ContentCache keeps the public Snapshot around between writes. gen counts
// invalidations so a load that raced a write never outlives it.
type ContentCache struct {
	mu      sync.Mutex
	gen     atomic.Uint64
	load    func(context.Context) (*Snapshot, error)
	ttl     time.Duration
	backend snapshotBackend
}

// NewContentCache creates an in-process cache backed by the given Store.
func NewContentCache(s *Store, ttl time.Duration) *ContentCache {
	return &ContentCache{
		load:    s.LoadSnapshot,
		ttl:     ttl,
		backend: &memoryBackend{c: cache.New(ttl, 2*ttl)},
	}
}

// NewRedisContentCache creates a cache shared through Redis, so several
// instances of the site see each other's invalidations.
func NewRedisContentCache(s *Store, ttl time.Duration, client *redis.Client) *ContentCache {
	return &ContentCache{
		load:    s.LoadSnapshot,
		ttl:     ttl,
		backend: &redisBackend{client: client},
	}
}

// Snapshot returns the cached content, loading it from the store when the
// cache is empty or expired.
func (c *ContentCache) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap, ok := c.backend.get(ctx); ok {
		return snap, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if snap, ok := c.backend.get(ctx); ok {
		return snap, nil
	}
	gen := c.gen.Load()
	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.backend.set(ctx, snap, c.ttl)
	// An Invalidate that ran during the load may have cleared the entry
	// before set; drop what was just stored.
	if c.gen.Load() != gen {
		c.backend.clear(ctx)
	}
	return snap, nil
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate(ctx context.Context) {
	c.gen.Add(1)
	c.backend.clear(ctx)
}

type memoryBackend struct {
	c *cache.Cache
}

func (m *memoryBackend) get(context.Context) (*Snapshot, bool) {
	v, ok := m.c.Get(snapshotKey)
	if !ok {
		return nil, false
	}
	return v.(*Snapshot), true
}

func (m *memoryBackend) set(_ context.Context, snap *Snapshot, ttl time.Duration) {
	m.c.Set(snapshotKey, snap, ttl)
}

func (m *memoryBackend) clear(context.Context) {
	m.c.Delete(snapshotKey)
}

// redisBackend degrades to a cache miss on any Redis error; the store stays
// the source of truth.
type redisBackend struct {
	client *redis.Client
}

func (r *redisBackend) get(ctx context.Context) (*Snapshot, bool) {
	b, err := r.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "redis cache read failed", slog.Any("error", err))
		}
		return nil, false
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		slog.WarnContext(ctx, "redis cache entry is corrupt", slog.Any("error", err))
		return nil, false
	}
	return &snap, true
}

func (r *redisBackend) set(ctx context.Context, snap *Snapshot, ttl time.Duration) {
	b, err := json.Marshal(snap)
	if err != nil {
		slog.WarnContext(ctx, "encode snapshot", slog.Any("error", err))
		return
	}
	if err := r.client.Set(ctx, snapshotKey, b, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "redis cache write failed", slog.Any("error", err))
	}
}

func (r *redisBackend) clear(ctx context.Context) {
	if err := r.client.Del(ctx, snapshotKey).Err(); err != nil {
		slog.WarnContext(ctx, "redis cache invalidation failed", slog.Any("error", err))
	}
}

// newCache picks the Redis backend when an address is configured.
func newCache(cfg SiteConfig, s *Store) (*ContentCache, func() error, error) {
	if cfg.Redis.Addr == "" {
		return NewContentCache(s, cfg.ContentCacheTTL), func() error { return nil }, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
	}
	return NewRedisContentCache(s, cfg.ContentCacheTTL, client), client.Close, nil
}
