// Package slotlock serialises bookings of the same provider slot. The redis
// locker works across processes; the memory locker covers a single process
// when no REDIS_URL is configured.
package slotlock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/config"
)

// DefaultTTL bounds how long one booking may hold a slot.
const DefaultTTL = 30 * time.Second

var ErrSlotTaken = errors.New("slot is being booked by someone else")

// Locker guards a critical section per slot key. fn runs with a context that
// expires with the lock.
type Locker interface {
	WithSlotLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Key builds the lock key for one provider at one date and time.
func Key(providerID, date, slot string) string {
	return "lock:slot:" + strings.Join([]string{providerID, date, slot}, ":")
}

// New returns a redis locker when REDIS_URL is set and a memory locker
// otherwise. The returned close func releases the redis connection.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Locker, func() error, error) {
	if cfg.RedisURL == "" {
		logger.Info().Msg("slot locks are in-process; set REDIS_URL to share them")
		return NewMemoryLocker(DefaultTTL), func() error { return nil }, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Info().Str("addr", opts.Addr).Msg("slot locks use redis")
	return NewRedisLocker(client, DefaultTTL), client.Close, nil
}

type redisLocker struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisLocker locks with SET NX and releases only while still holding
// the token it set.
func NewRedisLocker(client redis.Cmdable, ttl time.Duration) Locker {
	return &redisLocker{client: client, ttl: ttl}
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisLocker) WithSlotLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire slot lock: %w", err)
	}
	if !ok {
		return ErrSlotTaken
	}
	defer func() {
		// The caller's context may already be done; release regardless.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if _, err := unlockScript.Run(releaseCtx, l.client, []string{key}, token).Result(); err != nil && !errors.Is(err, redis.Nil) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("release slot lock")
		}
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()
	return fn(lockCtx)
}

type memoryEntry struct {
	token   string
	expires time.Time
}

// MemoryLocker is the single-process Locker.
type MemoryLocker struct {
	mu   sync.Mutex
	ttl  time.Duration
	held map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryLocker(ttl time.Duration) *MemoryLocker {
	return &MemoryLocker{ttl: ttl, held: make(map[string]memoryEntry), now: time.Now}
}

func (l *MemoryLocker) acquire(key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if e, ok := l.held[key]; ok && now.Before(e.expires) {
		return "", false
	}
	token := uuid.NewString()
	l.held[key] = memoryEntry{token: token, expires: now.Add(l.ttl)}
	return token, true
}

func (l *MemoryLocker) release(key, token string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.held[key]; ok && e.token == token {
		delete(l.held, key)
	}
}

func (l *MemoryLocker) WithSlotLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	token, ok := l.acquire(key)
	if !ok {
		return ErrSlotTaken
	}
	defer l.release(key, token)

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()
	return fn(lockCtx)
}
