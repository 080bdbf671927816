package slotlock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis implements the commands the redis locker issues. Any other
// command panics on the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable

	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	setErr  error
	unlocks int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = fmt.Sprint(value)
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

// EvalSha runs the compare-and-delete release.
func (f *fakeRedis) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlocks++
	if v, ok := f.values[keys[0]]; ok && v == fmt.Sprint(args[0]) {
		delete(f.values, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func (f *fakeRedis) get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func TestRedisLocker_Exclusive(t *testing.T) {
	rdb := newFakeRedis()
	l := NewRedisLocker(rdb, DefaultTTL)
	key := Key("p", "d", "t")

	err := l.WithSlotLock(context.Background(), key, func(ctx context.Context) error {
		if _, held := rdb.get(key); !held {
			t.Error("expected the key to be set while fn runs")
		}
		if rdb.ttls[key] != DefaultTTL {
			t.Errorf("expected ttl %s, got %s", DefaultTTL, rdb.ttls[key])
		}
		inner := l.WithSlotLock(ctx, key, func(context.Context) error { return nil })
		if !errors.Is(inner, ErrSlotTaken) {
			t.Errorf("expected ErrSlotTaken while held, got %v", inner)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, held := rdb.get(key); held {
		t.Error("lock should be released after fn returns")
	}
	if err := l.WithSlotLock(context.Background(), key, func(context.Context) error { return nil }); err != nil {
		t.Errorf("expected to relock, got %v", err)
	}
}

func TestRedisLocker_ReleasesOnError(t *testing.T) {
	rdb := newFakeRedis()
	l := NewRedisLocker(rdb, DefaultTTL)
	key := Key("p", "d", "t")
	boom := errors.New("boom")

	if err := l.WithSlotLock(context.Background(), key, func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	if _, held := rdb.get(key); held || rdb.unlocks != 1 {
		t.Errorf("expected one release, held=%v unlocks=%d", held, rdb.unlocks)
	}
}

func TestRedisLocker_KeepsLockTakenOverAfterExpiry(t *testing.T) {
	rdb := newFakeRedis()
	l := NewRedisLocker(rdb, DefaultTTL)
	key := Key("p", "d", "t")

	err := l.WithSlotLock(context.Background(), key, func(context.Context) error {
		// Our lock expired and another booking took the slot.
		rdb.mu.Lock()
		rdb.values[key] = "other-token"
		rdb.mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := rdb.get(key); v != "other-token" {
		t.Errorf("release must not delete another holder's lock, got %q", v)
	}
}

func TestRedisLocker_AcquireError(t *testing.T) {
	rdb := newFakeRedis()
	rdb.setErr = errors.New("connection refused")
	l := NewRedisLocker(rdb, DefaultTTL)

	called := false
	err := l.WithSlotLock(context.Background(), Key("p", "d", "t"), func(context.Context) error {
		called = true
		return nil
	})
	if err == nil || errors.Is(err, ErrSlotTaken) || !errors.Is(err, rdb.setErr) {
		t.Errorf("expected wrapped redis error, got %v", err)
	}
	if called {
		t.Error("fn must not run without the lock")
	}
}

func TestRedisLocker_ContextCarriesDeadline(t *testing.T) {
	l := NewRedisLocker(newFakeRedis(), time.Minute)
	err := l.WithSlotLock(context.Background(), Key("p", "d", "t"), func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		if !ok || time.Until(deadline) > time.Minute {
			t.Errorf("expected a deadline within the ttl, got %v %v", deadline, ok)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
