package slotlock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/config"
)

func TestKey(t *testing.T) {
	if got := Key("prov-1", "2025-01-30", "10:00 AM"); got != "lock:slot:prov-1:2025-01-30:10:00 AM" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestMemoryLocker_Exclusive(t *testing.T) {
	l := NewMemoryLocker(DefaultTTL)
	key := Key("p", "d", "t")

	err := l.WithSlotLock(context.Background(), key, func(ctx context.Context) error {
		inner := l.WithSlotLock(ctx, key, func(context.Context) error { return nil })
		if !errors.Is(inner, ErrSlotTaken) {
			t.Errorf("expected ErrSlotTaken while held, got %v", inner)
		}
		other := l.WithSlotLock(ctx, Key("p", "d", "other"), func(context.Context) error { return nil })
		if other != nil {
			t.Errorf("different slot should lock, got %v", other)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := l.WithSlotLock(context.Background(), key, func(context.Context) error { return nil }); err != nil {
		t.Errorf("lock should be released after fn returns, got %v", err)
	}
}

func TestMemoryLocker_ReleasesOnError(t *testing.T) {
	l := NewMemoryLocker(DefaultTTL)
	boom := errors.New("insert failed")
	if err := l.WithSlotLock(context.Background(), "k", func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	if len(l.held) != 0 {
		t.Error("lock should be released after an error")
	}
}

func TestMemoryLocker_ExpiredLockIsReclaimed(t *testing.T) {
	now := time.Unix(0, 0)
	l := NewMemoryLocker(time.Second)
	l.now = func() time.Time { return now }

	if _, ok := l.acquire("k"); !ok {
		t.Fatal("first acquire should succeed")
	}
	if _, ok := l.acquire("k"); ok {
		t.Fatal("second acquire should fail while held")
	}
	now = now.Add(2 * time.Second)
	token, ok := l.acquire("k")
	if !ok {
		t.Fatal("expired lock should be reclaimed")
	}
	l.release("k", "stale-token")
	if l.held["k"].token != token {
		t.Error("a stale token must not release the new holder")
	}
}

func TestMemoryLocker_ContextCarriesDeadline(t *testing.T) {
	l := NewMemoryLocker(time.Minute)
	l.WithSlotLock(context.Background(), "k", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected lock deadline on context")
		}
		return nil
	})
}

func TestNew_WithoutRedis(t *testing.T) {
	l, closeFn, err := New(context.Background(), &config.Config{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := l.(*MemoryLocker); !ok {
		t.Errorf("expected memory locker, got %T", l)
	}
	if err := closeFn(); err != nil {
		t.Error(err)
	}
}

func TestNew_BadRedisURL(t *testing.T) {
	if _, _, err := New(context.Background(), &config.Config{RedisURL: "://nope"}, zerolog.Nop()); err == nil {
		t.Fatal("expected parse error")
	}
}
