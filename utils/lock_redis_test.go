package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLocker(t *testing.T) {
	mr, client := newRedis(t)
	l := NewRedisLocker(client, 50*time.Millisecond)
	ctx := context.Background()

	first, err := l.Acquire(ctx, "svc-1", 5*time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if ttl := mr.TTL("lock:svc-1"); ttl != 5*time.Second {
		t.Fatalf("expected the lock to carry its ttl, got %v", ttl)
	}
	if _, err := l.Acquire(ctx, "svc-1", 5*time.Second); !errors.Is(err, ErrLockBusy) {
		t.Fatalf("expected ErrLockBusy, got %v", err)
	}

	// The first holder stalls past its ttl and someone else takes the key.
	mr.FastForward(6 * time.Second)
	second, err := l.Acquire(ctx, "svc-1", 5*time.Second)
	if err != nil {
		t.Fatalf("acquire after expiry: %v", err)
	}
	first()
	if !mr.Exists("lock:svc-1") {
		t.Fatal("a stale release deleted the new holder's lock")
	}
	second()
	if mr.Exists("lock:svc-1") {
		t.Fatal("owner release should delete the lock")
	}

	release, err := AcquireAll(ctx, l, time.Second, "b", "a")
	if err != nil {
		t.Fatalf("acquire all: %v", err)
	}
	if !mr.Exists("lock:a") || !mr.Exists("lock:b") {
		t.Fatal("expected both keys held")
	}
	release()
	if len(mr.Keys()) != 0 {
		t.Fatalf("keys left behind: %v", mr.Keys())
	}
}

func TestRedisLockerBackendDown(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	if err := mr.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	_, err := NewRedisLocker(client, 50*time.Millisecond).Acquire(context.Background(), "k", time.Second)
	if err == nil || errors.Is(err, ErrLockBusy) {
		t.Fatalf("expected a backend error, got %v", err)
	}
}
