package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFileCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set(ctx, "k", []byte("value"), 0); err != nil {
		t.Fatal(err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(data) != "value" {
		t.Errorf("Get = (%q, %v, %v)", data, ok, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expected miss after delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("double delete should be a no-op, got %v", err)
	}
}

func TestFileCache_TTL(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry should be a miss")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("null cache should never hit")
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.LayoutKey("hash1", LayoutKeyOpts{Device: "desktop"})
	b := k.LayoutKey("hash1", LayoutKeyOpts{Device: "mobile"})
	if a == b {
		t.Error("different devices must produce different layout keys")
	}
	if a != k.LayoutKey("hash1", LayoutKeyOpts{Device: "desktop"}) {
		t.Error("keys must be stable")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:42:")

	key := scoped.TreeKey("https://example.com/tree.json")
	if key == inner.TreeKey("https://example.com/tree.json") {
		t.Error("scoped key should differ from the unscoped key")
	}
	if key[:8] != "user:42:" {
		t.Errorf("scoped key missing prefix: %s", key)
	}
}

func TestRetryWithBackoff_NonRetryableStops(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return errors.New("fatal")
	})
	if err == nil || calls != 1 {
		t.Errorf("non-retryable error should stop immediately, calls=%d err=%v", calls, err)
	}
}

func TestRetryWithBackoff_RetryableRetries(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("transient"))
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("expected success on second attempt, calls=%d err=%v", calls, err)
	}
}
