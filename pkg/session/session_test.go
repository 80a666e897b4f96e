package session

import (
	"context"
	"testing"
	"time"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	sess := New("tok-123", "https://portal.example.com", &User{ID: "u1", Name: "Sam"}, DefaultTTL)
	sess.ID = "portal"

	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "portal")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Token != "tok-123" || got.PortalURL != "https://portal.example.com" {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.UserID() != "portal:u1" {
		t.Errorf("UserID = %q, want portal:u1", got.UserID())
	}

	if err := store.Delete(ctx, "portal"); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, "portal"); got != nil {
		t.Error("session should be gone after delete")
	}
}

func TestFileStore_ExpiredSessionDropped(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	sess := New("tok", "https://portal.example.com", nil, time.Nanosecond)
	sess.ID = "portal"
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	got, err := store.Get(ctx, "portal")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("expired session should read as missing")
	}
}

func TestSession_NoExpiry(t *testing.T) {
	sess := New("tok", "https://portal.example.com", nil, 0)
	if sess.IsExpired() {
		t.Error("session without TTL should never expire")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if got, _ := store.Get(ctx, "x"); got != nil {
		t.Error("empty store should miss")
	}

	sess := New("tok", "https://portal.example.com", nil, DefaultTTL)
	sess.ID = "x"
	store.Set(ctx, sess)

	if got, _ := store.Get(ctx, "x"); got == nil {
		t.Error("stored session not found")
	}
	store.Delete(ctx, "x")
	if got, _ := store.Get(ctx, "x"); got != nil {
		t.Error("deleted session still present")
	}
}
