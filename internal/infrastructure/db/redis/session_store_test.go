package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mini
}

func testSession(ttl time.Duration) *ports.Session {
	now := time.Now().UTC()
	return &ports.Session{
		Token:     "sess_abc",
		Username:  "alice",
		Role:      domain.RoleUser,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestOpen_ReturnsConnectedStore(t *testing.T) {
	mini := miniredis.RunT(t)

	store, err := Open(context.Background(), Config{Addr: mini.Addr()})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
	if err := store.Save(context.Background(), testSession(time.Hour)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
}

func TestOpen_UnreachableBackend(t *testing.T) {
	mini := miniredis.RunT(t)
	addr := mini.Addr()
	mini.Close()

	if _, err := Open(context.Background(), Config{Addr: addr}); err == nil {
		t.Fatalf("expected Open to fail against a closed backend")
	}
}

func TestSessionStore_SaveAndFind(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession(time.Hour)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	found, err := store.Find(ctx, "sess_abc")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if found.Username != "alice" || found.Role != domain.RoleUser {
		t.Fatalf("unexpected session: %+v", found)
	}
	if found.Token != "sess_abc" {
		t.Fatalf("token not round-tripped: %s", found.Token)
	}
}

func TestSessionStore_UnknownToken(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Find(context.Background(), "sess_forged"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession(time.Hour)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Delete(ctx, "sess_abc"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Find(ctx, "sess_abc"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession after delete, got %v", err)
	}
}

func TestSessionStore_KeyExpiresWithSession(t *testing.T) {
	store, mini := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession(time.Minute)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	mini.FastForward(2 * time.Minute)

	if _, err := store.Find(ctx, "sess_abc"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession after expiry, got %v", err)
	}
}

func TestSessionStore_RejectsAlreadyExpired(t *testing.T) {
	store, _ := newTestStore(t)

	session := testSession(-time.Minute)
	if err := store.Save(context.Background(), session); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for expired session, got %v", err)
	}
}
