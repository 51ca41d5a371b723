package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *TokenStore {
	t.Helper()
	store, err := NewTokenStore(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("NewTokenStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTokenRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	token, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if token != "" {
		t.Errorf("empty store returned token %q", token)
	}

	if err := store.Save(ctx, "tok-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("Load = %q, want tok-1", token)
	}
}

func TestSaveReplacesToken(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "tok-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "tok-2"); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	token, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "tok-2" {
		t.Errorf("Load = %q, want tok-2", token)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "tok-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("Delete on empty store: %v", err)
	}

	token, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "" {
		t.Errorf("Load after Delete = %q, want empty", token)
	}
}

func TestReopenKeepsToken(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tally.db")
	ctx := context.Background()

	store, err := NewTokenStore(dbPath)
	if err != nil {
		t.Fatalf("NewTokenStore: %v", err)
	}
	if err := store.Save(ctx, "tok-persist"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	store.Close()

	reopened, err := NewTokenStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	token, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if token != "tok-persist" {
		t.Errorf("Load after reopen = %q, want tok-persist", token)
	}
}
