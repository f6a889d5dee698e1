package cache

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func TestPebbleStore_PutGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store, err := NewPebbleStore(dir)
	if err != nil {
		t.Fatalf("NewPebbleStore failed: %v", err)
	}
	defer store.Close()

	if err := store.Put("https://example.com/tx/abc", []byte(`{"txid":"abc"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get("https://example.com/tx/abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, []byte(`{"txid":"abc"}`)) {
		t.Errorf("unexpected value: %s", got)
	}
}

func TestPebbleStore_MissingKey(t *testing.T) {
	store, err := NewPebbleStore(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewPebbleStore failed: %v", err)
	}
	defer store.Close()

	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPebbleStore_SurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	store, err := NewPebbleStore(dir)
	if err != nil {
		t.Fatalf("NewPebbleStore failed: %v", err)
	}
	if err := store.Put("key", []byte("value")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewPebbleStore(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get("key")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("expected value to survive reopen, got %s", got)
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	store := NewMemoryStore()

	value := []byte("original")
	if err := store.Put("key", value); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value[0] = 'X'

	got, err := store.Get("key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "original" {
		t.Errorf("stored value aliased caller buffer: %s", got)
	}
}
