package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "blobs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Put(ctx, StoreSaves, "k1", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, StoreSaves, "k1", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, StoreReplays, "k1", []byte("other-store")); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, StoreSaves, "k1")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v2" {
		t.Errorf("got %q, want the overwritten value v2", got)
	}

	if _, err := s.Get(ctx, StoreSaves, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key err = %v, want ErrNotFound", err)
	}

	keys, err := s.ListKeys(ctx, StoreSaves)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "k1" {
		t.Errorf("keys = %v, want [k1] (stores must not bleed into each other)", keys)
	}

	if err := s.Delete(ctx, StoreSaves, "k1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, StoreSaves, "k1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted key err = %v, want ErrNotFound", err)
	}
}
