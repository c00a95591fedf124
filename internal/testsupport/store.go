package testsupport

import (
	"context"
	"testing"

	"parentwork/internal/config"
	"parentwork/internal/library"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddItem inserts a track with the given work id field.
func AddItem(t testing.TB, store *library.Store, artist, title, workID string) *library.Item {
	t.Helper()

	item, err := store.Add(context.Background(), &library.Item{
		Artist: artist,
		Title:  title,
		WorkID: workID,
	})
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return item
}
