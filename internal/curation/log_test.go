package curation

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func mustRecord(t *testing.T, log *Log, entry Entry) {
	t.Helper()
	if err := log.Record(entry); err != nil {
		t.Fatalf("Record(%s %s): %v", entry.Kind, entry.MBID, err)
	}
}

func TestRecordAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curation.json")
	log := Open(path, nil)

	now := time.Now().UTC()
	mustRecord(t, log, Entry{Kind: KindWork, MBID: "rec-1", Title: "Old", RecordedAt: now.Add(-time.Hour)})
	mustRecord(t, log, Entry{Kind: KindComposer, MBID: "work-1", Title: "New", RecordedAt: now})

	entries := log.List()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].MBID != "work-1" || entries[1].MBID != "rec-1" {
		t.Fatalf("expected newest first, got %s, %s", entries[0].MBID, entries[1].MBID)
	}
	if got := log.Count(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
}

func TestRecordDeduplicatesByKindAndID(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "curation.json"), nil)

	mustRecord(t, log, Entry{Kind: KindComposer, MBID: "work-1", Title: "First"})
	mustRecord(t, log, Entry{Kind: KindComposer, MBID: "work-1", Title: "Second"})
	mustRecord(t, log, Entry{Kind: KindWork, MBID: "work-1", Title: "Other kind"})

	if got := log.Count(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
}

func TestRecordValidates(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "curation.json"), nil)

	if err := log.Record(Entry{Kind: KindWork, MBID: "  "}); err == nil {
		t.Fatal("expected error for blank id")
	}
	if err := log.Record(Entry{Kind: "label", MBID: "x"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestPersistenceAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "curation.json")

	first := Open(path, nil)
	mustRecord(t, first, Entry{Kind: KindWork, MBID: "rec-1", URL: "https://musicbrainz.org/recording/rec-1"})

	second := Open(path, nil)
	entries := second.List()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].URL != "https://musicbrainz.org/recording/rec-1" {
		t.Fatalf("unexpected url %q", entries[0].URL)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should not linger: %v", err)
	}
}

func TestRemoveByNumber(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "curation.json"), nil)
	now := time.Now().UTC()
	mustRecord(t, log, Entry{Kind: KindWork, MBID: "a", RecordedAt: now})
	mustRecord(t, log, Entry{Kind: KindWork, MBID: "b", RecordedAt: now.Add(-time.Minute)})

	removed, err := log.Remove(2)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.MBID != "b" {
		t.Fatalf("removed %q, want b", removed.MBID)
	}
	if got := log.Count(); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}

	if _, err := log.Remove(5); err == nil {
		t.Fatal("expected error for out of range number")
	}
}

func TestClear(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "curation.json"), nil)
	mustRecord(t, log, Entry{Kind: KindWork, MBID: "a"})
	if err := log.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := log.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
	if entries := log.List(); len(entries) != 0 {
		t.Fatalf("expected no entries, got %v", entries)
	}
}

func TestDisabledLogIsNoop(t *testing.T) {
	log := Open("", nil)
	mustRecord(t, log, Entry{Kind: KindWork, MBID: "a"})
	if got := log.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
	if entries := log.List(); entries != nil {
		t.Fatalf("expected nil list, got %v", entries)
	}
	if err := log.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := log.Remove(1); err == nil {
		t.Fatal("expected error removing from disabled log")
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curation.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	log := Open(path, nil)
	if got := log.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
}
