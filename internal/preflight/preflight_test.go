package preflight

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"parentwork/internal/curation"
	"parentwork/internal/library"
	"parentwork/internal/logging"
	"parentwork/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckMusicBrainz_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "parentwork-test/1.0" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := CheckMusicBrainz(context.Background(), srv.URL, "parentwork-test/1.0")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckMusicBrainz_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	result := CheckMusicBrainz(context.Background(), srv.URL, "anonymous")
	if result.Passed {
		t.Fatal("expected failure for rejected user agent")
	}
}

func TestCheckMusicBrainz_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	result := CheckMusicBrainz(context.Background(), srv.URL, "agent/1.0")
	if result.Passed {
		t.Fatal("expected failure for 503")
	}
}

func TestCheckMusicBrainz_MissingConfig(t *testing.T) {
	if result := CheckMusicBrainz(context.Background(), "", "agent/1.0"); result.Passed {
		t.Fatal("expected failure for empty url")
	}
	if result := CheckMusicBrainz(context.Background(), "http://127.0.0.1", " "); result.Passed {
		t.Fatal("expected failure for empty user agent")
	}
}

func TestCheckLibraryDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	result := CheckLibraryDatabase(context.Background(), cfg.Paths.LibraryDB)
	if !result.Passed {
		t.Fatalf("expected missing database to pass, got: %s", result.Detail)
	}

	store := testsupport.MustOpenStore(t, cfg)
	testsupport.AddItem(t, store, "Artist", "Title", "")
	result = CheckLibraryDatabase(context.Background(), cfg.Paths.LibraryDB)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckCurationLogIsOptional(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curation.json")
	log := curation.Open(path, logging.NewNop())
	if err := log.Record(curation.Entry{Kind: curation.KindWork, MBID: "rec"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	result := CheckCurationLog(path)
	if !result.Passed || !result.Optional {
		t.Fatalf("expected optional pass, got %#v", result)
	}
}

func TestRunAllAndFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithMusicBrainzURL(srv.URL))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("expected all checks to pass, got %#v", failed)
	}

	if err := os.RemoveAll(cfg.LibraryDir()); err != nil {
		t.Fatal(err)
	}
	failed := Failed(RunAll(context.Background(), cfg))
	if len(failed) == 0 {
		t.Fatal("expected failure after removing library directory")
	}
}

func TestCheckLibraryDatabase_SchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	_ = store.Close()

	db, err := sql.Open("sqlite", cfg.Paths.LibraryDB)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := library.OpenPath(cfg.Paths.LibraryDB); !errors.Is(err, library.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	result := CheckLibraryDatabase(context.Background(), cfg.Paths.LibraryDB)
	if result.Passed {
		t.Fatal("expected schema mismatch to fail")
	}
}

func TestRunLocalSkipsMusicBrainz(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithMusicBrainzURL(srv.URL))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunLocal(context.Background(), cfg)
	for _, result := range results {
		if result.Name == "MusicBrainz" {
			t.Fatalf("expected no MusicBrainz result, got %#v", result)
		}
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("expected local checks to pass with MusicBrainz down, got %#v", failed)
	}
	if requests.Load() != 0 {
		t.Fatalf("expected no HTTP requests, got %d", requests.Load())
	}

	if failed := Failed(RunAll(context.Background(), cfg)); len(failed) != 1 {
		t.Fatalf("expected RunAll to report MusicBrainz failure, got %#v", failed)
	}
}
