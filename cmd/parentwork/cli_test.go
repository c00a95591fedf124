package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"parentwork/internal/curation"
	"parentwork/internal/library"
	"parentwork/internal/logging"
	"parentwork/internal/parentwork"
	"parentwork/internal/testsupport"
)

func TestAddFetchesParentWorkWhenAuto(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{
		"add", "--artist", "Orchestra", "--title", "Movement",
		"--work-id", testMovementID, "--mbid", "rec-1",
	}, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Added item #1")
	requireContains(t, out, "Parent work: Root Work")
	requireContains(t, out, "Composer: Composer")

	out, _, err = runCLI(t, []string{"list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var items []library.Item
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	want := library.ParentFields{
		Work:         "Root Work",
		WorkDisambig: "complete",
		Composer:     "Composer",
		ComposerSort: "Composer, The",
	}
	if items[0].ParentFields != want {
		t.Fatalf("unexpected parent fields %#v", items[0].ParentFields)
	}
}

func TestAddSkipsFetchWhenAutoDisabled(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithAuto(false))

	out, _, err := runCLI(t, []string{"add", "--artist", "A", "--title", "T", "--work-id", testMovementID}, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Added item #1")
	if strings.Contains(out, "Parent work") {
		t.Fatalf("expected no parent work output, got %q", out)
	}

	out, _, err = runCLI(t, []string{"list", "parent_work:"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Movement")
}

func TestAddRequiresArtistAndTitle(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"add", "--artist", "A"}, env.configPath); err == nil {
		t.Fatal("expected error without title")
	}
}

func TestFetchProcessesSelectedItems(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithAuto(false))

	store := testsupport.MustOpenStore(t, env.cfg)
	chained := testsupport.AddItem(t, store, "Orchestra", "Movement", testMovementID)
	anonymous := testsupport.AddItem(t, store, "Choir", "Chant", "no-composer")
	if _, err := store.Add(context.Background(), &library.Item{Artist: "Band", Title: "Song", RecordingID: "rec-9"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	out, _, err := runCLI(t, []string{"fetch", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	var summary parentwork.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if summary.Updated != 2 || summary.NoWork != 1 || summary.Total != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	got, err := store.GetByID(context.Background(), chained.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ParentFields.Work != "Root Work" {
		t.Fatalf("expected root work stored, got %#v", got.ParentFields)
	}
	got, err = store.GetByID(context.Background(), anonymous.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ParentFields.Work != "Anonymous" || got.ParentFields.Composer != "" {
		t.Fatalf("unexpected anonymous fields %#v", got.ParentFields)
	}

	// Second run only touches cached items.
	out, _, err = runCLI(t, []string{"fetch", "artist:orchestra"}, env.configPath)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	requireContains(t, out, "1 cached")

	out, _, err = runCLI(t, []string{"fetch", "--force", "artist:orchestra"}, env.configPath)
	if err != nil {
		t.Fatalf("fetch --force: %v", err)
	}
	requireContains(t, out, "1 updated")

	out, _, err = runCLI(t, []string{"curation", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("curation list: %v", err)
	}
	var entries []curation.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode curation: %v\n%s", err, out)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 curation entries, got %d", len(entries))
	}
}

func TestFetchFailsWhenLibraryLocked(t *testing.T) {
	env := setupCLITestEnv(t)
	store := testsupport.MustOpenStore(t, env.cfg)
	unlock, err := store.Lock()
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer func() { _ = unlock() }()

	if _, _, err := runCLI(t, []string{"fetch"}, env.configPath); err == nil {
		t.Fatal("expected lock error")
	}
}

func TestCurationRemoveAndClear(t *testing.T) {
	env := setupCLITestEnv(t)
	log := curation.Open(env.cfg.Paths.CurationPath, logging.NewNop())
	for _, mbid := range []string{"rec-1", "rec-2"} {
		if err := log.Record(curation.Entry{Kind: curation.KindWork, MBID: mbid}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	out, _, err := runCLI(t, []string{"curation", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("curation list: %v", err)
	}
	requireContains(t, out, "work")

	out, _, err = runCLI(t, []string{"curation", "remove", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("curation remove: %v", err)
	}
	requireContains(t, out, "Removed work entry")

	if _, _, err := runCLI(t, []string{"curation", "remove", "5"}, env.configPath); err == nil {
		t.Fatal("expected out of range error")
	}

	out, _, err = runCLI(t, []string{"curation", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("curation clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 entries")
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# source: "+env.configPath)
	requireContains(t, out, env.server.URL)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}
}

func TestCheckReportsStatus(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "[OK]")
	requireContains(t, out, "MusicBrainz:")

	env.server.Close()
	out, _, err = runCLI(t, []string{"check"}, env.configPath)
	if err == nil {
		t.Fatalf("expected check failure with server down\n%s", out)
	}
	requireContains(t, out, "[ERROR]")
}

func TestFetchRunsWhenMusicBrainzUnreachable(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithAuto(false))
	env.server.Close()

	store := testsupport.MustOpenStore(t, env.cfg)
	cached := testsupport.AddItem(t, store, "Orchestra", "Movement", testMovementID)
	cached.ParentFields = library.ParentFields{Work: "Root Work", Composer: "Composer"}
	if err := store.StoreParentFields(context.Background(), cached); err != nil {
		t.Fatalf("StoreParentFields: %v", err)
	}
	if _, err := store.Add(context.Background(), &library.Item{Artist: "Band", Title: "Song"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	out, _, err := runCLI(t, []string{"fetch"}, env.configPath)
	if err != nil {
		t.Fatalf("fetch with MusicBrainz down: %v", err)
	}
	requireContains(t, out, "1 cached")
	requireContains(t, out, "1 without work")
}
