package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"parentwork/internal/config"
	"parentwork/internal/musicbrainz"
	"parentwork/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	server     *httptest.Server
}

const (
	testMovementID = "2e4a3668-458d-3b2a-8be2-0b08e0d8243a"
	testSectionID  = "f04b42df-7251-4d86-a5ee-67cfa49580d1"
	testRootID     = "45afb3b2-18ac-4187-bc72-beb1b1c194ba"
)

func testWorks() map[string]musicbrainz.Work {
	return map[string]musicbrainz.Work{
		testMovementID: {ID: testMovementID, Title: "Movement", Relations: []musicbrainz.Relation{
			{Type: "parts", Direction: "backward", TargetType: "work", Work: &musicbrainz.Work{ID: testSectionID}},
		}},
		testSectionID: {ID: testSectionID, Title: "Section", Relations: []musicbrainz.Relation{
			{Type: "parts", Direction: "backward", TargetType: "work", Work: &musicbrainz.Work{ID: testRootID}},
		}},
		testRootID: {ID: testRootID, Title: "Root Work", Disambiguation: "complete", Relations: []musicbrainz.Relation{
			{Type: "composer", Direction: "backward", TargetType: "artist",
				Artist: &musicbrainz.Artist{ID: "c1", Name: "Composer", SortName: "Composer, The"}},
		}},
		"no-composer": {ID: "no-composer", Title: "Anonymous"},
	}
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	works := testWorks()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		work, ok := works[strings.TrimPrefix(r.URL.Path, "/work/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(work)
	}))
	t.Cleanup(server.Close)

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("MUSICBRAINZ_BASE_URL", "")

	opts = append([]testsupport.ConfigOption{testsupport.WithMusicBrainzURL(server.URL)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"

	configPath := filepath.Join(homeDir, ".config", "parentwork", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, server: server}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	encoded, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(encoded), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
