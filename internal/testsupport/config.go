package testsupport

import (
	"path/filepath"
	"testing"

	"parentwork/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryDB = filepath.Join(base, "library", "library.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.CurationPath = filepath.Join(base, "curation.json")
	cfgVal.MusicBrainz.UserAgent = "parentwork-test/0.0 (test@example.com)"
	cfgVal.MusicBrainz.RequestsPerSecond = 50

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithMusicBrainzURL points the config at a stub MusicBrainz server.
func WithMusicBrainzURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.MusicBrainz.BaseURL = url
	}
}

// WithAuto toggles automatic processing on import.
func WithAuto(auto bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.ParentWork.Auto = auto
	}
}

// WithForce sets the configured force flag.
func WithForce(force bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.ParentWork.Force = force
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
