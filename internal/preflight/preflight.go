package preflight

import (
	"context"

	"parentwork/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Detail   string
	Optional bool
}

// RunAll executes every preflight check for the given config, including the
// MusicBrainz reachability request.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := RunLocal(ctx, cfg)
	return append(results, CheckMusicBrainz(ctx, cfg.MusicBrainz.BaseURL, cfg.MusicBrainz.UserAgent))
}

// RunLocal executes the filesystem and database checks only. It makes no
// network requests.
func RunLocal(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Library directory", cfg.LibraryDir()),
		CheckLibraryDatabase(ctx, cfg.Paths.LibraryDB),
	}
	if cfg.Paths.CurationPath != "" {
		results = append(results, CheckCurationLog(cfg.Paths.CurationPath))
	}
	return results
}

// Failed returns the required checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed && !result.Optional {
			failed = append(failed, result)
		}
	}
	return failed
}
