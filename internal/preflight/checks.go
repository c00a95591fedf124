package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"parentwork/internal/curation"
	"parentwork/internal/library"
	"parentwork/internal/logging"
)

// CheckMusicBrainz verifies that the MusicBrainz web service answers. It uses
// a 5-second timeout and a single attempt (no retries).
func CheckMusicBrainz(ctx context.Context, baseURL, userAgent string) Result {
	const name = "MusicBrainz"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing base url"}
	}
	if strings.TrimSpace(userAgent) == "" {
		return Result{Name: name, Detail: "missing user agent"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%v)", err)}
	}
	req.Header.Set("User-Agent", strings.TrimSpace(userAgent))

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeHTTPError(err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode < 500 && resp.StatusCode != http.StatusForbidden:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable", base)}
	case resp.StatusCode == http.StatusForbidden:
		return Result{Name: name, Detail: "rejected (check musicbrainz.user_agent)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("service unavailable (%d)", resp.StatusCode)}
	}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckLibraryDatabase opens the library database and reports its size. A
// missing database file passes; it is created on first use.
func CheckLibraryDatabase(ctx context.Context, path string) Result {
	const name = "Library database"

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
	}
	store, err := library.OpenPath(path)
	if err != nil {
		if errors.Is(err, library.ErrSchemaMismatch) {
			return Result{Name: name, Detail: "schema version mismatch (recreate the database)"}
		}
		return Result{Name: name, Detail: fmt.Sprintf("open failed (%v)", err)}
	}
	defer store.Close()

	count, err := store.Count(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("query failed (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d items)", path, count)}
}

// CheckCurationLog reports pending curation entries. It never blocks a run.
func CheckCurationLog(path string) Result {
	const name = "Curation log"

	if err := unix.Access(filepath.Dir(path), unix.W_OK); err != nil && !errors.Is(err, unix.ENOENT) {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: not writable: %v)", path, err)}
	}
	log := curation.Open(path, logging.NewNop())
	count := log.Count()
	if count == 0 {
		return Result{Name: name, Optional: true, Passed: true, Detail: "no missing links recorded"}
	}
	return Result{Name: name, Optional: true, Passed: true, Detail: fmt.Sprintf("%d missing links to fix (parentwork curation list)", count)}
}

func summarizeHTTPError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "reachability check timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "reachability check timed out"
	}
	return fmt.Sprintf("unreachable (%v)", err)
}
