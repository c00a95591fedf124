package curation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"parentwork/internal/logging"
)

// Kind names the MusicBrainz link that is missing.
type Kind string

const (
	// KindWork means a recording has no associated work.
	KindWork Kind = "work"
	// KindComposer means a root work has no composer relation.
	KindComposer Kind = "composer"
)

// Entry records a missing MusicBrainz link worth fixing upstream.
type Entry struct {
	Kind       Kind      `json:"kind"`
	MBID       string    `json:"mbid"` // recording id for KindWork, work id for KindComposer
	URL        string    `json:"url"`
	Artist     string    `json:"artist"`
	Title      string    `json:"title"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (e Entry) key() string {
	return string(e.Kind) + ":" + e.MBID
}

// Log provides thread-safe access to the curation log file.
type Log struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]Entry // keyed by kind:mbid
}

// Open creates a curation log backed by path. If path is empty the log is
// non-functional and every operation is a no-op. The file is created lazily
// on the first Record call.
func Open(path string, logger *slog.Logger) *Log {
	logger = logging.NewComponentLogger(logger, "curation")

	l := &Log{
		path:    path,
		logger:  logger,
		entries: make(map[string]Entry),
	}
	if path == "" {
		return l
	}

	if err := l.load(); err != nil {
		logging.WarnWithContext(logger, "failed to load curation log", "curation_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete or repair the curation file"),
			logging.String(logging.FieldImpact, "previously recorded missing links are not listed"))
	}
	return l
}

// Path returns the backing file, empty when disabled.
func (l *Log) Path() string {
	return l.path
}

// Record adds or refreshes an entry and persists the log.
func (l *Log) Record(entry Entry) error {
	entry.MBID = strings.TrimSpace(entry.MBID)
	if entry.MBID == "" {
		return errors.New("curation entry mbid cannot be empty")
	}
	if entry.Kind != KindWork && entry.Kind != KindComposer {
		return fmt.Errorf("unknown curation kind %q", entry.Kind)
	}
	if l.path == "" {
		return nil
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[entry.key()] = entry
	if err := l.save(); err != nil {
		return fmt.Errorf("persist curation log: %w", err)
	}

	l.logger.Debug("recorded missing link",
		logging.String("kind", string(entry.Kind)),
		logging.String("mbid", entry.MBID),
		logging.String("url", entry.URL))
	return nil
}

// List returns all entries sorted by RecordedAt descending (newest first).
func (l *Log) List() []Entry {
	if l.path == "" {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.sortedLocked()
}

// Remove deletes the entry at the 1-based position reported by List.
func (l *Log) Remove(number int) (Entry, error) {
	if l.path == "" {
		return Entry{}, errors.New("curation log is disabled")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.sortedLocked()
	if number < 1 || number > len(entries) {
		return Entry{}, fmt.Errorf("entry %d not found (log has %d entries)", number, len(entries))
	}
	entry := entries[number-1]
	delete(l.entries, entry.key())

	if err := l.save(); err != nil {
		return Entry{}, fmt.Errorf("persist curation log: %w", err)
	}
	return entry, nil
}

// Clear removes all entries and persists the empty log.
func (l *Log) Clear() error {
	if l.path == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make(map[string]Entry)
	if err := l.save(); err != nil {
		return fmt.Errorf("persist curation log: %w", err)
	}
	return nil
}

// Count returns the number of entries.
func (l *Log) Count() int {
	if l.path == "" {
		return 0
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}

func (l *Log) sortedLocked() []Entry {
	entries := make([]Entry, 0, len(l.entries))
	for _, entry := range l.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].RecordedAt.Equal(entries[j].RecordedAt) {
			return entries[i].key() < entries[j].key()
		}
		return entries[i].RecordedAt.After(entries[j].RecordedAt)
	})
	return entries
}

func (l *Log) load() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read curation file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse curation file: %w", err)
	}

	l.entries = make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.MBID) != "" {
			l.entries[entry.key()] = entry
		}
	}

	l.logger.Debug("loaded curation log",
		logging.Int("entry_count", len(l.entries)),
		logging.String("path", l.path))
	return nil
}

// save writes the log atomically via a temp file.
func (l *Log) save() error {
	data, err := json.MarshalIndent(l.sortedLocked(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal curation log: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create curation directory: %w", err)
	}

	tmpPath := l.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
