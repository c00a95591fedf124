package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMusicBrainz(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LibraryDB) == "" {
		return errors.New("paths.library_db must be set")
	}
	return nil
}

func (c *Config) validateMusicBrainz() error {
	parsed, err := url.Parse(c.MusicBrainz.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("musicbrainz.base_url must be an absolute URL, got %q", c.MusicBrainz.BaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("musicbrainz.base_url must use http or https, got %q", parsed.Scheme)
	}
	if c.MusicBrainz.RequestsPerSecond < 0 || c.MusicBrainz.RequestsPerSecond > maxMusicBrainzRequestsPerSecond {
		return fmt.Errorf("musicbrainz.requests_per_second must be between 0 and %.0f", maxMusicBrainzRequestsPerSecond)
	}
	if c.MusicBrainz.TimeoutSeconds <= 0 {
		return errors.New("musicbrainz.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
