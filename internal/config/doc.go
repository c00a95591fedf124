// Package config loads, normalizes, and validates parentwork configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the MUSICBRAINZ_BASE_URL
// environment override. The Config type centralizes every knob the CLI and the
// import hook need so the library database, the MusicBrainz endpoint, and the
// auto/force toggles are discovered in one pass.
package config
