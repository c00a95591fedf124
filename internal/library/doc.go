// Package library persists music library items in SQLite and exposes the
// read/write operations the parent work processor needs.
//
// Each Item carries its MusicBrainz recording and work identifiers plus the
// four parent work fields that parentwork owns. StoreParentFields writes those
// four columns in a single statement so an item never ends up half updated.
// Query implements the small selection language used by the CLI
// (`field:value` terms and bare words, ANDed).
//
// Schema changes bump the version in schema.go; users clear the database to
// adopt the new schema.
package library
