// Package main hosts the parentwork CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, opens the library
// database, and hands selected items to the parentwork processor. Import,
// listing, curation, and preflight commands surface the supporting internal
// packages. Configuration resolution and logger setup are centralized in the
// command context so subcommands only deal with their own flags and output.
package main
