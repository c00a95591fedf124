// Package services defines shared utilities consumed by the parent work
// processor and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp library item IDs, the processing origin, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper so remote and storage
//     failures can be classified consistently in logs and CLI output.
package services
