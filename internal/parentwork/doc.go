// Package parentwork resolves the root parent work of MusicBrainz works and
// writes the aggregated parent work, disambiguation, and composer fields back
// to library items.
//
// The Resolver walks backward "parts" relations until it reaches a work with
// no parent. The Accumulator folds root works into deduplicated display lists.
// The Processor ties both to the library store, recording missing links in
// the curation log, and the ImportHook runs it automatically for freshly
// imported items.
package parentwork
