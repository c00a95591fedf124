// Package curation keeps a small JSON log of MusicBrainz links that were
// found missing while resolving parent works: recordings without a work and
// root works without a composer. Each entry carries the MusicBrainz edit URL
// so the data can be fixed upstream and the item re-fetched later.
package curation
