// Package musicbrainz provides the minimal MusicBrainz web service client
// used for parent work lookups.
//
// It fetches work resources with either work-to-work or artist relations,
// sends the User-Agent MusicBrainz requires, and paces requests with a token
// bucket (one request per second by default) to honour the service's rate
// policy. Every failure is tagged with ErrService so callers can abort a
// single item without inspecting transport details.
package musicbrainz
