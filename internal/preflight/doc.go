// Package preflight provides readiness checks for the filesystem paths and
// external services parentwork depends on.
//
// The CLI "parentwork check" command runs RunAll and renders each Result.
// "parentwork fetch" runs RunLocal first and refuses to start a batch when a
// required local check fails. MusicBrainz reachability is left out of fetch:
// when the service is down, items already holding parent data still count as
// cached and the rest are reported as unreachable per item.
package preflight
