package parentwork

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"parentwork/internal/library"
	"parentwork/internal/musicbrainz"
)

// ListSeparator joins accumulated values into display strings.
const ListSeparator = ", "

// Accumulator collects parent metadata across the root works of one item.
// The zero value is empty and ready to use. Add never mutates its receiver.
type Accumulator struct {
	works         []string
	disambigs     []string
	composers     []string
	composerSorts []string
	seenWorks     map[string]struct{}
	seenComposers map[string]struct{}
}

// Add folds a root work into the accumulator and returns the new state.
// composerFound is false when the work carries no composer relation at all.
func (a Accumulator) Add(work *musicbrainz.Work) (Accumulator, bool) {
	if work == nil {
		return a, false
	}
	next := a.clone()

	composers := work.Composers()
	for _, composer := range composers {
		key := composer.ID
		if key == "" {
			key = "name:" + composer.Name
		}
		if _, seen := next.seenComposers[key]; seen {
			continue
		}
		next.seenComposers[key] = struct{}{}
		next.composers = append(next.composers, nfc(composer.Name))
		next.composerSorts = append(next.composerSorts, nfc(composer.SortName))
	}

	if _, seen := next.seenWorks[work.ID]; !seen {
		next.seenWorks[work.ID] = struct{}{}
		next.works = append(next.works, nfc(work.Title))
		if disambig := strings.TrimSpace(work.Disambiguation); disambig != "" {
			next.disambigs = append(next.disambigs, nfc(disambig))
		}
	}
	return next, len(composers) > 0
}

// Fields joins the accumulated lists into the values stored on an item.
func (a Accumulator) Fields() library.ParentFields {
	return library.ParentFields{
		Work:         strings.Join(a.works, ListSeparator),
		WorkDisambig: strings.Join(a.disambigs, ListSeparator),
		Composer:     strings.Join(a.composers, ListSeparator),
		ComposerSort: strings.Join(a.composerSorts, ListSeparator),
	}
}

// Len returns the number of distinct root works folded in.
func (a Accumulator) Len() int {
	return len(a.seenWorks)
}

func (a Accumulator) clone() Accumulator {
	return Accumulator{
		works:         slices.Clone(a.works),
		disambigs:     slices.Clone(a.disambigs),
		composers:     slices.Clone(a.composers),
		composerSorts: slices.Clone(a.composerSorts),
		seenWorks:     cloneSet(a.seenWorks),
		seenComposers: cloneSet(a.seenComposers),
	}
}

func cloneSet(set map[string]struct{}) map[string]struct{} {
	if set == nil {
		return make(map[string]struct{})
	}
	return maps.Clone(set)
}

func nfc(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}
