package parentwork_test

import (
	"context"
	"fmt"
	"sync"

	"parentwork/internal/curation"
	"parentwork/internal/library"
	"parentwork/internal/musicbrainz"
	"parentwork/internal/services"
)

// stubLookup serves works from memory and counts remote calls.
type stubLookup struct {
	mu          sync.Mutex
	works       map[string]*musicbrainz.Work
	failures    map[string]error
	workCalls   int
	artistCalls int
}

func newStubLookup(works ...*musicbrainz.Work) *stubLookup {
	s := &stubLookup{works: map[string]*musicbrainz.Work{}, failures: map[string]error{}}
	for _, w := range works {
		s.works[w.ID] = w
	}
	return s
}

func (s *stubLookup) fail(id string) {
	s.failures[id] = services.Wrap(musicbrainz.ErrService, "musicbrainz", "lookup work", "status 503", services.ErrTransient)
}

func (s *stubLookup) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workCalls + s.artistCalls
}

func (s *stubLookup) get(id string) (*musicbrainz.Work, error) {
	if err, ok := s.failures[id]; ok {
		return nil, err
	}
	w, ok := s.works[id]
	if !ok {
		return nil, fmt.Errorf("%w: work %s: %w", musicbrainz.ErrService, id, services.ErrNotFound)
	}
	return w, nil
}

func (s *stubLookup) WorkWithWorkRelations(_ context.Context, id string) (*musicbrainz.Work, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workCalls++
	return s.get(id)
}

func (s *stubLookup) WorkWithArtistRelations(_ context.Context, id string) (*musicbrainz.Work, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artistCalls++
	return s.get(id)
}

// memStore keeps items in memory.
type memStore struct {
	items     map[int64]library.Item
	stores    int
	storeErr  error
	reloadErr error
}

func newMemStore(items ...*library.Item) *memStore {
	m := &memStore{items: map[int64]library.Item{}}
	for _, item := range items {
		m.items[item.ID] = *item
	}
	return m
}

func (m *memStore) Reload(_ context.Context, item *library.Item) error {
	if m.reloadErr != nil {
		return m.reloadErr
	}
	stored, ok := m.items[item.ID]
	if !ok {
		return library.ErrNotFound
	}
	*item = stored
	return nil
}

func (m *memStore) StoreParentFields(_ context.Context, item *library.Item) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	stored := m.items[item.ID]
	stored.ParentFields = item.ParentFields
	m.items[item.ID] = stored
	m.stores++
	return nil
}

type memCuration struct {
	entries []curation.Entry
}

func (m *memCuration) Record(entry curation.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func work(id, title, disambig string, rels ...musicbrainz.Relation) *musicbrainz.Work {
	return &musicbrainz.Work{ID: id, Title: title, Disambiguation: disambig, Relations: rels}
}

func partOf(parentID string) musicbrainz.Relation {
	return musicbrainz.Relation{
		Type:       "parts",
		Direction:  "backward",
		TargetType: "work",
		Work:       &musicbrainz.Work{ID: parentID},
	}
}

func hasPart(childID string) musicbrainz.Relation {
	return musicbrainz.Relation{
		Type:       "parts",
		Direction:  "forward",
		TargetType: "work",
		Work:       &musicbrainz.Work{ID: childID},
	}
}

func composedBy(id, name, sortName string) musicbrainz.Relation {
	return musicbrainz.Relation{
		Type:       "composer",
		Direction:  "backward",
		TargetType: "artist",
		Artist:     &musicbrainz.Artist{ID: id, Name: name, SortName: sortName},
	}
}
