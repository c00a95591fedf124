package parentwork

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parentwork/internal/musicbrainz"
	"parentwork/internal/services"
)

// ErrCyclicRelationship reports a parts chain that loops back on itself.
var ErrCyclicRelationship = errors.New("cyclic work relationship")

// Resolver follows work-to-parent relations through MusicBrainz.
type Resolver struct {
	mb musicbrainz.Lookup
}

// NewResolver wraps a MusicBrainz lookup.
func NewResolver(mb musicbrainz.Lookup) *Resolver {
	return &Resolver{mb: mb}
}

// ParentOf returns the direct parent of workID, if it has one.
func (r *Resolver) ParentOf(ctx context.Context, workID string) (string, bool, error) {
	work, err := r.mb.WorkWithWorkRelations(ctx, workID)
	if err != nil {
		return "", false, err
	}
	parentID, ok := work.ParentID()
	return parentID, ok, nil
}

// ResolveRoot walks up the parts hierarchy from workID and returns the id of
// the first work without a parent. A work that is already a root resolves to
// itself.
func (r *Resolver) ResolveRoot(ctx context.Context, workID string) (string, error) {
	current := strings.TrimSpace(workID)
	if current == "" {
		return "", services.Wrap(services.ErrValidation, "parentwork", "resolve root", "work id is empty", nil)
	}

	visited := map[string]struct{}{}
	for {
		if _, seen := visited[current]; seen {
			return "", fmt.Errorf("%w: work %s reached twice from %s", ErrCyclicRelationship, current, workID)
		}
		visited[current] = struct{}{}

		parentID, ok, err := r.ParentOf(ctx, current)
		if err != nil {
			return "", err
		}
		if !ok {
			return current, nil
		}
		current = parentID
	}
}

// FetchParentMetadata resolves the root of workID and returns it with its
// artist relations.
func (r *Resolver) FetchParentMetadata(ctx context.Context, workID string) (*musicbrainz.Work, error) {
	rootID, err := r.ResolveRoot(ctx, workID)
	if err != nil {
		return nil, err
	}
	return r.mb.WorkWithArtistRelations(ctx, rootID)
}
