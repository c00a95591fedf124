package musicbrainz

const (
	relationParts     = "parts"
	relationComposer  = "composer"
	directionBackward = "backward"
)

// ParentID returns the id of the work this work is a part of. Only the first
// backward "parts" relation counts.
func (w *Work) ParentID() (string, bool) {
	if w == nil {
		return "", false
	}
	for _, rel := range w.Relations {
		if rel.Type != relationParts || rel.Direction != directionBackward {
			continue
		}
		if rel.Work == nil || rel.Work.ID == "" {
			continue
		}
		return rel.Work.ID, true
	}
	return "", false
}

// Composers returns the artists attached through composer relations, in
// relation order. Duplicates are preserved.
func (w *Work) Composers() []Artist {
	if w == nil {
		return nil
	}
	var composers []Artist
	for _, rel := range w.Relations {
		if rel.Type != relationComposer || rel.Artist == nil {
			continue
		}
		composers = append(composers, *rel.Artist)
	}
	return composers
}
