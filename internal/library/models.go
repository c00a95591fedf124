package library

import (
	"strings"
	"time"
)

// WorkIDSeparator separates multiple work ids stored on one item.
const WorkIDSeparator = ", "

// ParentFields are the four values parentwork writes back to an item.
type ParentFields struct {
	Work         string `json:"parent_work"`
	WorkDisambig string `json:"parent_work_disambig"`
	Composer     string `json:"parent_composer"`
	ComposerSort string `json:"parent_composer_sort"`
}

// Item is a single track in the music library.
type Item struct {
	ID          int64  `json:"id"`
	Path        string `json:"path,omitempty"`
	Artist      string `json:"artist"`
	Title       string `json:"title"`
	RecordingID string `json:"mb_trackid,omitempty"`
	WorkID      string `json:"work_id,omitempty"`
	ParentFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkIDs splits the work id field into individual identifiers.
func (i *Item) WorkIDs() []string {
	if i == nil || strings.TrimSpace(i.WorkID) == "" {
		return nil
	}
	parts := strings.Split(i.WorkID, WorkIDSeparator)
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

// HasWork reports whether the item is associated with at least one work.
func (i *Item) HasWork() bool {
	return len(i.WorkIDs()) > 0
}

// HasParentWork reports whether parent work data was already stored.
func (i *Item) HasParentWork() bool {
	return i != nil && strings.TrimSpace(i.ParentFields.Work) != ""
}

// Label renders "artist - title" for log and CLI output.
func (i *Item) Label() string {
	if i == nil {
		return ""
	}
	return i.Artist + " - " + i.Title
}
