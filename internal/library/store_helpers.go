package library

import (
	"database/sql"
	"errors"
	"time"
)

const itemColumns = "id, path, artist, title, mb_trackid, work_id, parent_work, parent_work_disambig, parent_composer, parent_composer_sort, created_at, updated_at"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id                 int64
		path               sql.NullString
		artist             string
		title              string
		recordingID        sql.NullString
		workID             sql.NullString
		parentWork         sql.NullString
		parentWorkDisambig sql.NullString
		parentComposer     sql.NullString
		parentComposerSort sql.NullString
		createdRaw         sql.NullString
		updatedRaw         sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&path,
		&artist,
		&title,
		&recordingID,
		&workID,
		&parentWork,
		&parentWorkDisambig,
		&parentComposer,
		&parentComposerSort,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:          id,
		Path:        path.String,
		Artist:      artist,
		Title:       title,
		RecordingID: recordingID.String,
		WorkID:      workID.String,
		ParentFields: ParentFields{
			Work:         parentWork.String,
			WorkDisambig: parentWorkDisambig.String,
			Composer:     parentComposer.String,
			ComposerSort: parentComposerSort.String,
		},
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		item.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		item.UpdatedAt = updated
	}
	return item, nil
}

func scanItems(rows *sql.Rows) ([]*Item, error) {
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
