package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when an item id does not exist.
var ErrNotFound = errors.New("library item not found")

// Add inserts a new item and returns it with its assigned id.
func (s *Store) Add(ctx context.Context, item *Item) (*Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO library_items (
            path, artist, title, mb_trackid, work_id,
            parent_work, parent_work_disambig, parent_composer, parent_composer_sort,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableString(strings.TrimSpace(item.Path)),
		strings.TrimSpace(item.Artist),
		strings.TrimSpace(item.Title),
		nullableString(strings.TrimSpace(item.RecordingID)),
		nullableString(strings.TrimSpace(item.WorkID)),
		nullableString(item.ParentFields.Work),
		nullableString(item.ParentFields.WorkDisambig),
		nullableString(item.ParentFields.Composer),
		nullableString(item.ParentFields.ComposerSort),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches an item by identifier. It returns ErrNotFound when the id
// does not exist.
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+itemColumns+` FROM library_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Reload refreshes item in place from the database so processing sees the
// latest stored values.
func (s *Store) Reload(ctx context.Context, item *Item) error {
	if item == nil {
		return errors.New("item is nil")
	}
	fresh, err := s.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	*item = *fresh
	return nil
}

// StoreParentFields persists the four parent work columns of item in one
// statement.
func (s *Store) StoreParentFields(ctx context.Context, item *Item) error {
	if item == nil {
		return errors.New("item is nil")
	}
	item.UpdatedAt = time.Now().UTC()
	res, err := s.execWithRetry(
		ctx,
		`UPDATE library_items
         SET parent_work = ?, parent_work_disambig = ?, parent_composer = ?,
             parent_composer_sort = ?, updated_at = ?
         WHERE id = ?`,
		nullableString(item.ParentFields.Work),
		nullableString(item.ParentFields.WorkDisambig),
		nullableString(item.ParentFields.Composer),
		nullableString(item.ParentFields.ComposerSort),
		item.UpdatedAt.Format(time.RFC3339Nano),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("store parent fields: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store parent fields: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, item.ID)
	}
	return nil
}

// Query returns items matching every term, ordered by id. No terms selects
// the whole library.
func (s *Store) Query(ctx context.Context, terms ...string) ([]*Item, error) {
	where, args, err := buildQuery(terms)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + itemColumns + ` FROM library_items`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return scanItems(rows)
}

// Count returns the number of items in the library.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ensureContext(ctx), `SELECT COUNT(1) FROM library_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}
