package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// LayoutEntry represents a row in the homepage_layout table. Type selects
// which collection ReferenceID points into (see the Type constants);
// entries of any other type are freeform blocks and carry no reference.
type LayoutEntry struct {
	ID          int64     `db:"id"`
	Type        string    `db:"type"`
	ReferenceID *int64    `db:"reference_id"`
	Position    int       `db:"position"`
	CreatedAt   time.Time `db:"created_at"`
}

type LayoutStore struct {
	db *sqlx.DB
}

func NewLayoutStore(db *sqlx.DB) *LayoutStore {
	return &LayoutStore{db: db}
}

// Insert appends a layout entry at the end of the homepage ordering.
func (s *LayoutStore) Insert(ctx context.Context, entryType string, referenceID *int64) (*LayoutEntry, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	id, err := insertLayoutEntry(ctx, tx, entryType, referenceID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func insertLayoutEntry(ctx context.Context, tx *sqlx.Tx, entryType string, referenceID *int64) (int64, error) {
	var pos int
	if err := tx.GetContext(ctx, &pos, `SELECT COALESCE(MAX(position), -1) + 1 FROM homepage_layout`); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO homepage_layout (type, reference_id, position, created_at)
		VALUES (?, ?, ?, ?)
	`, entryType, referenceID, pos, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID returns the layout entry with the given id, or ErrNotFound.
func (s *LayoutStore) GetByID(ctx context.Context, id int64) (*LayoutEntry, error) {
	var e LayoutEntry
	err := s.db.GetContext(ctx, &e, `SELECT * FROM homepage_layout WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListOrdered returns all layout entries sorted by display position.
func (s *LayoutStore) ListOrdered(ctx context.Context) ([]*LayoutEntry, error) {
	var entries []*LayoutEntry
	err := s.db.SelectContext(ctx, &entries, `SELECT * FROM homepage_layout ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// UpsertFeatured points the singleton featured_video entry at videoID,
// creating it at the next position if none exists yet. The select and the
// write share a transaction so concurrent calls cannot create two featured
// entries.
func (s *LayoutStore) UpsertFeatured(ctx context.Context, videoID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.GetContext(ctx, &existingID,
		`SELECT id FROM homepage_layout WHERE type = ? ORDER BY id ASC LIMIT 1`, TypeFeaturedVideo)
	switch {
	case err == sql.ErrNoRows:
		if _, err := insertLayoutEntry(ctx, tx, TypeFeaturedVideo, &videoID); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if _, err := tx.ExecContext(ctx,
			`UPDATE homepage_layout SET reference_id = ? WHERE id = ?`, videoID, existingID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes a single layout entry.
func (s *LayoutStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM homepage_layout WHERE id = ?`, id)
	return err
}

// Reorder rewrites positions so the given ids appear in the given order.
func (s *LayoutStore) Reorder(ctx context.Context, ids []int64) error {
	return reorderRows(ctx, s.db, `UPDATE homepage_layout SET position = ? WHERE id = ?`, ids)
}
