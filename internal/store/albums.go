package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// Album represents a row in the albums table. An album owns an ordered set
// of tracks; CoverPath names a stored asset when non-empty.
type Album struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	CoverPath   string    `db:"cover_path"`
	Position    int       `db:"position"`
	CreatedAt   time.Time `db:"created_at"`
}

type AlbumStore struct {
	db *sqlx.DB
}

func NewAlbumStore(db *sqlx.DB) *AlbumStore {
	return &AlbumStore{db: db}
}

// Insert appends a new album at the end of the collection.
func (s *AlbumStore) Insert(ctx context.Context, title, description, coverPath string) (*Album, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var pos int
	if err := tx.GetContext(ctx, &pos, `SELECT COALESCE(MAX(position), -1) + 1 FROM albums`); err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO albums (title, description, cover_path, position, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, title, description, coverPath, pos, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the album with the given id, or ErrNotFound.
func (s *AlbumStore) GetByID(ctx context.Context, id int64) (*Album, error) {
	var a Album
	err := s.db.GetContext(ctx, &a, `SELECT * FROM albums WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListOrdered returns all albums sorted by display position.
func (s *AlbumStore) ListOrdered(ctx context.Context) ([]*Album, error) {
	var albums []*Album
	err := s.db.SelectContext(ctx, &albums, `SELECT * FROM albums ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return albums, nil
}

// Update mutates title and description, and the cover reference when cover
// is non-nil. Position is never touched here; only Reorder moves rows.
func (s *AlbumStore) Update(ctx context.Context, id int64, title, description string, cover *string) error {
	var err error
	if cover != nil {
		_, err = s.db.ExecContext(ctx,
			`UPDATE albums SET title = ?, description = ?, cover_path = ? WHERE id = ?`,
			title, description, *cover, id)
	} else {
		_, err = s.db.ExecContext(ctx,
			`UPDATE albums SET title = ?, description = ? WHERE id = ?`,
			title, description, id)
	}
	return err
}

// Delete removes the album and cascades to all its tracks in one
// transaction. Stored-asset cleanup is the caller's concern.
func (s *AlbumStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tracks WHERE album_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Reorder rewrites positions so the given ids appear in the given order.
// Ids not present keep their old positions; their placement relative to the
// reordered ids is unspecified.
func (s *AlbumStore) Reorder(ctx context.Context, ids []int64) error {
	return reorderRows(ctx, s.db, `UPDATE albums SET position = ? WHERE id = ?`, ids)
}
