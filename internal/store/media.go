package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// Media represents a row in the media table: a standalone asset entry not
// owned by any album or video.
type Media struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	FilePath  string    `db:"file_path"`
	Kind      string    `db:"kind"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}

type MediaStore struct {
	db *sqlx.DB
}

func NewMediaStore(db *sqlx.DB) *MediaStore {
	return &MediaStore{db: db}
}

// Insert appends a new media entry at the end of the collection.
func (s *MediaStore) Insert(ctx context.Context, title, filePath, kind string) (*Media, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var pos int
	if err := tx.GetContext(ctx, &pos, `SELECT COALESCE(MAX(position), -1) + 1 FROM media`); err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO media (title, file_path, kind, position, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, title, filePath, kind, pos, time.Now().UTC())
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

// GetByID returns the media entry with the given id, or ErrNotFound.
func (s *MediaStore) GetByID(ctx context.Context, id int64) (*Media, error) {
	var m Media
	err := s.db.GetContext(ctx, &m, `SELECT * FROM media WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListOrdered returns all media entries sorted by display position.
func (s *MediaStore) ListOrdered(ctx context.Context) ([]*Media, error) {
	var media []*Media
	err := s.db.SelectContext(ctx, &media, `SELECT * FROM media ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return media, nil
}

// Update renames a media entry.
func (s *MediaStore) Update(ctx context.Context, id int64, title string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE media SET title = ? WHERE id = ?`, title, id)
	return err
}

// Delete removes a single media row.
func (s *MediaStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	return err
}

// Reorder rewrites positions so the given ids appear in the given order.
func (s *MediaStore) Reorder(ctx context.Context, ids []int64) error {
	return reorderRows(ctx, s.db, `UPDATE media SET position = ? WHERE id = ?`, ids)
}
