package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// Video represents a row in the videos table. FilePath names a stored
// asset. ThumbnailPath is a raw reference: it may name a stored asset or be
// an external URL, and is never validated against the blob store.
type Video struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	FilePath      string    `db:"file_path"`
	ThumbnailPath string    `db:"thumbnail_path"`
	Description   string    `db:"description"`
	Position      int       `db:"position"`
	CreatedAt     time.Time `db:"created_at"`
}

type VideoStore struct {
	db *sqlx.DB
}

func NewVideoStore(db *sqlx.DB) *VideoStore {
	return &VideoStore{db: db}
}

// Insert appends a new video at the end of the collection.
func (s *VideoStore) Insert(ctx context.Context, title, filePath, thumbnailPath, description string) (*Video, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var pos int
	if err := tx.GetContext(ctx, &pos, `SELECT COALESCE(MAX(position), -1) + 1 FROM videos`); err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO videos (title, file_path, thumbnail_path, description, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, title, filePath, thumbnailPath, description, pos, time.Now().UTC())
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

// GetByID returns the video with the given id, or ErrNotFound.
func (s *VideoStore) GetByID(ctx context.Context, id int64) (*Video, error) {
	var v Video
	err := s.db.GetContext(ctx, &v, `SELECT * FROM videos WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListOrdered returns all videos sorted by display position.
func (s *VideoStore) ListOrdered(ctx context.Context) ([]*Video, error) {
	var videos []*Video
	err := s.db.SelectContext(ctx, &videos, `SELECT * FROM videos ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// Update mutates the text fields and thumbnail reference, and the asset
// reference when filePath is non-nil. Position is never touched here.
func (s *VideoStore) Update(ctx context.Context, id int64, title, description, thumbnailPath string, filePath *string) error {
	var err error
	if filePath != nil {
		_, err = s.db.ExecContext(ctx,
			`UPDATE videos SET title = ?, description = ?, file_path = ?, thumbnail_path = ? WHERE id = ?`,
			title, description, *filePath, thumbnailPath, id)
	} else {
		_, err = s.db.ExecContext(ctx,
			`UPDATE videos SET title = ?, description = ?, thumbnail_path = ? WHERE id = ?`,
			title, description, thumbnailPath, id)
	}
	return err
}

// Delete removes a single video row.
func (s *VideoStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	return err
}

// Reorder rewrites positions so the given ids appear in the given order.
func (s *VideoStore) Reorder(ctx context.Context, ids []int64) error {
	return reorderRows(ctx, s.db, `UPDATE videos SET position = ? WHERE id = ?`, ids)
}
