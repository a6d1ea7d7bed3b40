package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Track represents a row in the tracks table. A track belongs to exactly
// one album and its position is scoped to that album.
type Track struct {
	ID        int64     `db:"id"`
	AlbumID   int64     `db:"album_id"`
	Title     string    `db:"title"`
	FilePath  string    `db:"file_path"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}

type TrackStore struct {
	db *sqlx.DB
}

func NewTrackStore(db *sqlx.DB) *TrackStore {
	return &TrackStore{db: db}
}

// Insert appends a new track at the end of its album's track list.
func (s *TrackStore) Insert(ctx context.Context, albumID int64, title, filePath string) (*Track, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var pos int
	if err := tx.GetContext(ctx, &pos,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM tracks WHERE album_id = ?`, albumID); err != nil {
		return nil, err
	}
	id, err := insertTrack(ctx, tx, albumID, title, filePath, pos)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// InsertAt inserts a track at an explicit album-scoped position. Used when
// a caller numbers tracks itself (album bundle upload order).
func (s *TrackStore) InsertAt(ctx context.Context, albumID int64, title, filePath string, position int) (*Track, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	id, err := insertTrack(ctx, tx, albumID, title, filePath, position)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func insertTrack(ctx context.Context, tx *sqlx.Tx, albumID int64, title, filePath string, pos int) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO tracks (album_id, title, file_path, position, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, albumID, title, filePath, pos, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID returns the track with the given id, or ErrNotFound.
func (s *TrackStore) GetByID(ctx context.Context, id int64) (*Track, error) {
	var t Track
	err := s.db.GetContext(ctx, &t, `SELECT * FROM tracks WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByAlbum returns the album's tracks sorted by display position.
func (s *TrackStore) ListByAlbum(ctx context.Context, albumID int64) ([]*Track, error) {
	var tracks []*Track
	err := s.db.SelectContext(ctx, &tracks,
		`SELECT * FROM tracks WHERE album_id = ? ORDER BY position ASC, id ASC`, albumID)
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

// Update renames a track. Position and album membership never change here.
func (s *TrackStore) Update(ctx context.Context, id int64, title string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE tracks SET title = ? WHERE id = ?`, title, id)
	return err
}

// Delete removes a single track row.
func (s *TrackStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tracks WHERE id = ?`, id)
	return err
}

// Reorder rewrites the album-scoped positions of the given track ids. The
// album scope is mandatory: positions in one album are independent of every
// other album's.
func (s *TrackStore) Reorder(ctx context.Context, albumID int64, ids []int64) error {
	if albumID <= 0 {
		return fmt.Errorf("%w: track reorder needs an album id", ErrInvalidScope)
	}
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for pos, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE tracks SET position = ? WHERE id = ? AND album_id = ?`, pos, id, albumID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
