package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SeedSampleAlbum inserts a starter album into an empty catalog so a fresh
// install renders a non-empty homepage. No-op once any album exists.
func SeedSampleAlbum(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(1) FROM albums`); err != nil {
		return fmt.Errorf("count albums: %w", err)
	}
	if n > 0 {
		return nil
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO albums (title, description, cover_path, position, created_at) VALUES (?, ?, ?, ?, ?)`,
		"Genesis (sample)", "A demo album to get you started.", "", 0, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("seed sample album: %w", err)
	}
	return nil
}
