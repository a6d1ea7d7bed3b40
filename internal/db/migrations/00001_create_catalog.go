package migrations

// The five catalog tables. Display order is governed entirely by the
// position column; insertion order is irrelevant. Tracks are scoped to
// their album, everything else is ordered across the whole collection.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCatalog, downCreateCatalog)
}

func upCreateCatalog(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS albums (
    id          %s,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    cover_path  TEXT NOT NULL DEFAULT '',
    position    INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMP NOT NULL
)`, pk()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS tracks (
    id         %s,
    album_id   BIGINT NOT NULL,
    title      TEXT NOT NULL,
    file_path  TEXT NOT NULL,
    position   INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
)`, pk()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS videos (
    id             %s,
    title          TEXT NOT NULL,
    file_path      TEXT NOT NULL,
    thumbnail_path TEXT NOT NULL DEFAULT '',
    description    TEXT NOT NULL DEFAULT '',
    position       INTEGER NOT NULL DEFAULT 0,
    created_at     TIMESTAMP NOT NULL
)`, pk()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS media (
    id         %s,
    title      TEXT NOT NULL,
    file_path  TEXT NOT NULL,
    kind       TEXT NOT NULL,
    position   INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
)`, pk()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS homepage_layout (
    id           %s,
    type         TEXT NOT NULL,
    reference_id BIGINT,
    position     INTEGER NOT NULL DEFAULT 0,
    created_at   TIMESTAMP NOT NULL
)`, pk()),
		`CREATE INDEX IF NOT EXISTS tracks_album_idx ON tracks (album_id, position)`,
		`CREATE INDEX IF NOT EXISTS albums_position_idx ON albums (position)`,
		`CREATE INDEX IF NOT EXISTS videos_position_idx ON videos (position)`,
		`CREATE INDEX IF NOT EXISTS media_position_idx ON media (position)`,
		`CREATE INDEX IF NOT EXISTS homepage_layout_position_idx ON homepage_layout (position)`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("create catalog tables: %w", err)
		}
	}
	return nil
}

func downCreateCatalog(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"homepage_layout", "media", "videos", "tracks", "albums"} {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return err
		}
	}
	return nil
}
