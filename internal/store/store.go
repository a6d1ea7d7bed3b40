// Package store persists the five catalog collections (albums, tracks,
// videos, media, homepage layout) and their ordering. Display order is
// governed by the position column: inserts append at max+1 within their
// scope, reorders rewrite positions transactionally, and reads sort by
// (position, id) so ties break deterministically.
//
// No handler queries the database directly; all access goes through these
// stores.
package store

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidScope is returned when an operation that requires a scope
	// (track reorder needs an album id) is called without one.
	ErrInvalidScope = errors.New("scope required for this collection")
)

// Layout entry types with id-bearing reference semantics. Any other type
// value is a freeform layout-only block.
const (
	TypeAlbum         = "album"
	TypeVideo         = "video"
	TypeFeaturedVideo = "featured_video"
	TypeMedia         = "media"
)

// reorderRows sets position = index for each id, inside one transaction so
// a reorder is never observable half-applied.
func reorderRows(ctx context.Context, db *sqlx.DB, query string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for pos, id := range ids {
		if _, err := tx.ExecContext(ctx, query, pos, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}
