package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/philres/curio/internal/store"
	"github.com/philres/curio/internal/testutil"
)

func TestTrackPositionsScopedPerAlbum(t *testing.T) {
	db := testutil.NewTestDB(t)
	albums := store.NewAlbumStore(db)
	tracks := store.NewTrackStore(db)
	ctx := context.Background()

	a1, err := albums.Insert(ctx, "One", "", "")
	if err != nil {
		t.Fatalf("Insert album: %v", err)
	}
	a2, err := albums.Insert(ctx, "Two", "", "")
	if err != nil {
		t.Fatalf("Insert album: %v", err)
	}

	// Interleave inserts across albums; each scope counts independently.
	t1a, _ := tracks.Insert(ctx, a1.ID, "1a", "1a.mp3")
	t2a, _ := tracks.Insert(ctx, a2.ID, "2a", "2a.mp3")
	t1b, _ := tracks.Insert(ctx, a1.ID, "1b", "1b.mp3")
	t2b, _ := tracks.Insert(ctx, a2.ID, "2b", "2b.mp3")

	if t1a.Position != 0 || t1b.Position != 1 {
		t.Errorf("album one positions = %d,%d, want 0,1", t1a.Position, t1b.Position)
	}
	if t2a.Position != 0 || t2b.Position != 1 {
		t.Errorf("album two positions = %d,%d, want 0,1", t2a.Position, t2b.Position)
	}
}

func TestTrackReorderRequiresScope(t *testing.T) {
	db := testutil.NewTestDB(t)
	tracks := store.NewTrackStore(db)

	err := tracks.Reorder(context.Background(), 0, []int64{1, 2})
	if !errors.Is(err, store.ErrInvalidScope) {
		t.Errorf("err = %v, want ErrInvalidScope", err)
	}
}

func TestTrackReorderStaysInScope(t *testing.T) {
	db := testutil.NewTestDB(t)
	albums := store.NewAlbumStore(db)
	tracks := store.NewTrackStore(db)
	ctx := context.Background()

	a1, _ := albums.Insert(ctx, "One", "", "")
	a2, _ := albums.Insert(ctx, "Two", "", "")

	var ids []int64
	for _, title := range []string{"a", "b", "c"} {
		tr, err := tracks.Insert(ctx, a1.ID, title, title+".mp3")
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		ids = append(ids, tr.ID)
	}
	other, err := tracks.Insert(ctx, a2.ID, "other", "other.mp3")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// Reorder album one as c, a, b and sneak in the other album's track id;
	// the scope filter must leave it untouched.
	if err := tracks.Reorder(ctx, a1.ID, []int64{ids[2], ids[0], other.ID, ids[1]}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	got, err := tracks.ListByAlbum(ctx, a1.ID)
	if err != nil {
		t.Fatalf("ListByAlbum: %v", err)
	}
	want := []int64{ids[2], ids[0], ids[1]}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("position %d: id = %d, want %d", i, got[i].ID, want[i])
		}
	}

	after, err := tracks.GetByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if after.Position != other.Position {
		t.Errorf("foreign-scope track moved: %d -> %d", other.Position, after.Position)
	}
}

func TestTrackUpdateRenamesOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	albums := store.NewAlbumStore(db)
	tracks := store.NewTrackStore(db)
	ctx := context.Background()

	album, _ := albums.Insert(ctx, "One", "", "")
	track, err := tracks.Insert(ctx, album.ID, "Draft", "draft.mp3")
	if err != nil {
		t.Fatalf("Insert track: %v", err)
	}

	if err := tracks.Update(ctx, track.ID, "Final"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := tracks.GetByID(ctx, track.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Final" {
		t.Errorf("title = %q, want Final", got.Title)
	}
	if got.Position != track.Position || got.AlbumID != track.AlbumID || got.FilePath != track.FilePath {
		t.Errorf("rename touched position/album/asset: %+v", got)
	}
}

func TestTrackInsertAtExplicitPosition(t *testing.T) {
	db := testutil.NewTestDB(t)
	albums := store.NewAlbumStore(db)
	tracks := store.NewTrackStore(db)
	ctx := context.Background()

	a, _ := albums.Insert(ctx, "Bundle", "", "")
	for i, title := range []string{"x", "y", "z"} {
		tr, err := tracks.InsertAt(ctx, a.ID, title, title+".mp3", i)
		if err != nil {
			t.Fatalf("InsertAt: %v", err)
		}
		if tr.Position != i {
			t.Errorf("position = %d, want %d", tr.Position, i)
		}
	}
}
