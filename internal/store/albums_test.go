package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/philres/curio/internal/store"
	"github.com/philres/curio/internal/testutil"
)

func newAlbumEnv(t *testing.T) (*store.AlbumStore, *store.TrackStore) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return store.NewAlbumStore(db), store.NewTrackStore(db)
}

func TestAlbumInsertAssignsNextPosition(t *testing.T) {
	albums, _ := newAlbumEnv(t)
	ctx := context.Background()

	first, err := albums.Insert(ctx, "First", "", "")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if first.Position != 0 {
		t.Errorf("first position = %d, want 0", first.Position)
	}

	second, err := albums.Insert(ctx, "Second", "desc", "cover.png")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if second.Position != 1 {
		t.Errorf("second position = %d, want 1", second.Position)
	}
	if second.CoverPath != "cover.png" {
		t.Errorf("cover = %q, want cover.png", second.CoverPath)
	}
}

func TestAlbumGetByIDMissing(t *testing.T) {
	albums, _ := newAlbumEnv(t)
	if _, err := albums.GetByID(context.Background(), 9999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAlbumListOrdered(t *testing.T) {
	albums, _ := newAlbumEnv(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		if _, err := albums.Insert(ctx, title, "", ""); err != nil {
			t.Fatalf("Insert %s: %v", title, err)
		}
	}

	got, err := albums.ListOrdered(ctx)
	if err != nil {
		t.Fatalf("ListOrdered: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"A", "B", "C"} {
		if got[i].Title != want {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestAlbumReorder(t *testing.T) {
	albums, _ := newAlbumEnv(t)
	ctx := context.Background()

	var ids []int64
	for _, title := range []string{"A", "B", "C"} {
		a, err := albums.Insert(ctx, title, "", "")
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		ids = append(ids, a.ID)
	}

	// Submit order C, A, B.
	if err := albums.Reorder(ctx, []int64{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	got, err := albums.ListOrdered(ctx)
	if err != nil {
		t.Fatalf("ListOrdered: %v", err)
	}
	want := []int64{ids[2], ids[0], ids[1]}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("position %d: id = %d, want %d", i, got[i].ID, want[i])
		}
	}
}

func TestAlbumUpdateLeavesPosition(t *testing.T) {
	albums, _ := newAlbumEnv(t)
	ctx := context.Background()

	if _, err := albums.Insert(ctx, "A", "", ""); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	b, err := albums.Insert(ctx, "B", "old", "old.png")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := albums.Update(ctx, b.ID, "B2", "new", nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := albums.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "B2" || got.Description != "new" {
		t.Errorf("got %q/%q, want B2/new", got.Title, got.Description)
	}
	if got.CoverPath != "old.png" {
		t.Errorf("cover changed to %q without replacement", got.CoverPath)
	}
	if got.Position != b.Position {
		t.Errorf("position moved from %d to %d on update", b.Position, got.Position)
	}

	cover := "new.png"
	if err := albums.Update(ctx, b.ID, "B2", "new", &cover); err != nil {
		t.Fatalf("Update with cover: %v", err)
	}
	got, err = albums.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CoverPath != "new.png" {
		t.Errorf("cover = %q, want new.png", got.CoverPath)
	}
}

func TestAlbumDeleteCascadesToTracks(t *testing.T) {
	albums, tracks := newAlbumEnv(t)
	ctx := context.Background()

	a, err := albums.Insert(ctx, "Doomed", "", "")
	if err != nil {
		t.Fatalf("Insert album: %v", err)
	}
	for _, title := range []string{"one", "two"} {
		if _, err := tracks.Insert(ctx, a.ID, title, title+".mp3"); err != nil {
			t.Fatalf("Insert track: %v", err)
		}
	}

	if err := albums.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := albums.GetByID(ctx, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("album still present: %v", err)
	}
	left, err := tracks.ListByAlbum(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListByAlbum: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("%d tracks survived album delete", len(left))
	}
}
