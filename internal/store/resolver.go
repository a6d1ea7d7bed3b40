package store

import (
	"context"
	"errors"
)

// LayoutRef is the typed form of a layout entry's (type, reference_id)
// pair. Exactly one of the concrete variants below implements it.
type LayoutRef interface {
	layoutRef()
}

// AlbumRef points at an album.
type AlbumRef struct{ ID int64 }

// VideoRef points at a video.
type VideoRef struct{ ID int64 }

// FeaturedVideoRef points at the highlighted video.
type FeaturedVideoRef struct{ ID int64 }

// MediaRef points at a standalone media entry.
type MediaRef struct{ ID int64 }

// FreeformRef is a layout-only block with no reference semantics: either a
// non-referencing block type, or a referencing type whose id is absent.
type FreeformRef struct{ Block string }

func (AlbumRef) layoutRef()         {}
func (VideoRef) layoutRef()         {}
func (FeaturedVideoRef) layoutRef() {}
func (MediaRef) layoutRef()         {}
func (FreeformRef) layoutRef()      {}

// Ref converts the entry's raw type tag and reference id into a LayoutRef.
func (e *LayoutEntry) Ref() LayoutRef {
	if e.ReferenceID == nil {
		return FreeformRef{Block: e.Type}
	}
	switch e.Type {
	case TypeAlbum:
		return AlbumRef{ID: *e.ReferenceID}
	case TypeVideo:
		return VideoRef{ID: *e.ReferenceID}
	case TypeFeaturedVideo:
		return FeaturedVideoRef{ID: *e.ReferenceID}
	case TypeMedia:
		return MediaRef{ID: *e.ReferenceID}
	default:
		return FreeformRef{Block: e.Type}
	}
}

// Resolver looks up human-readable labels for layout entries. Pure read.
type Resolver struct {
	albums *AlbumStore
	videos *VideoStore
	media  *MediaStore
}

func NewResolver(albums *AlbumStore, videos *VideoStore, media *MediaStore) *Resolver {
	return &Resolver{albums: albums, videos: videos, media: media}
}

// ResolveLabel returns the title of the row a layout entry references.
// Freeform entries and dangling references (the referenced row was deleted
// after the entry was created) resolve to "" rather than an error.
func (r *Resolver) ResolveLabel(ctx context.Context, e *LayoutEntry) (string, error) {
	switch ref := e.Ref().(type) {
	case AlbumRef:
		a, err := r.albums.GetByID(ctx, ref.ID)
		if err != nil {
			return "", ignoreDangling(err)
		}
		return a.Title, nil
	case VideoRef:
		v, err := r.videos.GetByID(ctx, ref.ID)
		if err != nil {
			return "", ignoreDangling(err)
		}
		return v.Title, nil
	case FeaturedVideoRef:
		v, err := r.videos.GetByID(ctx, ref.ID)
		if err != nil {
			return "", ignoreDangling(err)
		}
		return v.Title, nil
	case MediaRef:
		m, err := r.media.GetByID(ctx, ref.ID)
		if err != nil {
			return "", ignoreDangling(err)
		}
		return m.Title, nil
	default:
		return "", nil
	}
}

// ignoreDangling maps ErrNotFound to nil: a reference whose target was
// deleted resolves to an empty label, not a failure.
func ignoreDangling(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
