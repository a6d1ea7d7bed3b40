// Package library composes the blob store and the catalog stores into the
// compound operations the admin surface exposes: create an album with its
// cover, replace a video's file, delete an album and everything it owns.
//
// Ordering of effects is fixed: validation happens before any side effect,
// blob writes happen before the catalog rows that reference them (a failed
// write aborts the operation, never leaving a row pointing at a never-stored
// asset), and blob deletes happen after the catalog rows are gone (a missing
// file on disk never blocks a catalog delete).
package library

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/philres/curio/internal/blob"
	"github.com/philres/curio/internal/metrics"
	"github.com/philres/curio/internal/store"
)

// ErrValidation is returned when a required field is missing or empty.
// Checked before any side effect.
var ErrValidation = errors.New("validation failed")

// Upload carries the bytes and original filename of one submitted file.
type Upload struct {
	Filename string
	Data     []byte
}

type Library struct {
	blobs  *blob.Store
	albums *store.AlbumStore
	tracks *store.TrackStore
	videos *store.VideoStore
	media  *store.MediaStore
	layout *store.LayoutStore
}

func New(blobs *blob.Store, albums *store.AlbumStore, tracks *store.TrackStore,
	videos *store.VideoStore, media *store.MediaStore, layout *store.LayoutStore) *Library {
	return &Library{blobs: blobs, albums: albums, tracks: tracks, videos: videos, media: media, layout: layout}
}

// AddAlbum creates an album, storing the cover first when one is supplied
// and passes the image allow-list. A failed cover write aborts the whole
// operation. A cover with a disallowed extension is ignored, not fatal.
func (l *Library) AddAlbum(ctx context.Context, title, description string, cover *Upload) (*store.Album, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	coverPath := ""
	if cover != nil && blob.Allowed(cover.Filename, blob.KindImage) {
		name, err := l.blobs.Put(cover.Filename, blob.KindImage, cover.Data)
		if err != nil {
			return nil, fmt.Errorf("store cover: %w", err)
		}
		coverPath = name
	}
	return l.albums.Insert(ctx, title, strings.TrimSpace(description), coverPath)
}

// AddTrack attaches an already-stored asset to an album as a new track.
func (l *Library) AddTrack(ctx context.Context, albumID int64, title, assetRef string) (*store.Track, error) {
	title = strings.TrimSpace(title)
	assetRef = strings.TrimSpace(assetRef)
	if albumID <= 0 || title == "" || assetRef == "" {
		return nil, fmt.Errorf("%w: album_id, title and file required", ErrValidation)
	}
	return l.tracks.Insert(ctx, albumID, title, assetRef)
}

// AddVideo creates a video from a mandatory upload. The thumbnail is a
// free-form reference string (stored name or external URL), never validated
// against the blob store.
func (l *Library) AddVideo(ctx context.Context, title, description string, video *Upload, thumbnailRef string) (*store.Video, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if video == nil || !blob.Allowed(video.Filename, blob.KindVideo) {
		return nil, fmt.Errorf("%w: video file required", ErrValidation)
	}
	name, err := l.blobs.Put(video.Filename, blob.KindVideo, video.Data)
	if err != nil {
		return nil, fmt.Errorf("store video: %w", err)
	}
	v, err := l.videos.Insert(ctx, title, name, strings.TrimSpace(thumbnailRef), strings.TrimSpace(description))
	if err != nil {
		l.releaseAssets(name)
		return nil, err
	}
	return v, nil
}

// AddMediaUpload is the upload intake: it stores the bytes and records a
// standalone media entry titled by the original filename.
func (l *Library) AddMediaUpload(ctx context.Context, filename string, kind blob.Kind, data []byte) (*store.Media, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: empty filename", ErrValidation)
	}
	if !blob.Allowed(filename, kind) {
		return nil, fmt.Errorf("%w: file type not allowed for kind %q", ErrValidation, kind)
	}
	name, err := l.blobs.Put(filename, kind, data)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	m, err := l.media.Insert(ctx, filename, name, string(kind))
	if err != nil {
		l.releaseAssets(name)
		return nil, err
	}
	metrics.UploadsTotal.WithLabelValues(string(kind)).Inc()
	return m, nil
}

// UpdateAlbum mutates title/description and optionally replaces the cover.
// The superseded cover asset is left on disk, as the site has always done;
// reclaiming it is an out-of-band concern.
func (l *Library) UpdateAlbum(ctx context.Context, id int64, title, description string, cover *Upload) error {
	title = strings.TrimSpace(title)
	if id <= 0 || title == "" {
		return fmt.Errorf("%w: id and title required", ErrValidation)
	}
	if _, err := l.albums.GetByID(ctx, id); err != nil {
		return err
	}
	var coverPath *string
	if cover != nil && blob.Allowed(cover.Filename, blob.KindImage) {
		name, err := l.blobs.Put(cover.Filename, blob.KindImage, cover.Data)
		if err != nil {
			return fmt.Errorf("store cover: %w", err)
		}
		coverPath = &name
	}
	return l.albums.Update(ctx, id, title, strings.TrimSpace(description), coverPath)
}

// UpdateTrack renames a track. The track's asset, album membership and
// position are immutable through this path.
func (l *Library) UpdateTrack(ctx context.Context, id int64, title string) error {
	title = strings.TrimSpace(title)
	if id <= 0 || title == "" {
		return fmt.Errorf("%w: id and title required", ErrValidation)
	}
	if _, err := l.tracks.GetByID(ctx, id); err != nil {
		return err
	}
	return l.tracks.Update(ctx, id, title)
}

// UpdateMedia renames a standalone media entry.
func (l *Library) UpdateMedia(ctx context.Context, id int64, title string) error {
	title = strings.TrimSpace(title)
	if id <= 0 || title == "" {
		return fmt.Errorf("%w: id and title required", ErrValidation)
	}
	if _, err := l.media.GetByID(ctx, id); err != nil {
		return err
	}
	return l.media.Update(ctx, id, title)
}

// UpdateVideo mutates text fields and the thumbnail reference, optionally
// replacing the video asset. As with UpdateAlbum, a replaced asset is left
// on disk.
func (l *Library) UpdateVideo(ctx context.Context, id int64, title, description, thumbnailRef string, video *Upload) error {
	title = strings.TrimSpace(title)
	if id <= 0 || title == "" {
		return fmt.Errorf("%w: id and title required", ErrValidation)
	}
	if video != nil && !blob.Allowed(video.Filename, blob.KindVideo) {
		return fmt.Errorf("%w: invalid video type", ErrValidation)
	}
	if _, err := l.videos.GetByID(ctx, id); err != nil {
		return err
	}
	var filePath *string
	if video != nil {
		name, err := l.blobs.Put(video.Filename, blob.KindVideo, video.Data)
		if err != nil {
			return fmt.Errorf("store video: %w", err)
		}
		filePath = &name
	}
	return l.videos.Update(ctx, id, title, strings.TrimSpace(description), strings.TrimSpace(thumbnailRef), filePath)
}

// DeleteAlbum removes the album, all its tracks, and their stored assets.
// Deleting an id that no longer exists is a no-op.
func (l *Library) DeleteAlbum(ctx context.Context, id int64) error {
	album, err := l.albums.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	tracks, err := l.tracks.ListByAlbum(ctx, id)
	if err != nil {
		return err
	}
	if err := l.albums.Delete(ctx, id); err != nil {
		return err
	}
	owned := []string{album.CoverPath}
	for _, t := range tracks {
		owned = append(owned, t.FilePath)
	}
	l.releaseAssets(owned...)
	return nil
}

// DeleteTrack removes one track and its stored asset.
func (l *Library) DeleteTrack(ctx context.Context, id int64) error {
	track, err := l.tracks.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := l.tracks.Delete(ctx, id); err != nil {
		return err
	}
	l.releaseAssets(track.FilePath)
	return nil
}

// DeleteVideo removes one video, its stored asset, and its thumbnail when
// the thumbnail reference names a stored asset (external-URL thumbnails are
// left alone).
func (l *Library) DeleteVideo(ctx context.Context, id int64) error {
	video, err := l.videos.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := l.videos.Delete(ctx, id); err != nil {
		return err
	}
	owned := []string{video.FilePath}
	if l.blobs.Exists(video.ThumbnailPath) {
		owned = append(owned, video.ThumbnailPath)
	}
	l.releaseAssets(owned...)
	return nil
}

// DeleteMedia removes one media entry and its stored asset.
func (l *Library) DeleteMedia(ctx context.Context, id int64) error {
	m, err := l.media.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := l.media.Delete(ctx, id); err != nil {
		return err
	}
	l.releaseAssets(m.FilePath)
	return nil
}

// DeleteLayoutEntry removes one homepage layout entry. Layout entries own
// no assets.
func (l *Library) DeleteLayoutEntry(ctx context.Context, id int64) error {
	return l.layout.Delete(ctx, id)
}

// SetFeaturedVideo points the singleton featured_video layout entry at
// videoID. Fails with store.ErrNotFound when the video does not exist.
func (l *Library) SetFeaturedVideo(ctx context.Context, videoID int64) error {
	if _, err := l.videos.GetByID(ctx, videoID); err != nil {
		return err
	}
	return l.layout.UpsertFeatured(ctx, videoID)
}

// AddLayoutBlock appends a homepage layout block at the next position.
func (l *Library) AddLayoutBlock(ctx context.Context, blockType string, referenceID *int64) (*store.LayoutEntry, error) {
	blockType = strings.TrimSpace(blockType)
	if blockType == "" {
		return nil, fmt.Errorf("%w: block_type required", ErrValidation)
	}
	return l.layout.Insert(ctx, blockType, referenceID)
}

// AddAlbumBundle creates an album and a track per uploaded audio file,
// numbering track positions by upload order. Uploads that fail the audio
// allow-list are skipped, not fatal; a storage failure aborts the bundle.
// Returns the album and the number of tracks added.
func (l *Library) AddAlbumBundle(ctx context.Context, title, description string, cover *Upload, trackUploads []Upload) (*store.Album, int, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(trackUploads) == 0 {
		return nil, 0, fmt.Errorf("%w: title and at least one track required", ErrValidation)
	}
	album, err := l.AddAlbum(ctx, title, description, cover)
	if err != nil {
		return nil, 0, err
	}
	added := 0
	for idx, upload := range trackUploads {
		if !blob.Allowed(upload.Filename, blob.KindAudio) {
			continue
		}
		name, err := l.blobs.Put(upload.Filename, blob.KindAudio, upload.Data)
		if err != nil {
			return album, added, fmt.Errorf("store track %q: %w", upload.Filename, err)
		}
		if _, err := l.tracks.InsertAt(ctx, album.ID, trackTitle(upload.Filename), name, idx); err != nil {
			l.releaseAssets(name)
			return album, added, err
		}
		added++
	}
	return album, added, nil
}

// trackTitle derives a track title from an upload filename by dropping the
// extension.
func trackTitle(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// releaseAssets deletes stored assets best effort: catalog rows are already
// gone (or were never written), so a failed file delete is logged and
// counted, never returned.
func (l *Library) releaseAssets(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := l.blobs.Delete(name); err != nil {
			metrics.CleanupErrorsTotal.Inc()
			log.Printf("library: release asset %q: %v", name, err)
		}
	}
}
