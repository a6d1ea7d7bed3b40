package api

import (
	"net/http"
	"strconv"

	"github.com/philres/curio/internal/library"
	"github.com/philres/curio/internal/store"
)

type albumHandler struct {
	library *library.Library
	albums  *store.AlbumStore
	tracks  *store.TrackStore
}

// List returns all albums with their tracks, both in display order.
// GET /api/albums
//
// @Summary      List albums
// @Tags         Albums
// @Produce      json
// @Success      200  {array}  AlbumResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/albums [get]
func (h *albumHandler) List(w http.ResponseWriter, r *http.Request) {
	albums, err := h.albums.ListOrdered(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]*AlbumResponse, 0, len(albums))
	for _, a := range albums {
		tracks, err := h.tracks.ListByAlbum(r.Context(), a.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		ar := &AlbumResponse{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Image:       assetURL(a.CoverPath),
			Tracks:      make([]*TrackResponse, 0, len(tracks)),
		}
		for _, t := range tracks {
			ar.Tracks = append(ar.Tracks, &TrackResponse{
				ID:          t.ID,
				Title:       t.Title,
				Path:        assetURL(t.FilePath),
				TrackNumber: t.Position + 1,
			})
		}
		resp = append(resp, ar)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Add creates an album, with an optional cover image upload.
// POST /api/add_album
//
// @Summary      Add an album
// @Tags         Albums
// @Accept       multipart/form-data
// @Produce      json
// @Param        title        formData  string  true   "Album title"
// @Param        description  formData  string  false  "Album description"
// @Param        image        formData  file    false  "Cover image"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/add_album [post]
func (h *albumHandler) Add(w http.ResponseWriter, r *http.Request) {
	cover, err := formUpload(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", "BAD_REQUEST")
		return
	}
	album, err := h.library.AddAlbum(r.Context(), r.FormValue("title"), r.FormValue("description"), cover)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "album_id": album.ID})
}

// Update mutates an album's text fields and optionally replaces its cover.
// POST /api/update_album
//
// @Summary      Update an album
// @Tags         Albums
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           formData  int     true   "Album id"
// @Param        title        formData  string  true   "Album title"
// @Param        description  formData  string  false  "Album description"
// @Param        image        formData  file    false  "Replacement cover"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/update_album [post]
func (h *albumHandler) Update(w http.ResponseWriter, r *http.Request) {
	cover, err := formUpload(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", "BAD_REQUEST")
		return
	}
	id, _ := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err := h.library.UpdateAlbum(r.Context(), id, r.FormValue("title"), r.FormValue("description"), cover); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AddTrack attaches an already-uploaded asset to an album as a track.
// POST /api/add_track
//
// @Summary      Add a track
// @Tags         Albums
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        album_id  formData  int     true  "Owning album id"
// @Param        title     formData  string  true  "Track title"
// @Param        file      formData  string  true  "Stored asset name"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  ErrorResponse
// @Router       /api/add_track [post]
func (h *albumHandler) AddTrack(w http.ResponseWriter, r *http.Request) {
	albumID, _ := strconv.ParseInt(r.FormValue("album_id"), 10, 64)
	track, err := h.library.AddTrack(r.Context(), albumID, r.FormValue("title"), r.FormValue("file"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "track_id": track.ID})
}

// UpdateTrack renames a track.
// POST /api/update_track
//
// @Summary      Rename a track
// @Tags         Albums
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id     formData  int     true  "Track id"
// @Param        title  formData  string  true  "New title"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/update_track [post]
func (h *albumHandler) UpdateTrack(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err := h.library.UpdateTrack(r.Context(), id, r.FormValue("title")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AddBundle creates an album together with a batch of track uploads.
// POST /api/add_album_bundle
//
// @Summary      Add an album with tracks in one call
// @Tags         Albums
// @Accept       multipart/form-data
// @Produce      json
// @Param        title        formData  string  true   "Album title"
// @Param        description  formData  string  false  "Album description"
// @Param        cover        formData  file    false  "Cover image"
// @Param        tracks       formData  file    true   "Audio files (repeatable)"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  ErrorResponse
// @Router       /api/add_album_bundle [post]
func (h *albumHandler) AddBundle(w http.ResponseWriter, r *http.Request) {
	cover, err := formUpload(r, "cover")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", "BAD_REQUEST")
		return
	}
	uploads, err := formUploads(r, "tracks")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", "BAD_REQUEST")
		return
	}
	album, added, err := h.library.AddAlbumBundle(r.Context(), r.FormValue("title"), r.FormValue("description"), cover, uploads)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "album_id": album.ID, "tracks_added": added})
}
