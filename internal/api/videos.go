package api

import (
	"net/http"
	"strconv"

	"github.com/philres/curio/internal/library"
	"github.com/philres/curio/internal/store"
)

type videoHandler struct {
	library *library.Library
	videos  *store.VideoStore
}

// List returns all videos in display order.
// GET /api/videos
//
// @Summary      List videos
// @Tags         Videos
// @Produce      json
// @Success      200  {array}  VideoResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/videos [get]
func (h *videoHandler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videos.ListOrdered(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]*VideoResponse, 0, len(videos))
	for _, v := range videos {
		resp = append(resp, &VideoResponse{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Path:        assetURL(v.FilePath),
			Thumbnail:   assetURL(v.ThumbnailPath),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Add stores a video upload and creates its catalog entry. The thumbnail
// field is an opaque reference, either a stored name or an external URL.
// POST /api/add_video
//
// @Summary      Add a video
// @Tags         Videos
// @Accept       multipart/form-data
// @Produce      json
// @Param        title        formData  string  true   "Video title"
// @Param        description  formData  string  false  "Video description"
// @Param        video        formData  file    true   "Video file"
// @Param        thumbnail    formData  string  false  "Thumbnail reference"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/add_video [post]
func (h *videoHandler) Add(w http.ResponseWriter, r *http.Request) {
	upload, err := formUpload(r, "video")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", "BAD_REQUEST")
		return
	}
	video, err := h.library.AddVideo(r.Context(), r.FormValue("title"), r.FormValue("description"), upload, r.FormValue("thumbnail"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "video_id": video.ID})
}

// Update mutates a video's metadata and optionally replaces the file.
// POST /api/update_video
//
// @Summary      Update a video
// @Tags         Videos
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           formData  int     true   "Video id"
// @Param        title        formData  string  true   "Video title"
// @Param        description  formData  string  false  "Video description"
// @Param        thumbnail    formData  string  false  "Thumbnail reference"
// @Param        video        formData  file    false  "Replacement video file"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  ErrorResponse
// @Router       /api/update_video [post]
func (h *videoHandler) Update(w http.ResponseWriter, r *http.Request) {
	upload, err := formUpload(r, "video")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", "BAD_REQUEST")
		return
	}
	id, _ := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err := h.library.UpdateVideo(r.Context(), id, r.FormValue("title"), r.FormValue("description"), r.FormValue("thumbnail"), upload); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetFeatured points the homepage's singleton featured slot at a video.
// POST /api/set_featured_video
//
// @Summary      Set the featured video
// @Tags         Videos
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        video_id  formData  int  true  "Video id"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  ErrorResponse
// @Router       /api/set_featured_video [post]
func (h *videoHandler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	videoID, _ := strconv.ParseInt(r.FormValue("video_id"), 10, 64)
	if err := h.library.SetFeaturedVideo(r.Context(), videoID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
