package api

import (
	"encoding/json"
	"net/http"

	"github.com/philres/curio/internal/store"
)

type reorderHandler struct {
	albums *store.AlbumStore
	tracks *store.TrackStore
	videos *store.VideoStore
	media  *store.MediaStore
	layout *store.LayoutStore
}

// Reorder rewrites display positions for one collection. The order array is
// authoritative: each id is assigned its index. Track reorders are scoped to
// one album and require album_id.
// POST /api/reorder
//
// @Summary      Reorder a collection
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request  body  ReorderRequest  true  "Collection and id order"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/reorder [post]
func (h *reorderHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}

	var err error
	switch req.Type {
	case "albums":
		err = h.albums.Reorder(r.Context(), req.Order)
	case "tracks":
		err = h.tracks.Reorder(r.Context(), req.AlbumID, req.Order)
	case "videos":
		err = h.videos.Reorder(r.Context(), req.Order)
	case "media":
		err = h.media.Reorder(r.Context(), req.Order)
	case "homepage_layout":
		err = h.layout.Reorder(r.Context(), req.Order)
	default:
		writeError(w, http.StatusBadRequest, "unknown collection: "+req.Type, "VALIDATION_ERROR")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
