package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/philres/curio/internal/library"
	"github.com/philres/curio/internal/metrics"
)

type deleteHandler struct {
	library *library.Library
}

// Delete removes one catalog row and releases the assets it owned. Deleting
// an id that no longer exists succeeds, so retried deletes are harmless.
// POST /api/delete
//
// @Summary      Delete a catalog entry
// @Tags         Catalog
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        type  formData  string  true  "album, track, video, media or layout"
// @Param        id    formData  int     true  "Row id"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/delete [post]
func (h *deleteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind := r.FormValue("type")
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer", "VALIDATION_ERROR")
		return
	}

	var del func(context.Context, int64) error
	switch kind {
	case "album":
		del = h.library.DeleteAlbum
	case "track":
		del = h.library.DeleteTrack
	case "video":
		del = h.library.DeleteVideo
	case "media":
		del = h.library.DeleteMedia
	case "layout":
		del = h.library.DeleteLayoutEntry
	default:
		writeError(w, http.StatusBadRequest, "unknown type: "+kind, "VALIDATION_ERROR")
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	metrics.CatalogDeletesTotal.WithLabelValues(kind).Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
