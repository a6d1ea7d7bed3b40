package api

import (
	"net/http"
	"strconv"

	"github.com/philres/curio/internal/library"
	"github.com/philres/curio/internal/store"
)

type layoutHandler struct {
	library  *library.Library
	layout   *store.LayoutStore
	media    *store.MediaStore
	resolver *store.Resolver
}

// Homepage returns the homepage layout in display order, with each entry's
// reference resolved to a human-readable title. Entries pointing at deleted
// rows are returned with an empty title rather than failing the whole page.
// GET /api/homepage
//
// @Summary      Homepage layout
// @Tags         Layout
// @Produce      json
// @Success      200  {array}  LayoutEntryResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/homepage [get]
func (h *layoutHandler) Homepage(w http.ResponseWriter, r *http.Request) {
	entries, err := h.layout.ListOrdered(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]*LayoutEntryResponse, 0, len(entries))
	for _, e := range entries {
		title, err := h.resolver.ResolveLabel(r.Context(), e)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp = append(resp, &LayoutEntryResponse{
			ID:          e.ID,
			Type:        e.Type,
			ReferenceID: e.ReferenceID,
			Title:       title,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListMedia returns the standalone media entries in display order.
// GET /api/media
//
// @Summary      List media
// @Tags         Layout
// @Produce      json
// @Success      200  {array}  MediaResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/media [get]
func (h *layoutHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	media, err := h.media.ListOrdered(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]*MediaResponse, 0, len(media))
	for _, m := range media {
		resp = append(resp, &MediaResponse{
			ID:    m.ID,
			Title: m.Title,
			Kind:  m.Kind,
			Path:  assetURL(m.FilePath),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateMedia renames a standalone media entry.
// POST /api/update_media
//
// @Summary      Rename a media entry
// @Tags         Layout
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id     formData  int     true  "Media id"
// @Param        title  formData  string  true  "New title"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/update_media [post]
func (h *layoutHandler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err := h.library.UpdateMedia(r.Context(), id, r.FormValue("title")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AddBlock appends a block to the homepage layout.
// POST /api/add_layout_block
//
// @Summary      Add a layout block
// @Tags         Layout
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        type          formData  string  true   "Block type"
// @Param        reference_id  formData  int     false  "Referenced row id"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  ErrorResponse
// @Router       /api/add_layout_block [post]
func (h *layoutHandler) AddBlock(w http.ResponseWriter, r *http.Request) {
	var refID *int64
	if raw := r.FormValue("reference_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "reference_id must be an integer", "VALIDATION_ERROR")
			return
		}
		refID = &id
	}
	entry, err := h.library.AddLayoutBlock(r.Context(), r.FormValue("type"), refID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "layout_id": entry.ID})
}
