package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/philres/curio/internal/blob"
	"github.com/philres/curio/internal/library"
	"github.com/philres/curio/internal/metrics"
)

type assetHandler struct {
	blobs   *blob.Store
	library *library.Library
}

// ServeAsset decrypts and streams one stored asset.
// GET /uploads/{name}
//
// @Summary      Fetch an asset
// @Description  Decrypts the stored asset and returns its bytes.
// @Tags         Assets
// @Produce      octet-stream
// @Param        name  path  string  true  "Stored name"
// @Success      200  {file}  binary
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /uploads/{name} [get]
func (h *assetHandler) ServeAsset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, mediaType, err := h.blobs.Get(name)
	if err != nil {
		if errors.Is(err, blob.ErrCorruptAsset) {
			metrics.DecryptFailuresTotal.Inc()
		}
		// Traversal attempts and absent names both read as 404 from
		// outside; corruption stays a distinct 500.
		if errors.Is(err, blob.ErrInvalidName) {
			writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
			return
		}
		writeDomainError(w, err)
		return
	}
	metrics.AssetsServedTotal.Inc()
	w.Header().Set("Content-Type", mediaType)
	w.Write(data)
}

// Upload stores a file and records a standalone media entry for it.
// POST /api/upload
//
// @Summary      Upload an asset
// @Description  Stores the file encrypted and records a media entry.
// @Tags         Assets
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true   "Asset bytes"
// @Param        kind  formData  string  false  "image, audio or video (default image)"
// @Success      200  {object}  UploadResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/upload [post]
func (h *assetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	upload, err := formUpload(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", "BAD_REQUEST")
		return
	}
	if upload == nil {
		writeError(w, http.StatusBadRequest, "no file provided", "VALIDATION_ERROR")
		return
	}

	kindField := r.FormValue("kind")
	if kindField == "" {
		kindField = string(blob.KindImage)
	}
	kind, err := blob.ParseKind(kindField)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	m, err := h.library.AddMediaUpload(r.Context(), upload.Filename, kind, upload.Data)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UploadResponse{
		Success:  true,
		Filename: m.FilePath,
		URL:      assetURL(m.FilePath),
		MediaID:  m.ID,
	})
}

// formUpload pulls one file out of a multipart form. Returns (nil, nil)
// when the field is absent or empty.
func formUpload(r *http.Request, field string) (*library.Upload, error) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if header.Filename == "" {
		return nil, nil
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &library.Upload{Filename: header.Filename, Data: data}, nil
}

// formUploads pulls all files submitted under one multipart field.
func formUploads(r *http.Request, field string) ([]library.Upload, error) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		return nil, err
	}
	if r.MultipartForm == nil {
		return nil, nil
	}
	var uploads []library.Upload
	for _, header := range r.MultipartForm.File[field] {
		data, err := readHeader(header)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, library.Upload{Filename: header.Filename, Data: data})
	}
	return uploads, nil
}

func readHeader(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// assetURL renders a stored-name reference as a servable path. References
// that are already absolute URLs (external thumbnails) pass through.
func assetURL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.Contains(ref, "://") {
		return ref
	}
	return "/uploads/" + ref
}
