package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/philres/curio/internal/blob"
	"github.com/philres/curio/internal/library"
	"github.com/philres/curio/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDomainError maps the error taxonomy onto transport responses. Every
// failure carries a machine-checkable code so callers can distinguish, say,
// a corrupt asset from a missing one.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, library.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, store.ErrInvalidScope):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_SCOPE")
	case errors.Is(err, store.ErrNotFound), errors.Is(err, blob.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
	case errors.Is(err, blob.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "invalid stored name", "BAD_REQUEST")
	case errors.Is(err, blob.ErrUnsupportedType):
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, blob.ErrCorruptAsset):
		writeError(w, http.StatusInternalServerError, "asset cannot be decrypted", "CORRUPT_ASSET")
	default:
		log.Printf("api: internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "STORAGE_ERROR")
	}
}
