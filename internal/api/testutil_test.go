package api_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/philres/curio/internal/api"
	"github.com/philres/curio/internal/auth"
	"github.com/philres/curio/internal/blob"
	"github.com/philres/curio/internal/library"
	"github.com/philres/curio/internal/store"
	"github.com/philres/curio/internal/testutil"
)

const testPIN = "4242"

// testEnv wires the full router against an in-memory database and a
// throwaway blob directory.
type testEnv struct {
	Router  http.Handler
	Library *library.Library
	Blobs   *blob.Store
	Albums  *store.AlbumStore
	Tracks  *store.TrackStore
	Videos  *store.VideoStore
	Media   *store.MediaStore
	Layout  *store.LayoutStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	key := make([]byte, blob.KeySize)
	blobs, err := blob.New(t.TempDir(), key)
	if err != nil {
		t.Fatalf("new blob store: %v", err)
	}

	albums := store.NewAlbumStore(db)
	tracks := store.NewTrackStore(db)
	videos := store.NewVideoStore(db)
	media := store.NewMediaStore(db)
	layout := store.NewLayoutStore(db)
	lib := library.New(blobs, albums, tracks, videos, media, layout)

	sm := auth.NewSessionManager(db, "sqlite3", time.Hour, false)
	pin := auth.NewPIN(testPIN)

	router := api.NewRouter(api.Deps{
		SessionManager: sm,
		AuthHandlers:   auth.NewHandlers(sm, pin),
		AuthMiddleware: auth.NewMiddleware(sm, pin),
		Library:        lib,
		Blobs:          blobs,
		Albums:         albums,
		Tracks:         tracks,
		Videos:         videos,
		Media:          media,
		Layout:         layout,
	})
	return &testEnv{
		Router:  router,
		Library: lib,
		Blobs:   blobs,
		Albums:  albums,
		Tracks:  tracks,
		Videos:  videos,
		Media:   media,
		Layout:  layout,
	}
}

// pinRequest attaches the admin PIN header.
func pinRequest(r *http.Request) *http.Request {
	r.Header.Set("X-Admin-Pin", testPIN)
	return r
}

type filePart struct {
	Field string
	Name  string
	Data  []byte
}

// multipartRequest builds a POST with form fields and file parts.
func multipartRequest(t *testing.T, url string, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Name)
		if err != nil {
			t.Fatalf("create form file %s: %v", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			t.Fatalf("write form file %s: %v", f.Field, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest("POST", url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// do runs a request through the router and returns the recorder.
func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

func readBody(t *testing.T, rec *httptest.ResponseRecorder) []byte {
	t.Helper()
	data, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return data
}
