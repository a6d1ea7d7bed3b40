package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/philres/curio/internal/api"
)

func TestAddAlbum_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	req := multipartRequest(t, "/api/add_album", map[string]string{"title": "First"})
	rec := env.do(req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAddAlbum_WithCoverAndList(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, "/api/add_album",
		map[string]string{"title": "First", "description": "debut"},
		filePart{Field: "image", Name: "cover.png", Data: []byte("png-bytes")})
	rec := env.do(pinRequest(req))
	if rec.Code != http.StatusOK {
		t.Fatalf("add_album status = %d; body: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(httptest.NewRequest("GET", "/api/albums", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var albums []api.AlbumResponse
	if err := json.NewDecoder(rec.Body).Decode(&albums); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(albums) != 1 {
		t.Fatalf("len(albums) = %d, want 1", len(albums))
	}
	if albums[0].Title != "First" {
		t.Errorf("title = %q, want %q", albums[0].Title, "First")
	}
	if !strings.HasPrefix(albums[0].Image, "/uploads/") {
		t.Errorf("image = %q, want /uploads/ prefix", albums[0].Image)
	}
}

func TestAddAlbum_MissingTitle(t *testing.T) {
	env := newTestEnv(t)
	req := multipartRequest(t, "/api/add_album", map[string]string{"title": "  "})
	rec := env.do(pinRequest(req))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	var resp api.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", resp.Code)
	}
}

func TestAddTrack_TrackNumbersFollowPosition(t *testing.T) {
	env := newTestEnv(t)
	album, err := env.Library.AddAlbum(context.Background(), "LP", "", nil)
	if err != nil {
		t.Fatalf("add album: %v", err)
	}

	for _, title := range []string{"Intro", "Outro"} {
		form := url.Values{
			"album_id": {strconv.FormatInt(album.ID, 10)},
			"title":    {title},
			"file":     {strings.ToLower(title) + ".mp3"},
		}
		req := httptest.NewRequest("POST", "/api/add_track", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := env.do(pinRequest(req))
		if rec.Code != http.StatusOK {
			t.Fatalf("add_track %q status = %d; body: %s", title, rec.Code, rec.Body.String())
		}
	}

	rec := env.do(httptest.NewRequest("GET", "/api/albums", nil))
	var albums []api.AlbumResponse
	if err := json.NewDecoder(rec.Body).Decode(&albums); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(albums) != 1 || len(albums[0].Tracks) != 2 {
		t.Fatalf("unexpected shape: %+v", albums)
	}
	if albums[0].Tracks[0].TrackNumber != 1 || albums[0].Tracks[1].TrackNumber != 2 {
		t.Errorf("track numbers = %d, %d, want 1, 2",
			albums[0].Tracks[0].TrackNumber, albums[0].Tracks[1].TrackNumber)
	}
}

func TestUpdateTrack_Rename(t *testing.T) {
	env := newTestEnv(t)
	album, err := env.Library.AddAlbum(context.Background(), "LP", "", nil)
	if err != nil {
		t.Fatalf("add album: %v", err)
	}
	track, err := env.Library.AddTrack(context.Background(), album.ID, "Working Title", "demo.mp3")
	if err != nil {
		t.Fatalf("add track: %v", err)
	}

	form := url.Values{"id": {strconv.FormatInt(track.ID, 10)}, "title": {"Final Title"}}
	req := httptest.NewRequest("POST", "/api/update_track", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(pinRequest(req))
	if rec.Code != http.StatusOK {
		t.Fatalf("update_track status = %d; body: %s", rec.Code, rec.Body.String())
	}

	got, err := env.Tracks.GetByID(context.Background(), track.ID)
	if err != nil {
		t.Fatalf("get track: %v", err)
	}
	if got.Title != "Final Title" {
		t.Errorf("title = %q, want Final Title", got.Title)
	}
}

func TestUpdateTrack_NotFound(t *testing.T) {
	env := newTestEnv(t)
	form := url.Values{"id": {"999"}, "title": {"Nope"}}
	req := httptest.NewRequest("POST", "/api/update_track", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(pinRequest(req))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d; body: %s", rec.Code, http.StatusNotFound, rec.Body.String())
	}
}

func TestAddAlbumBundle_SkipsNonAudio(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, "/api/add_album_bundle",
		map[string]string{"title": "Bundle"},
		filePart{Field: "cover", Name: "cover.jpg", Data: []byte("jpg")},
		filePart{Field: "tracks", Name: "one.mp3", Data: []byte("a")},
		filePart{Field: "tracks", Name: "notes.txt", Data: []byte("b")},
		filePart{Field: "tracks", Name: "two.ogg", Data: []byte("c")})
	rec := env.do(pinRequest(req))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		TracksAdded int `json:"tracks_added"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TracksAdded != 2 {
		t.Errorf("tracks_added = %d, want 2", resp.TracksAdded)
	}
}

func TestUpdateAlbum_NotFound(t *testing.T) {
	env := newTestEnv(t)
	req := multipartRequest(t, "/api/update_album", map[string]string{"id": "999", "title": "Nope"})
	rec := env.do(pinRequest(req))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d; body: %s", rec.Code, http.StatusNotFound, rec.Body.String())
	}
}

func TestReorder_Albums(t *testing.T) {
	env := newTestEnv(t)
	var ids []int64
	for _, title := range []string{"A", "B", "C"} {
		a, err := env.Library.AddAlbum(context.Background(), title, "", nil)
		if err != nil {
			t.Fatalf("add album: %v", err)
		}
		ids = append(ids, a.ID)
	}

	body, _ := json.Marshal(api.ReorderRequest{Type: "albums", Order: []int64{ids[2], ids[0], ids[1]}})
	req := httptest.NewRequest("POST", "/api/reorder", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := env.do(pinRequest(req))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(httptest.NewRequest("GET", "/api/albums", nil))
	var albums []api.AlbumResponse
	if err := json.NewDecoder(rec.Body).Decode(&albums); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := []string{albums[0].Title, albums[1].Title, albums[2].Title}
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("albums[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReorder_TracksWithoutAlbumScope(t *testing.T) {
	env := newTestEnv(t)
	body, _ := json.Marshal(api.ReorderRequest{Type: "tracks", Order: []int64{1, 2}})
	req := httptest.NewRequest("POST", "/api/reorder", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := env.do(pinRequest(req))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	var resp api.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "INVALID_SCOPE" {
		t.Errorf("code = %q, want INVALID_SCOPE", resp.Code)
	}
}

func TestReorder_UnknownCollection(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest("POST", "/api/reorder", strings.NewReader(`{"type":"playlists","order":[1]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := env.do(pinRequest(req))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDelete_AlbumReleasesCover(t *testing.T) {
	env := newTestEnv(t)
	req := multipartRequest(t, "/api/add_album",
		map[string]string{"title": "Doomed"},
		filePart{Field: "image", Name: "cover.png", Data: []byte("png")})
	rec := env.do(pinRequest(req))
	if rec.Code != http.StatusOK {
		t.Fatalf("add_album status = %d", rec.Code)
	}
	var created struct {
		AlbumID int64 `json:"album_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	album, err := env.Albums.GetByID(context.Background(), created.AlbumID)
	if err != nil {
		t.Fatalf("get album: %v", err)
	}

	form := url.Values{"type": {"album"}, "id": {strconv.FormatInt(created.AlbumID, 10)}}
	del := httptest.NewRequest("POST", "/api/delete", strings.NewReader(form.Encode()))
	del.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = env.do(pinRequest(del))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d; body: %s", rec.Code, rec.Body.String())
	}

	if env.Blobs.Exists(album.CoverPath) {
		t.Errorf("cover %q still present after album delete", album.CoverPath)
	}
	rec = env.do(httptest.NewRequest("GET", "/api/albums", nil))
	var albums []api.AlbumResponse
	if err := json.NewDecoder(rec.Body).Decode(&albums); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(albums) != 0 {
		t.Errorf("len(albums) = %d, want 0", len(albums))
	}
}

func TestDelete_UnknownType(t *testing.T) {
	env := newTestEnv(t)
	form := url.Values{"type": {"playlist"}, "id": {"1"}}
	req := httptest.NewRequest("POST", "/api/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(pinRequest(req))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
