package api

// Response shapes for the public read endpoints. Asset references are
// rendered as /uploads/ URLs; raw thumbnail references that already look
// like URLs pass through untouched.

type TrackResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Path        string `json:"path"`
	TrackNumber int    `json:"track_number"`
}

type AlbumResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Tracks      []*TrackResponse `json:"tracks"`
}

type VideoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Thumbnail   string `json:"thumbnail"`
}

type MediaResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Kind  string `json:"kind"`
	Path  string `json:"path"`
}

type LayoutEntryResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	ReferenceID *int64 `json:"reference_id"`
	Title       string `json:"title"`
}

type ReorderRequest struct {
	Type    string  `json:"type"`
	Order   []int64 `json:"order"`
	AlbumID int64   `json:"album_id,omitempty"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	MediaID  int64  `json:"media_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
