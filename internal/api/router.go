package api

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/philres/curio/internal/auth"
	"github.com/philres/curio/internal/blob"
	"github.com/philres/curio/internal/library"
	"github.com/philres/curio/internal/store"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	SessionManager *scs.SessionManager
	AuthHandlers   *auth.Handlers
	AuthMiddleware *auth.Middleware
	Library        *library.Library
	Blobs          *blob.Store
	Albums         *store.AlbumStore
	Tracks         *store.TrackStore
	Videos         *store.VideoStore
	Media          *store.MediaStore
	Layout         *store.LayoutStore
}

// NewRouter assembles the full chi router. Read endpoints and asset serving
// are public; every mutation sits behind the admin gate, which accepts either
// an authenticated session or a per-request PIN.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(deps.SessionManager.LoadAndSave)

	assets := &assetHandler{blobs: deps.Blobs, library: deps.Library}
	albums := &albumHandler{library: deps.Library, albums: deps.Albums, tracks: deps.Tracks}
	videos := &videoHandler{library: deps.Library, videos: deps.Videos}
	layout := &layoutHandler{
		library:  deps.Library,
		layout:   deps.Layout,
		media:    deps.Media,
		resolver: store.NewResolver(deps.Albums, deps.Videos, deps.Media),
	}
	reorder := &reorderHandler{
		albums: deps.Albums,
		tracks: deps.Tracks,
		videos: deps.Videos,
		media:  deps.Media,
		layout: deps.Layout,
	}
	deletes := &deleteHandler{library: deps.Library}

	// Public reads
	r.Get("/uploads/{name}", assets.ServeAsset)
	r.Get("/api/albums", albums.List)
	r.Get("/api/videos", videos.List)
	r.Get("/api/media", layout.ListMedia)
	r.Get("/api/homepage", layout.Homepage)

	r.Handle("/metrics", promhttp.Handler())

	// Session endpoints
	r.Post("/admin/login", deps.AuthHandlers.Login)
	r.Post("/admin/logout", deps.AuthHandlers.Logout)

	// Admin mutations
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAdmin)

		r.Post("/api/upload", assets.Upload)
		r.Post("/api/add_album", albums.Add)
		r.Post("/api/update_album", albums.Update)
		r.Post("/api/add_track", albums.AddTrack)
		r.Post("/api/update_track", albums.UpdateTrack)
		r.Post("/api/add_album_bundle", albums.AddBundle)
		r.Post("/api/add_video", videos.Add)
		r.Post("/api/update_video", videos.Update)
		r.Post("/api/set_featured_video", videos.SetFeatured)
		r.Post("/api/update_media", layout.UpdateMedia)
		r.Post("/api/add_layout_block", layout.AddBlock)
		r.Post("/api/reorder", reorder.Reorder)
		r.Post("/api/delete", deletes.Delete)
	})

	return r
}
