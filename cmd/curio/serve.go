package main

import (
	"context"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/philres/curio/internal/api"
	"github.com/philres/curio/internal/auth"
	"github.com/philres/curio/internal/blob"
	"github.com/philres/curio/internal/config"
	"github.com/philres/curio/internal/db"
	"github.com/philres/curio/internal/library"
	"github.com/philres/curio/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}
			if err := db.SeedSampleAlbum(context.Background(), database); err != nil {
				return err
			}

			key, err := blob.LoadOrCreateKey(cfg.Uploads.KeyPath)
			if err != nil {
				return err
			}
			blobs, err := blob.New(cfg.Uploads.Dir, key)
			if err != nil {
				return err
			}

			albums := store.NewAlbumStore(database)
			tracks := store.NewTrackStore(database)
			videos := store.NewVideoStore(database)
			media := store.NewMediaStore(database)
			layout := store.NewLayoutStore(database)
			lib := library.New(blobs, albums, tracks, videos, media, layout)

			sessionManager := auth.NewSessionManager(database, cfg.DB.Driver, cfg.SessionLifetime, !cfg.InsecureCookies)
			pin := auth.NewPIN(cfg.AdminPIN)

			router := api.NewRouter(api.Deps{
				SessionManager: sessionManager,
				AuthHandlers:   auth.NewHandlers(sessionManager, pin),
				AuthMiddleware: auth.NewMiddleware(sessionManager, pin),
				Library:        lib,
				Blobs:          blobs,
				Albums:         albums,
				Tracks:         tracks,
				Videos:         videos,
				Media:          media,
				Layout:         layout,
			})

			log.Printf("listening on %s", cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
