package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philres/curio/internal/build"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "curio",
		Short:   "An encrypted asset store and catalog for a personal site",
		Long:    "Curio — stores uploads encrypted at rest and serves an ordered catalog of albums, tracks, videos and homepage blocks.",
		Version: build.Version,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
