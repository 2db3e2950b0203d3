package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"photo-library/photos"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "photo-library",
	Short: "Single-user photo album manager",
	Long: `photo-library organizes local image files into per-user albums with
captions, typed tags, and date or tag search. Accounts live under the data
directory as one file each; the admin account manages accounts and the stock
account ships with a starter album.

Running without a subcommand seeds the well-known accounts and opens the
interactive shell.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := photos.NewStore(dataDir)
		if err := store.SeedDefaults(); err != nil {
			return err
		}
		return runShell(store)
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()
	rootCmd.PersistentFlags().StringVar(&dataDir, "data",
		getEnv("PHOTO_LIBRARY_DATA", "data"),
		"data directory holding user files and stock photos")
}

// getEnv returns the environment value for key, or fallback when unset.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
