package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"photo-library/photos"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin and stock accounts if missing",
	Long: `seed prepares the data directory without opening the shell: it creates
the admin and stock accounts when absent and fills the stock album from the
stock photo directory. Accounts that already exist are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := photos.NewStore(dataDir)
		if err := store.SeedDefaults(); err != nil {
			return err
		}

		usernames, err := store.ListUsernames()
		if err != nil {
			return err
		}
		sort.Strings(usernames)
		fmt.Printf("Store ready at %s with %d account(s): %s\n",
			dataDir, len(usernames), strings.Join(usernames, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
