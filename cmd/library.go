package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/library"
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Scan the local library",
	Long: `Scan the configured library folders, plus Radarr and qBittorrent when
enabled, and report how many movies were found.`,
	Args: cobra.NoArgs,
	RunE: runLibrary,
}

// libraryMatchCmd represents the library match command
var libraryMatchCmd = &cobra.Command{
	Use:   "match <title> [year]",
	Short: "Check whether a movie is in the local library",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runLibraryMatch,
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryMatchCmd)
}

func loadLibrary(cmd *cobra.Command) (*library.Index, error) {
	return buildLibrary(cmd.Context(), connectIntegrations())
}

func runLibrary(cmd *cobra.Command, args []string) error {
	index, err := loadLibrary(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("Library folders: %d\n", len(cfg.Library.Folders))
	for _, folder := range cfg.Library.Folders {
		fmt.Printf("  • %s\n", folder)
	}
	fmt.Printf("Movies indexed: %d\n", index.Len())
	return nil
}

func runLibraryMatch(cmd *cobra.Command, args []string) error {
	title := args[0]
	year := 0
	if len(args) == 2 {
		var err error
		year, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid year: %s", args[1])
		}
	}

	index, err := loadLibrary(cmd)
	if err != nil {
		return err
	}

	normalized := library.Normalize(title)
	if index.Contains(title, year) {
		fmt.Printf("✓ %q (%s) is in the library\n", title, normalized)
		return nil
	}
	fmt.Printf("✗ %q (%s) is not in the library\n", title, normalized)
	return nil
}
