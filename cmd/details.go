package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/yts"
)

var (
	showSuggestions bool
	magnetQuality   string
)

// detailsCmd represents the details command
var detailsCmd = &cobra.Command{
	Use:   "details <id>",
	Short: "Show a movie with its torrents",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetails,
}

// magnetCmd represents the magnet command
var magnetCmd = &cobra.Command{
	Use:   "magnet <id>",
	Short: "Print the magnet link for a movie",
	Long: `Print a magnet link for one torrent variant of a movie. The first variant
is used when --quality is not given or not published.`,
	Args: cobra.ExactArgs(1),
	RunE: runMagnet,
}

func init() {
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(magnetCmd)

	detailsCmd.Flags().BoolVar(&showSuggestions, "suggestions", false, "also list suggested movies")
	magnetCmd.Flags().StringVar(&magnetQuality, "quality", "", "preferred quality (e.g. 1080p)")
}

func parseMovieID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id: %s", arg)
	}
	return id, nil
}

func runDetails(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	catalog, movie, err := fetchMovie(cmd, id)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", movie.TitleLong)
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("IMDb:     %s\n", movie.IMDbCode)
	fmt.Printf("Rating:   %.1f\n", movie.Rating)
	fmt.Printf("Runtime:  %d min\n", movie.Runtime)
	fmt.Printf("Language: %s\n", movie.Language)
	if len(movie.Genres) > 0 {
		fmt.Printf("Genres:   %s\n", strings.Join(movie.Genres, ", "))
	}
	if desc := movie.Description(); desc != "" {
		fmt.Printf("\n%s\n", desc)
	}

	if len(movie.Torrents) > 0 {
		fmt.Printf("\nTorrents:\n")
		for _, t := range movie.Torrents {
			fmt.Printf("  • %-6s %-7s %9s  seeds %d  peers %d\n", t.Quality, t.Type, t.Size, t.Seeds, t.Peers)
		}
	}

	if !showSuggestions {
		return nil
	}

	suggestions, err := catalog.MovieSuggestions(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get suggestions: %w", err)
	}
	if len(suggestions) == 0 {
		return nil
	}

	fmt.Printf("\nSuggestions:\n")
	for i := range suggestions {
		printMovieLine(i+1, &suggestions[i])
	}
	return nil
}

func runMagnet(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	_, movie, err := fetchMovie(cmd, id)
	if err != nil {
		return err
	}

	link, ok := movie.Magnet(magnetQuality)
	if !ok {
		return fmt.Errorf("%s has no torrents", movie.Title)
	}

	if chosen, _ := movie.Variant(magnetQuality); magnetQuality != "" && !strings.EqualFold(chosen.Quality, magnetQuality) {
		logger.Warn().
			Str("quality", magnetQuality).
			Str("using", chosen.Quality).
			Strs("available", movie.Qualities()).
			Msg("Quality not available, using first variant")
	}

	fmt.Println(link)
	return nil
}

// fetchMovie loads details, turning a missing movie into a short message
func fetchMovie(cmd *cobra.Command, id int) (*yts.Client, *yts.Movie, error) {
	ctx := cmd.Context()
	catalog, err := newCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	movie, err := catalog.MovieDetails(ctx, id)
	if errors.Is(err, yts.ErrNotFound) {
		return nil, nil, fmt.Errorf("movie %d not found", id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	return catalog, movie, nil
}
