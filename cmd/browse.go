package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/yts"
)

var (
	filterFlags filter.Config
	filterExpr  string
	preset      string
	target      int
	rounds      int
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog with your filters applied",
	Long: `Fetch catalog pages until enough movies pass the filters, then print them.

Server side options (genre, query, sort, order, minimum rating) are sent to
the catalog. Everything else is applied locally against your marks and
library. Use --more to keep loading after the first batch.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	addBrowseFlags(browseCmd.Flags())
}

func addBrowseFlags(f *pflag.FlagSet) {
	f.StringVarP(&filterFlags.Genre, "genre", "g", "", "genre ("+strings.Join(yts.Genres, ", ")+")")
	f.StringVarP(&filterFlags.Query, "query", "q", "", "search term")
	f.StringVarP(&filterFlags.SortBy, "sort", "s", "", "sort by (Trending, Latest, Rating, Seeds, Year, Title)")
	f.StringVar(&filterFlags.OrderBy, "order", "", "order (desc or asc)")
	f.IntVar(&filterFlags.MinimumRating, "min-rating", 0, "minimum rating (0-9)")

	f.BoolVar(&filterFlags.HideOwned, "hide-owned", false, "hide movies you own")
	f.BoolVar(&filterFlags.ShowHidden, "show-hidden", false, "include movies you hid")
	f.BoolVar(&filterFlags.HideWatched, "hide-watched", false, "hide movies you watched")
	f.BoolVar(&filterFlags.HideWatchlist, "hide-watchlist", false, "hide movies on your watchlist")
	f.BoolVar(&filterFlags.WatchlistOnly, "watchlist-only", false, "only show movies on your watchlist")

	f.IntVar(&filterFlags.MinYear, "min-year", 0, "earliest release year")
	f.IntVar(&filterFlags.MaxYear, "max-year", 0, "latest release year")
	f.IntVar(&filterFlags.MinRuntime, "min-runtime", 0, "shortest runtime in minutes")
	f.IntVar(&filterFlags.MaxRuntime, "max-runtime", 0, "longest runtime in minutes")
	f.StringSliceVar(&filterFlags.Qualities, "quality", nil, "accepted qualities, any of (e.g. 1080p,2160p)")
	f.IntVar(&filterFlags.MinSeeds, "min-seeds", 0, "minimum seeds on the best torrent")
	f.StringVarP(&filterFlags.Language, "language", "l", "", "original language code, or all")

	f.StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	f.StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	f.IntVarP(&target, "target", "n", 0, "visible results to collect before stopping")
	f.IntVar(&rounds, "more", 0, "extra load-more rounds after the first batch")
}

// browseConfig starts from the configured defaults and applies changed flags
func browseConfig(cmd *cobra.Command) (filter.Config, error) {
	fc := cfg.Filter.Config
	flags := cmd.Flags()

	changed := func(name string) bool { return flags.Changed(name) }

	if changed("genre") {
		fc.Genre = filterFlags.Genre
	}
	if changed("query") {
		fc.Query = filterFlags.Query
	}
	if changed("sort") {
		sortBy, ok := yts.ResolveSort(filterFlags.SortBy)
		if !ok {
			return fc, fmt.Errorf("unknown sort option: %s", filterFlags.SortBy)
		}
		fc.SortBy = sortBy
	}
	if changed("order") {
		fc.OrderBy = filterFlags.OrderBy
	}
	if changed("min-rating") {
		fc.MinimumRating = filterFlags.MinimumRating
	}
	if changed("hide-owned") {
		fc.HideOwned = filterFlags.HideOwned
	}
	if changed("show-hidden") {
		fc.ShowHidden = filterFlags.ShowHidden
	}
	if changed("hide-watched") {
		fc.HideWatched = filterFlags.HideWatched
	}
	if changed("hide-watchlist") {
		fc.HideWatchlist = filterFlags.HideWatchlist
	}
	if changed("watchlist-only") {
		fc.WatchlistOnly = filterFlags.WatchlistOnly
	}
	if changed("min-year") {
		fc.MinYear = filterFlags.MinYear
	}
	if changed("max-year") {
		fc.MaxYear = filterFlags.MaxYear
	}
	if changed("min-runtime") {
		fc.MinRuntime = filterFlags.MinRuntime
	}
	if changed("max-runtime") {
		fc.MaxRuntime = filterFlags.MaxRuntime
	}
	if changed("quality") {
		fc.Qualities = filterFlags.Qualities
	}
	if changed("min-seeds") {
		fc.MinSeeds = filterFlags.MinSeeds
	}
	if changed("language") {
		fc.Language = filterFlags.Language
	}

	if fc.Genre != "" && !yts.ValidGenre(fc.Genre) {
		return fc, fmt.Errorf("unknown genre: %s", fc.Genre)
	}

	expr, err := getFilterExpression(fc.Expression)
	if err != nil {
		return fc, err
	}
	fc.Expression = expr

	return fc, nil
}

// getFilterExpression determines the filter expression to use.
// Priority: command line filter and/or preset > configured default.
func getFilterExpression(fallback string) (string, error) {
	if filterExpr == "" && preset == "" {
		return fallback, nil
	}

	presets := filter.NewPresets(filter.DefaultCompiler)
	if err := presets.RegisterAll(cfg.Filter.PresetExpressions()); err != nil {
		return "", fmt.Errorf("invalid preset in config: %w", err)
	}

	expr, err := presets.Combine(preset, filterExpr)
	if err != nil {
		if errors.Is(err, filter.ErrUnknownPreset) {
			return "", fmt.Errorf("preset '%s' not found in config (available: %s)", preset, strings.Join(presets.Names(), ", "))
		}
		return "", err
	}
	return expr, nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	fc, err := browseConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	catalog, err := newCatalog(ctx)
	if err != nil {
		return err
	}

	store, err := buildMarkStore(ctx)
	if err != nil {
		return err
	}

	want := cfg.Browse.Target
	if cmd.Flags().Changed("target") {
		want = target
	}

	logger.Info().
		Str("mirror", catalog.Preferred()).
		Str("genre", fc.Genre).
		Str("sort", fc.SortBy).
		Str("filter", fc.Expression).
		Int("target", want).
		Msg("Browsing catalog")

	controller := browse.New(catalog, store, logger,
		browse.WithPageSize(cfg.Catalog.PageSize),
		browse.WithMaxEmptyPages(cfg.Browse.MaxEmptyPages),
		browse.WithTarget(want),
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- controller.Run(runCtx) }()

	if err := controller.Start(browse.Request{Config: fc, Target: want}); err != nil {
		return err
	}

	outcome := drainBrowse(controller, rounds)
	cancel()

	for range controller.Events() {
	}
	<-runErr

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return outcome
}

// drainBrowse prints events until the browse settles and no load-more
// rounds are left.
func drainBrowse(controller *browse.Controller, more int) error {
	shown := 0
	for ev := range controller.Events() {
		switch ev.Kind {
		case browse.EventPage:
			for i := range ev.Added {
				shown++
				printMovieLine(shown, &ev.Added[i])
			}
		case browse.EventIdle:
			if more <= 0 {
				fmt.Printf("\n%d movies shown (%d in catalog). Use --more to load further pages.\n", ev.Visible, ev.Total)
				return nil
			}
			more--
			if err := controller.LoadMore(0); err != nil {
				return err
			}
		case browse.EventExhausted:
			fmt.Printf("\nEnd of catalog: %d movies shown.\n", ev.Visible)
			return nil
		case browse.EventFilterExhausted:
			fmt.Printf("\nStopped after %d pages in a row had nothing new for your filters: %d movies shown.\n",
				ev.EmptyPages, ev.Visible)
			return nil
		case browse.EventFailed:
			return fmt.Errorf("browse failed on page %d: %w", ev.Page, ev.Err)
		}
	}
	return nil
}

func printMovieLine(n int, m *yts.Movie) {
	fmt.Printf("%3d. %s (%d)  ★ %.1f  %dm  [%s]  id:%d\n",
		n, m.Title, m.Year, m.Rating, m.Runtime, strings.Join(m.Qualities(), " "), m.ID)
}
