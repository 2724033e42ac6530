package cmd

import (
	"context"
	"fmt"

	"github.com/s0up4200/marquee/library"
	"github.com/s0up4200/marquee/marks"
	"github.com/s0up4200/marquee/overseerr"
	"github.com/s0up4200/marquee/qbittorrent"
	"github.com/s0up4200/marquee/radarr"
	"github.com/s0up4200/marquee/tautulli"
)

// integrations holds the clients for every enabled service. A service that
// fails to connect is left nil and logged.
type integrations struct {
	radarr      *radarr.Client
	tautulli    *tautulli.Client
	overseerr   *overseerr.Client
	qbittorrent *qbittorrent.Client
}

func connectIntegrations() integrations {
	var in integrations
	var err error

	if cfg.Radarr.Enabled {
		in.radarr, err = radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to create Radarr client, continuing without it")
		}
	}

	if cfg.Tautulli.Enabled {
		in.tautulli, err = tautulli.NewClient(cfg.Tautulli.URL, cfg.Tautulli.APIKey, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to create Tautulli client, continuing without watch status")
		}
	}

	if cfg.Overseerr.Enabled {
		in.overseerr, err = overseerr.NewClient(cfg.Overseerr.URL, cfg.Overseerr.APIKey, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to create Overseerr client, continuing without requests")
		}
	}

	if cfg.Qbittorrent.Enabled {
		in.qbittorrent, err = qbittorrent.NewClient(
			cfg.Qbittorrent.URL,
			cfg.Qbittorrent.Username,
			cfg.Qbittorrent.Password,
			logger,
			qbittorrent.WithCategory(cfg.Qbittorrent.Category),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to create qBittorrent client, continuing without it")
		}
	}

	return in
}

// buildLibrary scans the configured folders and merges in entries from
// Radarr and qBittorrent.
func buildLibrary(ctx context.Context, in integrations) (*library.Index, error) {
	scanner := library.NewScanner(cfg.Library.Extensions, logger)

	entries, err := scanner.ScanFolders(ctx, cfg.Library.Folders)
	if err != nil {
		return nil, fmt.Errorf("failed to scan library: %w", err)
	}

	if in.radarr != nil {
		extra, err := in.radarr.LibraryEntries(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to read Radarr library")
		} else {
			entries = append(entries, extra...)
		}
	}

	if in.qbittorrent != nil {
		extra, err := in.qbittorrent.LibraryEntries(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to read qBittorrent torrents")
		} else {
			entries = append(entries, extra...)
		}
	}

	index := library.NewIndex(entries, library.WithSimilarity(cfg.Library.Similarity))

	logger.Debug().
		Int("folders", len(cfg.Library.Folders)).
		Int("entries", index.Len()).
		Msg("Built library index")

	return index, nil
}

// markSources returns the configured static lists plus every connected service
func markSources(in integrations) []marks.Source {
	sources := []marks.Source{
		marks.Static("config", marks.KindOwned, cfg.Marks.Owned),
		marks.Static("config", marks.KindHidden, cfg.Marks.Hidden),
		marks.Static("config", marks.KindWatched, cfg.Marks.Watched),
		marks.Static("config", marks.KindWatchlist, cfg.Marks.Watchlist),
	}

	if in.radarr != nil {
		sources = append(sources, marks.Source{Name: "radarr", Kind: marks.KindOwned, Fetch: in.radarr.OwnedCodes})
	}
	if in.tautulli != nil {
		minPercent := cfg.Tautulli.MinWatchPercent
		sources = append(sources, marks.Source{
			Name: "tautulli",
			Kind: marks.KindWatched,
			Fetch: func(ctx context.Context) ([]string, error) {
				return in.tautulli.WatchedCodes(ctx, minPercent)
			},
		})
	}
	if in.overseerr != nil {
		sources = append(sources, marks.Source{Name: "overseerr", Kind: marks.KindWatchlist, Fetch: in.overseerr.WatchlistCodes})
	}

	return sources
}

// buildMarkStore connects integrations, refreshes marks and attaches the
// library index.
func buildMarkStore(ctx context.Context) (*marks.Store, error) {
	in := connectIntegrations()

	store := marks.NewStore(logger, markSources(in)...)
	result, err := store.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load marks: %w", err)
	}

	index, err := buildLibrary(ctx, in)
	if err != nil {
		return nil, err
	}
	store.SetLibrary(index)

	logger.Info().
		Int("owned", result.Counts[marks.KindOwned]).
		Int("hidden", result.Counts[marks.KindHidden]).
		Int("watched", result.Counts[marks.KindWatched]).
		Int("watchlist", result.Counts[marks.KindWatchlist]).
		Int("library", index.Len()).
		Strs("failed", result.Failed).
		Msg("Loaded marks")

	return store, nil
}
