// Package qbittorrent reads torrents from the qBittorrent Web API and exposes
// them as library entries.
//
// Torrent names are parsed with the same title/year extraction used for files
// on disk, so a movie that is still downloading is treated as present.
//
//	client, err := qbittorrent.NewClient(url, username, password, logger,
//		qbittorrent.WithCategory("movies"))
//	if err != nil {
//		return err
//	}
//	entries, err := client.LibraryEntries(ctx)
package qbittorrent
