// Package overseerr reads movie requests from Overseerr and turns them into
// the watchlist mark set.
//
// Requests are paged with take/skip until Overseerr reports no more pages.
// Declined and failed requests are not part of the watchlist.
//
//	client, err := overseerr.NewClient(url, key, logger, overseerr.WithPageSize(50))
//	if err != nil {
//		return err
//	}
//	codes, err := client.WatchlistCodes(ctx)
package overseerr
