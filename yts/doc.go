// Package yts provides a client for YTS-style movie catalog APIs.
//
// The catalog is published through several equivalent mirrors. A Client
// probes them at construction time, remembers the mirror that answered, and
// fails over to the others in priority order when a call is rejected:
//
//	client, err := yts.NewClient(ctx, yts.DefaultMirrors, logger)
//	if err != nil {
//		return err
//	}
//
//	page, err := client.ListMovies(ctx, yts.ListParams{Page: 1, Limit: 20, SortBy: "download_count"})
//	if errors.Is(err, yts.ErrMirrorUnavailable) {
//		// every mirror failed
//	}
//
// A mirror counts as failed on transport errors, non-2xx responses, bodies
// that are not JSON, envelopes whose status is not "ok" and envelopes
// without data. A page without movies is a valid, empty result.
//
// Magnet URIs are built locally from a movie's torrent variants with
// Movie.Magnet.
package yts
