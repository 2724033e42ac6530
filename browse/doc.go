// Package browse implements the incremental "load more" loop over a catalog.
//
// A Controller owns one browse operation at a time. Callers send intents
// with Start and LoadMore and read what happened from Events:
//
//	ctl := browse.New(client, store, logger)
//	go ctl.Run(ctx)
//
//	ctl.Start(browse.Request{Config: cfg, Target: 40})
//	for ev := range ctl.Events() {
//		switch ev.Kind {
//		case browse.EventPage:
//			show(ev.Added)
//		case browse.EventFilterExhausted:
//			// nothing matches the current filters
//		}
//	}
//
// Each fetched page goes through a filter.Pipeline against a fresh state
// snapshot. Movies already shown are skipped. The controller keeps fetching
// until the target is reached, the catalog runs out, a fetch fails, or too
// many consecutive pages add nothing.
//
// Every Start bumps a generation counter and cancels the page in flight;
// results tagged with an older generation are dropped.
package browse
