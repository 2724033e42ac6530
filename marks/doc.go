// Package marks keeps the user's owned, hidden, watched and watchlist codes.
//
// Codes come from sources: static lists from the configuration and read-only
// integrations such as Radarr (owned), Tautulli (watched) and Overseerr
// (watchlist). Refresh pulls every source and publishes a new snapshot;
// Mark and Unmark adjust the current snapshot in memory only.
//
// Store implements browse.StateSource.
package marks
