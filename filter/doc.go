// Package filter decides which catalog movies are shown to the user.
//
// A Pipeline is built from a Config and evaluated against a State, the
// user's owned, hidden, watched and watchlist codes plus the local library.
// Stages run in a fixed order and stop at the first rejection:
//
//	hidden, watched, watchlist, owned, year, runtime, language, quality, seeds
//
// An optional expression runs last. Expressions use the expr language and
// see the movie fields Title, Year, Rating, Runtime, Genres, Language,
// IMDbCode, MaxSeeds and Qualities plus these helpers. Text helpers ignore
// case; the built-in contains and startsWith operators do not.
//
//	hasGenre("Drama")
//	hasQuality("1080p")
//	containsText(Title, "star")
//	hasPrefix(Title, "the")
//	watched()
//	inWatchlist()
//
// Example:
//
//	Rating >= 7 and hasGenre("sci-fi") and not watched()
package filter
