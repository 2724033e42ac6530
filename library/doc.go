// Package library matches catalog movies against a local movie collection.
//
// A Scanner walks folders and turns video file names into entries, an
// Index groups entries by normalized title and answers Contains lookups:
//
//	scanner := library.NewScanner(nil, logger)
//	entries, err := scanner.ScanFolders(ctx, []string{"/media/movies"})
//	idx := library.NewIndex(entries)
//	idx.Contains("Inception", 2010)
//
// A year of 0 means unknown and matches any year.
package library
