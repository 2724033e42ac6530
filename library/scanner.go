package library

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultExtensions are the video file extensions picked up by a scan
var DefaultExtensions = []string{".mkv", ".mp4", ".avi", ".mov", ".wmv", ".m4v", ".webm"}

// MaxConcurrentFolders bounds how many folders are walked at once
const MaxConcurrentFolders = 4

// Scanner walks library folders looking for video files
type Scanner struct {
	extensions map[string]struct{}
	logger     zerolog.Logger
}

// NewScanner creates a scanner for the given extensions. An empty list
// falls back to DefaultExtensions.
func NewScanner(extensions []string, logger zerolog.Logger) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	s := &Scanner{
		extensions: make(map[string]struct{}, len(extensions)),
		logger:     logger,
	}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extensions[ext] = struct{}{}
	}
	return s
}

// ScanFolder recursively collects entries under folder. A folder that does
// not exist yields no entries and no error.
func (s *Scanner) ScanFolder(ctx context.Context, folder string) ([]Entry, error) {
	info, err := os.Stat(folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Str("folder", folder).Msg("Library folder does not exist, skipping")
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		s.logger.Warn().Str("folder", folder).Msg("Library path is not a directory, skipping")
		return nil, nil
	}

	var entries []Entry
	err = filepath.WalkDir(folder, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			s.logger.Debug().Err(walkErr).Str("path", path).Msg("Skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := s.extensions[strings.ToLower(filepath.Ext(d.Name()))]; !ok {
			return nil
		}

		title, year := ExtractTitleAndYear(d.Name())
		entries = append(entries, NewEntry(title, year, path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("folder", folder).Int("count", len(entries)).Msg("Scanned library folder")
	return entries, nil
}

// ScanFolders scans every folder concurrently and returns the entries in
// folder order.
func (s *Scanner) ScanFolders(ctx context.Context, folders []string) ([]Entry, error) {
	if len(folders) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentFolders)

	results := make([][]Entry, len(folders))
	for i, folder := range folders {
		g.Go(func() error {
			entries, err := s.ScanFolder(ctx, folder)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Entry
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}
