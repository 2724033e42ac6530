package yts

import (
	"net/url"
	"strings"
)

// Trackers appended to every magnet URI
var Trackers = []string{
	"udp://open.demonii.com:1337/announce",
	"udp://tracker.openbittorrent.com:80",
}

// Variant returns the torrent matching quality, falling back to the first
// one. Variants without an info hash are never returned.
func (m *Movie) Variant(quality string) (Torrent, bool) {
	first := -1
	for i, t := range m.Torrents {
		if t.Hash == "" {
			continue
		}
		if strings.EqualFold(t.Quality, quality) {
			return t, true
		}
		if first < 0 {
			first = i
		}
	}
	if first < 0 {
		return Torrent{}, false
	}
	return m.Torrents[first], true
}

// Magnet builds a magnet URI for the requested quality
func (m *Movie) Magnet(quality string) (string, bool) {
	t, ok := m.Variant(quality)
	if !ok {
		return "", false
	}

	var b strings.Builder
	b.WriteString("magnet:?xt=urn:btih:")
	b.WriteString(t.Hash)
	b.WriteString("&dn=")
	b.WriteString(url.QueryEscape(m.Title))
	for _, tr := range Trackers {
		b.WriteString("&tr=")
		b.WriteString(url.QueryEscape(tr))
	}
	return b.String(), true
}
