package qbittorrent

// TorrentInfo contains information about a torrent
type TorrentInfo struct {
	Hash        string
	Name        string
	SavePath    string
	ContentPath string
	State       string
	Progress    float64
	Category    string
}

// IsComplete reports whether the torrent finished downloading
func (t *TorrentInfo) IsComplete() bool {
	return t.Progress >= 1
}
