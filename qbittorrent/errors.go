package qbittorrent

import "errors"

// ErrConnectionFailed is returned when logging in to qBittorrent fails.
var ErrConnectionFailed = errors.New("connection to qBittorrent failed")
