package tautulli

import (
	"encoding/json"
	"time"
)

// HistoryResponse represents the response from get_history API
type HistoryResponse struct {
	Response Response `json:"response"`
}

// Response contains the actual data and metadata
type Response struct {
	Result  string      `json:"result"`
	Message string      `json:"message"`
	Data    HistoryData `json:"data"`
}

// HistoryData contains the history records
type HistoryData struct {
	RecordsTotal    int             `json:"recordsTotal"`
	RecordsFiltered int             `json:"recordsFiltered"`
	Data            []HistoryRecord `json:"data"`
}

// HistoryRecord represents a single history entry
type HistoryRecord struct {
	UserID          int             `json:"user_id"`
	User            string          `json:"user"`
	RatingKey       json.RawMessage `json:"rating_key"` // Can be string or number
	Title           string          `json:"title"`
	FullTitle       string          `json:"full_title"`
	Year            int             `json:"year"`
	MediaType       string          `json:"media_type"`
	GUID            string          `json:"guid"`
	Date            int64           `json:"date"`
	PercentComplete int             `json:"percent_complete"`
	WatchedStatus   float64         `json:"watched_status"`
	IMDbID          string          `json:"imdb_id"`
}

// GetWatchedTime returns the time when the item was watched
func (h *HistoryRecord) GetWatchedTime() time.Time {
	if h.Date > 0 {
		return time.Unix(h.Date, 0)
	}
	return time.Time{}
}

// IsWatched checks if the item is considered watched based on percentage
func (h *HistoryRecord) IsWatched(minPercentage float64) bool {
	return float64(h.PercentComplete) >= minPercentage || h.WatchedStatus >= 0.9
}

// IMDbCode returns the IMDb code from the explicit field or the legacy agent GUID
func (h *HistoryRecord) IMDbCode() string {
	if h.IMDbID != "" {
		return h.IMDbID
	}
	return imdbCodeRegex.FindString(h.GUID)
}
