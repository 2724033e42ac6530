package tautulli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverInfoOK(w http.ResponseWriter) {
	json.NewEncoder(w).Encode(map[string]any{
		"response": map[string]any{"result": "success", "data": map[string]any{}},
	})
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("missing URL", func(t *testing.T) {
		_, err := NewClient("", "key", logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "URL is required")
	})

	t.Run("missing API key", func(t *testing.T) {
		_, err := NewClient("http://localhost:8181", "", logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key is required")
	})

	t.Run("connection test", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v2", r.URL.Path)
			assert.Equal(t, "get_server_info", r.URL.Query().Get("cmd"))
			assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
			serverInfoOK(w)
		}))
		defer server.Close()

		client, err := NewClient(server.URL+"/", "secret", logger)
		require.NoError(t, err)
		assert.Equal(t, server.URL, client.baseURL)
	})

	t.Run("api failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"response":{"result":"error","message":"Invalid apikey"}}`)
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "bad", logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAPIFailure)
		assert.Contains(t, err.Error(), "Invalid apikey")
	})
}

func TestWatchedCodes(t *testing.T) {
	pages := map[string]string{
		"0": `{"response":{"result":"success","data":{"recordsTotal":3,"recordsFiltered":3,"data":[
			{"title":"Inception","imdb_id":"tt1375666","percent_complete":98},
			{"title":"Heat","guid":"com.plexapp.agents.imdb://tt0113277?lang=en","percent_complete":20,"watched_status":1},
			{"title":"Alien","guid":"com.plexapp.agents.imdb://tt0078748?lang=en","percent_complete":40}
		]}}}`,
		"2": `{"response":{"result":"success","data":{"recordsTotal":3,"recordsFiltered":3,"data":[]}}}`,
	}

	var historyCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("cmd") {
		case "get_server_info":
			serverInfoOK(w)
		case "get_history":
			historyCalls++
			assert.Equal(t, "movie", q.Get("media_type"))
			fmt.Fprint(w, pages[q.Get("start")])
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key", zerolog.Nop())
	require.NoError(t, err)

	codes, err := client.WatchedCodes(context.Background(), 85)
	require.NoError(t, err)
	assert.Equal(t, []string{"tt1375666", "tt0113277"}, codes)
	assert.Equal(t, 1, historyCalls)
}

func TestWatchedCodesPaging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("cmd") == "get_server_info" {
			serverInfoOK(w)
			return
		}
		switch q.Get("start") {
		case "0":
			fmt.Fprint(w, `{"response":{"result":"success","data":{"recordsFiltered":3,"data":[
				{"imdb_id":"tt1","percent_complete":100},{"imdb_id":"tt2","percent_complete":100}]}}}`)
		case "2":
			fmt.Fprint(w, `{"response":{"result":"success","data":{"recordsFiltered":3,"data":[
				{"imdb_id":"tt1","percent_complete":100}]}}}`)
		default:
			t.Errorf("unexpected start %q", q.Get("start"))
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key", zerolog.Nop())
	require.NoError(t, err)
	client.pageLength = 2

	codes, err := client.WatchedCodes(context.Background(), 85)
	require.NoError(t, err)
	assert.Equal(t, []string{"tt1", "tt2"}, codes)
}

func TestWatchedCodesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cmd") == "get_server_info" {
			serverInfoOK(w)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key", zerolog.Nop())
	require.NoError(t, err)

	_, err = client.WatchedCodes(context.Background(), 85)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get history")
}

func TestHistoryRecord(t *testing.T) {
	r := HistoryRecord{GUID: "plex://movie/5d776b59ad5437001f79c6f8"}
	assert.Empty(t, r.IMDbCode())
	assert.False(t, r.IsWatched(85))
	assert.True(t, r.GetWatchedTime().IsZero())

	r.PercentComplete = 90
	assert.True(t, r.IsWatched(85))
}
