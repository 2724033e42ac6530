package overseerr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authOK(w http.ResponseWriter) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":          1,
		"displayName": "Test User",
	})
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		apiKey  string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:5055",
			apiKey:  "test-key",
			wantErr: false,
		},
		{
			name:    "missing URL",
			baseURL: "",
			apiKey:  "test-key",
			wantErr: true,
			errMsg:  "URL is required",
		},
		{
			name:    "missing API key",
			baseURL: "http://localhost:5055",
			apiKey:  "",
			wantErr: true,
			errMsg:  "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr {
				_, err := NewClient(tt.baseURL, tt.apiKey, logger)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/auth/me", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
				authOK(w)
			}))
			defer server.Close()

			client, err := NewClient(server.URL+"/", tt.apiKey, logger)
			require.NoError(t, err)
			assert.Equal(t, server.URL, client.baseURL)
			assert.Equal(t, tt.apiKey, client.apiKey)
			assert.Equal(t, DefaultPageSize, client.pageSize)
		})
	}
}

func TestNewClientUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "bad", zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authOK(w)
	}))
	defer server.Close()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient(server.URL, "test-key", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with page size", func(t *testing.T) {
		client, err := NewClient(server.URL, "test-key", logger, WithPageSize(50))
		require.NoError(t, err)
		assert.Equal(t, 50, client.pageSize)
	})

	t.Run("zero page size keeps default", func(t *testing.T) {
		client, err := NewClient(server.URL, "test-key", logger, WithPageSize(0))
		require.NoError(t, err)
		assert.Equal(t, DefaultPageSize, client.pageSize)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(server.URL, "test-key", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})
}

func TestWatchlistCodes(t *testing.T) {
	pages := []string{
		`{"pageInfo":{"page":1,"pages":2,"pageSize":2,"results":4},"results":[
			{"id":1,"status":2,"type":"movie","media":{"tmdbId":27205,"imdbId":"tt1375666"}},
			{"id":2,"status":3,"type":"movie","media":{"tmdbId":949,"imdbId":"tt0113277"}}]}`,
		`{"pageInfo":{"page":2,"pages":2,"pageSize":2,"results":4},"results":[
			{"id":3,"status":1,"type":"tv","media":{"tmdbId":1399,"imdbId":"tt0944947"}},
			{"id":4,"status":5,"type":"movie","media":{"tmdbId":348}},
			{"id":5,"status":1,"type":"movie","media":{"tmdbId":27205,"imdbId":"tt1375666"}}]}`,
	}

	var requestCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/me":
			authOK(w)
		case "/api/v1/request":
			q := r.URL.Query()
			assert.Equal(t, "2", q.Get("take"))
			assert.Equal(t, fmt.Sprint(requestCalls*2), q.Get("skip"))
			fmt.Fprint(w, pages[requestCalls])
			requestCalls++
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key", zerolog.Nop(), WithPageSize(2))
	require.NoError(t, err)

	codes, err := client.WatchlistCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tt1375666"}, codes)
	assert.Equal(t, 2, requestCalls)
}

func TestGetMovieRequestsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/me" {
			authOK(w)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key", zerolog.Nop())
	require.NoError(t, err)

	_, err = client.GetMovieRequests(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get requests")
	assert.Contains(t, err.Error(), "status 500")
}

func TestRequestStatus(t *testing.T) {
	tests := []struct {
		status   RequestStatus
		expected string
	}{
		{RequestStatusPending, "PENDING"},
		{RequestStatusApproved, "APPROVED"},
		{RequestStatusDeclined, "DECLINED"},
		{RequestStatusProcessing, "PROCESSING"},
		{RequestStatusPartiallyAvailable, "PARTIALLY_AVAILABLE"},
		{RequestStatusAvailable, "AVAILABLE"},
		{RequestStatusFailed, "FAILED"},
		{RequestStatusUnknown, "UNKNOWN"},
		{RequestStatus(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestMediaRequest(t *testing.T) {
	movieReq := MediaRequest{Type: MediaTypeMovie, Status: RequestStatusPending}
	tvReq := MediaRequest{Type: MediaTypeTV}

	assert.True(t, movieReq.IsMovieRequest())
	assert.False(t, tvReq.IsMovieRequest())
	assert.True(t, movieReq.OnWatchlist())

	movieReq.Status = RequestStatusDeclined
	assert.False(t, movieReq.OnWatchlist())
}

func TestPageInfo(t *testing.T) {
	pi := PageInfo{Page: 2, Pages: 5}
	next, err := pi.NextPage()
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	pi.Page = 5
	_, err = pi.NextPage()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no more pages")

	resp := RequestsResponse{PageInfo: PageInfo{Page: 2, Pages: 5}}
	assert.True(t, resp.HasMorePages())
	resp.PageInfo.Page = 5
	assert.False(t, resp.HasMorePages())
}

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "Not Found"}
	assert.Equal(t, "overseerr API error: status 404: Not Found", err.Error())
	assert.True(t, err.IsNotFound())
	assert.NotErrorIs(t, err, ErrUnauthorized)

	for code, expected := range map[int]bool{401: true, 403: true, 404: false, 500: false} {
		err := &APIError{StatusCode: code}
		assert.Equal(t, expected, err.IsUnauthorized())
	}
}
