// ABOUTME: Tests for the iTunes directory search client
// ABOUTME: Uses an httptest server serving canned search API responses

package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const searchResponse = `{
	"resultCount": 3,
	"results": [
		{
			"collectionName": "Go Time",
			"artistName": "Changelog Media",
			"feedUrl": "https://changelog.com/gotime/feed",
			"artworkUrl600": "https://example.com/gotime600.jpg",
			"artworkUrl100": "https://example.com/gotime100.jpg",
			"primaryGenreName": "Technology",
			"trackCount": 300,
			"releaseDate": "2024-01-15T12:00:00Z"
		},
		{
			"collectionName": "No Feed Show",
			"artistName": "Nobody",
			"feedUrl": "",
			"trackCount": 10
		},
		{
			"collectionName": "Small Art Show",
			"artistName": "Someone",
			"feedUrl": "https://example.com/small/feed",
			"artworkUrl100": "https://example.com/small100.jpg",
			"releaseDate": "not a date"
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(nil)
	client.baseURL = server.URL
	return client
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("media") != "podcast" {
			t.Errorf("media = %q, want podcast", q.Get("media"))
		}
		if q.Get("term") != "go time" {
			t.Errorf("term = %q, want %q", q.Get("term"), "go time")
		}
		if q.Get("limit") != "5" {
			t.Errorf("limit = %q, want 5", q.Get("limit"))
		}
		w.Write([]byte(searchResponse))
	})

	results, err := client.Search(context.Background(), "go time", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	// The feedless entry must be dropped
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	first := results[0]
	if first.Name != "Go Time" {
		t.Errorf("Name = %q, want Go Time", first.Name)
	}
	if first.Artist != "Changelog Media" {
		t.Errorf("Artist = %q, want Changelog Media", first.Artist)
	}
	if first.FeedURL != "https://changelog.com/gotime/feed" {
		t.Errorf("FeedURL = %q", first.FeedURL)
	}
	if first.ArtworkURL != "https://example.com/gotime600.jpg" {
		t.Errorf("ArtworkURL = %q, want the 600px artwork", first.ArtworkURL)
	}
	if first.Genre != "Technology" {
		t.Errorf("Genre = %q, want Technology", first.Genre)
	}
	if first.EpisodeCount != 300 {
		t.Errorf("EpisodeCount = %d, want 300", first.EpisodeCount)
	}
	if first.ReleasedAt == nil {
		t.Error("expected ReleasedAt to be parsed")
	}

	second := results[1]
	if second.ArtworkURL != "https://example.com/small100.jpg" {
		t.Errorf("ArtworkURL = %q, want fallback to 100px artwork", second.ArtworkURL)
	}
	if second.ReleasedAt != nil {
		t.Errorf("ReleasedAt = %v, want nil for unparseable date", second.ReleasedAt)
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("limit = %q, want default 20", got)
		}
		w.Write([]byte(`{"resultCount": 0, "results": []}`))
	})

	results, err := client.Search(context.Background(), "anything", 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestSearch_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := client.Search(context.Background(), "anything", 5); err == nil {
		t.Error("expected error on server failure")
	}
}

func TestSearch_BadJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	if _, err := client.Search(context.Background(), "anything", 5); err == nil {
		t.Error("expected error on malformed response")
	}
}
