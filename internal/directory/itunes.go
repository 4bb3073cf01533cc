// ABOUTME: Podcast directory search client for the iTunes Search API
// ABOUTME: Maps raw search results to summaries carrying the feed URL needed to subscribe

package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://itunes.apple.com"

// Result is one podcast returned by a directory search.
type Result struct {
	Name         string
	Artist       string
	FeedURL      string
	ArtworkURL   string
	Genre        string
	EpisodeCount int
	ReleasedAt   *time.Time // most recent episode release, if reported
}

// Client searches the iTunes podcast directory.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a directory client. A nil http.Client uses a default
// with a 15 second timeout.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}
}

// itunesResponse mirrors the JSON shape of the search endpoint.
type itunesResponse struct {
	ResultCount int `json:"resultCount"`
	Results     []struct {
		CollectionName   string `json:"collectionName"`
		ArtistName       string `json:"artistName"`
		FeedURL          string `json:"feedUrl"`
		ArtworkURL600    string `json:"artworkUrl600"`
		ArtworkURL100    string `json:"artworkUrl100"`
		PrimaryGenreName string `json:"primaryGenreName"`
		TrackCount       int    `json:"trackCount"`
		ReleaseDate      string `json:"releaseDate"`
	} `json:"results"`
}

// Search queries the directory for podcasts matching term. Results
// without a feed URL are dropped since they cannot be subscribed to.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	q := url.Values{}
	q.Set("media", "podcast")
	q.Set("term", term)
	q.Set("limit", strconv.Itoa(limit))

	searchURL := c.baseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed itunesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]Result, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.FeedURL == "" {
			continue
		}

		result := Result{
			Name:         r.CollectionName,
			Artist:       r.ArtistName,
			FeedURL:      r.FeedURL,
			ArtworkURL:   r.ArtworkURL600,
			Genre:        r.PrimaryGenreName,
			EpisodeCount: r.TrackCount,
		}
		if result.ArtworkURL == "" {
			result.ArtworkURL = r.ArtworkURL100
		}
		if t, err := time.Parse(time.RFC3339, r.ReleaseDate); err == nil {
			result.ReleasedAt = &t
		}

		results = append(results, result)
	}

	return results, nil
}
