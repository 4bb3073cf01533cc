// ABOUTME: Podcast model representing a subscribed feed with HTTP caching support
// ABOUTME: Tracks podcast metadata, subscription state, fetch history, and conditional request headers

package models

import (
	"time"

	"github.com/google/uuid"
)

// Podcast represents a podcast subscription identified by its feed URL.
type Podcast struct {
	ID            string     // Unique identifier for the podcast
	FeedURL       string     // Feed URL (unique, stable key)
	Title         string     // Podcast title (from feed metadata)
	Description   string     // Podcast description
	ImageURL      string     // Cover artwork URL
	Subscribed    bool       // Whether the podcast is currently subscribed
	ETag          *string    // HTTP ETag header for conditional requests
	LastModified  *string    // HTTP Last-Modified header for conditional requests
	LastFetchedAt *time.Time // Timestamp of last successful fetch
	LastUpdatedAt *time.Time // Timestamp of last fetch that produced new episodes
	LastError     *string    // Last error message (if any)
	ErrorCount    int        // Consecutive error count
	CreatedAt     time.Time  // Subscription creation timestamp
}

// NewPodcast creates a subscribed Podcast with a generated ID and timestamp.
func NewPodcast(feedURL string) *Podcast {
	return &Podcast{
		ID:         uuid.New().String(),
		FeedURL:    feedURL,
		Subscribed: true,
		CreatedAt:  time.Now(),
	}
}

// SetCacheHeaders updates the podcast's HTTP caching headers for conditional requests.
func (p *Podcast) SetCacheHeaders(etag, lastModified string) {
	if etag != "" {
		p.ETag = &etag
	}
	if lastModified != "" {
		p.LastModified = &lastModified
	}
}

// DisplayName returns the podcast title, falling back to the feed URL.
func (p *Podcast) DisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	return p.FeedURL
}
