// ABOUTME: Storage interface and errors for podcast and episode persistence
// ABOUTME: Defines the uniqueness, ordering, and transactional contracts consumed by the sync engine

package storage

import (
	"errors"
	"time"

	"github.com/harper/podkeep/internal/models"
)

// ErrNotFound is returned when a podcast or episode does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence contract for podcasts and episodes.
//
// Uniqueness: podcasts are unique by feed URL; episodes are unique within
// a podcast by their natural key (release date, title).
//
// Ordering: ListEpisodes returns episodes in the order SaveEpisodes last
// persisted them.
//
// SaveEpisodes is transactional: either every new episode in the set
// commits or none do. Episode content columns are never updated once
// written.
type Store interface {
	// Close closes the store and releases resources.
	Close() error

	// Podcast operations

	// CreatePodcast stores a new podcast.
	CreatePodcast(p *models.Podcast) error

	// GetPodcast retrieves a podcast by ID.
	GetPodcast(id string) (*models.Podcast, error)

	// GetPodcastByURL finds a podcast by its feed URL.
	GetPodcastByURL(feedURL string) (*models.Podcast, error)

	// ListPodcasts returns all podcasts, sorted by title.
	ListPodcasts() ([]*models.Podcast, error)

	// ListSubscribedIDs returns the IDs of all subscribed podcasts in
	// subscription order.
	ListSubscribedIDs() ([]string, error)

	// UpdatePodcast updates podcast-level metadata and subscription state.
	UpdatePodcast(p *models.Podcast) error

	// DeletePodcast removes a podcast and all its episodes (cascade).
	DeletePodcast(id string) error

	// UpdateFetchState records a successful fetch: caching headers,
	// fetch timestamp, and cleared error state.
	UpdateFetchState(podcastID string, etag, lastModified *string, fetchedAt time.Time) error

	// RecordFetchError records a fetch error and bumps the error count.
	RecordFetchError(podcastID, errMsg string) error

	// Episode operations

	// ListEpisodes returns the podcast's episodes in persisted order.
	ListEpisodes(podcastID string) ([]*models.Episode, error)

	// GetEpisode retrieves an episode by ID.
	GetEpisode(id string) (*models.Episode, error)

	// SaveEpisodes persists the full ordered episode set for a podcast in
	// one transaction. Rows already present keep their content and only
	// have their position refreshed; new rows are inserted.
	SaveEpisodes(podcastID string, episodes []*models.Episode) error

	// CountEpisodes returns the number of persisted episodes for a podcast.
	CountEpisodes(podcastID string) (int, error)
}
