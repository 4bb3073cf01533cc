// ABOUTME: Episode model and the natural key used to deduplicate feed items
// ABOUTME: Episodes are immutable once persisted; feeds provide no stable item identifier

package models

import (
	"time"

	"github.com/google/uuid"
)

// Episode represents a single episode of a podcast.
// Episode rows are append-only: once persisted they are never updated,
// even if the source feed later edits the item.
type Episode struct {
	ID          string
	PodcastID   string
	GUID        string     // Item GUID as seen in the feed, informational only
	Title       string
	Description string
	MediaURL    string     // Enclosure URL
	ReleaseAt   *time.Time // nil when the feed omitted or mangled the date
	Duration    int        // Duration in seconds, 0 if unknown
	CreatedAt   time.Time
}

// NewEpisode creates a new Episode bound to podcastID.
func NewEpisode(podcastID, title string) *Episode {
	return &Episode{
		ID:        uuid.New().String(),
		PodcastID: podcastID,
		Title:     title,
		CreatedAt: time.Now(),
	}
}

// NaturalKey identifies an episode within a podcast by (release date, title).
// Episodes without a release date fall back to a title-only key.
type NaturalKey struct {
	Release string
	Title   string
}

// KeyFor builds the natural key for a release date and title.
// The release component is normalized to UTC so that the same instant
// expressed in different zones produces the same key.
func KeyFor(releaseAt *time.Time, title string) NaturalKey {
	key := NaturalKey{Title: title}
	if releaseAt != nil {
		key.Release = releaseAt.UTC().Format(time.RFC3339)
	}
	return key
}

// NaturalKey returns the episode's natural key.
func (e *Episode) NaturalKey() NaturalKey {
	return KeyFor(e.ReleaseAt, e.Title)
}
