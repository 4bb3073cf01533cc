// ABOUTME: Helper for resolving a podcast reference given on the command line
// ABOUTME: Accepts a feed URL first, then a podcast ID

package main

import (
	"errors"
	"fmt"

	"github.com/harper/podkeep/internal/models"
	"github.com/harper/podkeep/internal/storage"
)

// resolvePodcast looks up a podcast by feed URL, falling back to ID.
func resolvePodcast(ref string) (*models.Podcast, error) {
	p, err := store.GetPodcastByURL(ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	p, err = store.GetPodcast(ref)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("podcast not found: %s", ref)
	}
	return p, err
}
