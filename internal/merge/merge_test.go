// ABOUTME: Tests for the episode merge engine
// ABOUTME: Covers delta computation, ordering, dedup, omission tolerance, and idempotence

package merge

import (
	"testing"
	"time"

	"github.com/harper/podkeep/internal/feed"
	"github.com/harper/podkeep/internal/models"
)

func date(day int) *time.Time {
	t := time.Date(2021, 1, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func persisted(podcastID, title string, releaseAt *time.Time) *models.Episode {
	e := models.NewEpisode(podcastID, title)
	e.ReleaseAt = releaseAt
	return e
}

func TestMerge_NewEpisode(t *testing.T) {
	existing := []*models.Episode{persisted("pod-1", "Pilot", date(1))}
	fetched := []feed.Item{
		{Title: "Pilot", ReleaseAt: date(1), MediaURL: "https://example.com/ep1.mp3"},
		{Title: "Part Two", ReleaseAt: date(8), MediaURL: "https://example.com/ep2.mp3"},
	}

	result := Merge(existing, fetched, "pod-1")

	if len(result.Added) != 1 {
		t.Fatalf("len(Added) = %d, want 1", len(result.Added))
	}
	if result.Added[0].Title != "Part Two" {
		t.Errorf("Added[0].Title = %q, want %q", result.Added[0].Title, "Part Two")
	}
	if result.Added[0].PodcastID != "pod-1" {
		t.Errorf("Added[0].PodcastID = %q, want %q", result.Added[0].PodcastID, "pod-1")
	}

	// New episodes first, then previously persisted ones
	if len(result.Updated) != 2 {
		t.Fatalf("len(Updated) = %d, want 2", len(result.Updated))
	}
	if result.Updated[0].Title != "Part Two" || result.Updated[1].Title != "Pilot" {
		t.Errorf("Updated order = [%s, %s], want [Part Two, Pilot]",
			result.Updated[0].Title, result.Updated[1].Title)
	}
}

func TestMerge_EmptyFetch(t *testing.T) {
	result := Merge(nil, nil, "pod-1")
	if len(result.Added) != 0 {
		t.Errorf("len(Added) = %d, want 0", len(result.Added))
	}
	if len(result.Updated) != 0 {
		t.Errorf("len(Updated) = %d, want 0", len(result.Updated))
	}
}

func TestMerge_Idempotent(t *testing.T) {
	fetched := []feed.Item{
		{Title: "Pilot", ReleaseAt: date(1)},
		{Title: "Part Two", ReleaseAt: date(8)},
	}

	first := Merge(nil, fetched, "pod-1")
	if len(first.Added) != 2 {
		t.Fatalf("first merge added %d, want 2", len(first.Added))
	}

	second := Merge(first.Updated, fetched, "pod-1")
	if len(second.Added) != 0 {
		t.Errorf("second merge added %d, want 0", len(second.Added))
	}
	if len(second.Updated) != len(first.Updated) {
		t.Fatalf("second merge changed set size: %d vs %d", len(second.Updated), len(first.Updated))
	}
	for i := range second.Updated {
		if second.Updated[i].ID != first.Updated[i].ID {
			t.Errorf("episode %d changed identity across idempotent merges", i)
		}
	}
}

func TestMerge_DuplicateKeysInBatch(t *testing.T) {
	fetched := []feed.Item{
		{Title: "Pilot", ReleaseAt: date(1), GUID: "first"},
		{Title: "Pilot", ReleaseAt: date(1), GUID: "second"},
	}

	result := Merge(nil, fetched, "pod-1")
	if len(result.Added) != 1 {
		t.Fatalf("len(Added) = %d, want 1 (in-batch duplicate dropped)", len(result.Added))
	}
	if result.Added[0].GUID != "first" {
		t.Errorf("kept GUID = %q, want the first occurrence", result.Added[0].GUID)
	}
}

func TestMerge_OmittedEpisodesSurvive(t *testing.T) {
	existing := []*models.Episode{
		persisted("pod-1", "Ancient Episode", date(1)),
	}
	// The rolling feed window no longer includes the old episode
	fetched := []feed.Item{
		{Title: "Fresh Episode", ReleaseAt: date(20)},
	}

	result := Merge(existing, fetched, "pod-1")

	if len(result.Updated) != 2 {
		t.Fatalf("len(Updated) = %d, want 2 (omitted episode retained)", len(result.Updated))
	}
	if result.Updated[1].Title != "Ancient Episode" {
		t.Errorf("Updated[1].Title = %q, want the retained episode", result.Updated[1].Title)
	}
}

func TestMerge_ExistingEpisodeNotMutated(t *testing.T) {
	existing := []*models.Episode{persisted("pod-1", "Pilot", date(1))}
	existing[0].Description = "original notes"

	// The feed edited the description after first publication
	fetched := []feed.Item{
		{Title: "Pilot", ReleaseAt: date(1), Description: "revised notes"},
	}

	result := Merge(existing, fetched, "pod-1")

	if len(result.Added) != 0 {
		t.Fatalf("len(Added) = %d, want 0", len(result.Added))
	}
	if result.Updated[0].Description != "original notes" {
		t.Errorf("persisted episode was mutated: %q", result.Updated[0].Description)
	}
}

func TestMerge_MissingDateTitleTieBreak(t *testing.T) {
	existing := []*models.Episode{persisted("pod-1", "Undated", nil)}
	fetched := []feed.Item{
		{Title: "Undated"},
		{Title: "Also Undated"},
	}

	result := Merge(existing, fetched, "pod-1")

	if len(result.Added) != 1 {
		t.Fatalf("len(Added) = %d, want 1 (undated duplicate matched by title)", len(result.Added))
	}
	if result.Added[0].Title != "Also Undated" {
		t.Errorf("Added[0].Title = %q, want %q", result.Added[0].Title, "Also Undated")
	}
}
