// ABOUTME: Episode merge engine reconciling a fetched feed against the persisted episode set
// ABOUTME: Pure, idempotent, and order-preserving; the persisted set only ever grows

package merge

import (
	"github.com/harper/podkeep/internal/feed"
	"github.com/harper/podkeep/internal/models"
)

// Result holds the outcome of one merge.
// Updated is the full episode set to persist: newly fetched episodes in
// feed order, followed by the previously persisted episodes. Added holds
// just the new ones.
type Result struct {
	Updated []*models.Episode
	Added   []*models.Episode
}

// Merge computes the new-episode delta between the persisted set and a
// fetched feed.
//
// Items are matched by natural key (release date, title). An item whose
// key is already persisted is skipped: episode data is immutable once
// seen, even if the source feed edited it. Duplicate keys within one
// fetched batch keep only the first occurrence. Episodes absent from the
// fetch are never dropped; feeds are a rolling window and omission does
// not imply deletion.
//
// Merging the same fetch twice yields an empty Added and an unchanged
// Updated on the second call.
func Merge(existing []*models.Episode, fetched []feed.Item, podcastID string) Result {
	seen := make(map[models.NaturalKey]struct{}, len(existing)+len(fetched))
	for _, e := range existing {
		seen[e.NaturalKey()] = struct{}{}
	}

	var added []*models.Episode
	for _, item := range fetched {
		key := models.KeyFor(item.ReleaseAt, item.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		e := models.NewEpisode(podcastID, item.Title)
		e.GUID = item.GUID
		e.Description = item.Description
		e.MediaURL = item.MediaURL
		e.ReleaseAt = item.ReleaseAt
		e.Duration = item.Duration
		added = append(added, e)
	}

	updated := make([]*models.Episode, 0, len(added)+len(existing))
	updated = append(updated, added...)
	updated = append(updated, existing...)

	return Result{Updated: updated, Added: added}
}
