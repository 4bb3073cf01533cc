// ABOUTME: Per-podcast sync coordinator: fetch, parse, merge, persist, report
// ABOUTME: Coalesces concurrent syncs of the same podcast into one in-flight operation

package syncer

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/harper/podkeep/internal/feed"
	"github.com/harper/podkeep/internal/fetch"
	"github.com/harper/podkeep/internal/merge"
	"github.com/harper/podkeep/internal/storage"
)

// Status classifies the result of one podcast sync.
type Status int

const (
	// StatusUnchanged means the fetch produced no new episodes.
	StatusUnchanged Status = iota
	// StatusUpdated means new episodes were persisted.
	StatusUpdated
	// StatusFailed means the sync did not complete; Outcome.Err has the reason.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusUpdated:
		return "updated"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one sync run for one podcast.
type Outcome struct {
	PodcastID string
	FeedURL   string
	Title     string
	Added     int
	Status    Status
	Err       error
}

// Options configures a Coordinator.
type Options struct {
	// FetchTimeout bounds each feed fetch. Defaults to fetch.DefaultTimeout.
	FetchTimeout time.Duration
	// Concurrency limits parallel podcast syncs in SyncAll. Defaults to 4.
	Concurrency int
	// Logger receives structured sync logging. Defaults to the standard logger.
	Logger log.FieldLogger
}

// Coordinator orchestrates podcast syncs against a Fetcher and a Store.
// Dependencies are injected; the Coordinator holds no global state.
type Coordinator struct {
	fetcher     fetch.Fetcher
	store       storage.Store
	timeout     time.Duration
	concurrency int
	log         log.FieldLogger
	flight      singleflight.Group
}

// New creates a Coordinator.
func New(fetcher fetch.Fetcher, store storage.Store, opts Options) *Coordinator {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = fetch.DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}
	return &Coordinator{
		fetcher:     fetcher,
		store:       store,
		timeout:     opts.FetchTimeout,
		concurrency: opts.Concurrency,
		log:         opts.Logger,
	}
}

// Sync fetches, parses, merges, and persists one podcast and reports the
// outcome. Errors are folded into the outcome, never returned.
//
// Concurrency policy is wait-and-share: at most one sync per podcast ID is
// in flight; concurrent callers for the same ID block on the first call
// and receive its outcome. The in-flight run uses the first caller's
// context, so a late joiner cannot cancel it.
func (c *Coordinator) Sync(ctx context.Context, podcastID string) Outcome {
	v, _, _ := c.flight.Do(podcastID, func() (any, error) {
		return c.syncOne(ctx, podcastID), nil
	})
	return v.(Outcome)
}

func (c *Coordinator) syncOne(ctx context.Context, podcastID string) Outcome {
	logger := c.log.WithField("podcast_id", podcastID)

	podcast, err := c.store.GetPodcast(podcastID)
	if err != nil {
		return Outcome{PodcastID: podcastID, Status: StatusFailed, Err: fmt.Errorf("load podcast: %w", err)}
	}

	outcome := Outcome{PodcastID: podcastID, FeedURL: podcast.FeedURL, Title: podcast.DisplayName()}

	existing, err := c.store.ListEpisodes(podcastID)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("load episodes: %w", err)
		return outcome
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.fetcher.Fetch(fetchCtx, podcast.FeedURL, podcast.ETag, podcast.LastModified)
	if err != nil {
		c.recordError(logger, podcastID, err)
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("fetch feed: %w", err)
		return outcome
	}

	now := time.Now()

	if result.NotModified {
		logger.Debug("feed not modified")
		if err := c.store.UpdateFetchState(podcastID, podcast.ETag, podcast.LastModified, now); err != nil {
			outcome.Status = StatusFailed
			outcome.Err = fmt.Errorf("update fetch state: %w", err)
			return outcome
		}
		return outcome
	}

	record, err := feed.Parse(result.Body)
	if err != nil {
		c.recordError(logger, podcastID, err)
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("parse feed: %w", err)
		return outcome
	}

	if record.Skipped > 0 {
		logger.WithField("skipped", record.Skipped).Debug("skipped malformed feed items")
	}

	merged := merge.Merge(existing, record.Items, podcastID)

	// Cancellation is honored up to this point; once persistence starts
	// it runs to completion or rolls back as a whole.
	if err := ctx.Err(); err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}

	if len(merged.Added) > 0 {
		if err := c.store.SaveEpisodes(podcastID, merged.Updated); err != nil {
			outcome.Status = StatusFailed
			outcome.Err = fmt.Errorf("save episodes: %w", err)
			return outcome
		}
		podcast.LastUpdatedAt = &now
	}

	// Episode rows are immutable, but podcast-level metadata tracks the feed.
	if record.Title != "" {
		podcast.Title = record.Title
	}
	if record.Description != "" {
		podcast.Description = record.Description
	}
	if record.ImageURL != "" {
		podcast.ImageURL = record.ImageURL
	}
	podcast.SetCacheHeaders(result.ETag, result.LastModified)

	if err := c.store.UpdatePodcast(podcast); err != nil {
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("update podcast: %w", err)
		return outcome
	}
	if err := c.store.UpdateFetchState(podcastID, podcast.ETag, podcast.LastModified, now); err != nil {
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("update fetch state: %w", err)
		return outcome
	}

	outcome.Title = podcast.DisplayName()
	outcome.Added = len(merged.Added)
	if outcome.Added > 0 {
		outcome.Status = StatusUpdated
		logger.WithField("added", outcome.Added).Info("new episodes")
	}

	return outcome
}

func (c *Coordinator) recordError(logger log.FieldLogger, podcastID string, cause error) {
	if err := c.store.RecordFetchError(podcastID, cause.Error()); err != nil {
		logger.WithError(err).Warn("failed to record fetch error")
	}
}
