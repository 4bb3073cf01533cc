// ABOUTME: Fleet sync: fan-out across all subscribed podcasts with bounded parallelism
// ABOUTME: Collects every per-podcast outcome into one aggregate result; failures never abort siblings

package syncer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Aggregate is the result of one fleet sync run.
type Aggregate struct {
	Outcomes     []Outcome // one per subscribed podcast, in subscription order
	TotalNew     int       // new episodes across all podcasts
	UpdatedCount int       // podcasts that gained episodes
	FailedCount  int       // podcasts whose sync failed
}

// Summary renders the aggregate as a single human-readable line.
func (a *Aggregate) Summary() string {
	s := fmt.Sprintf("%d new episode(s) across %d podcast(s)", a.TotalNew, a.UpdatedCount)
	if a.FailedCount > 0 {
		s += fmt.Sprintf(", %d failed", a.FailedCount)
	}
	return s
}

// SyncAll syncs every subscribed podcast. Distinct podcasts run in
// parallel up to the configured concurrency; per-podcast exclusivity
// still holds through Sync. One podcast's failure is isolated: it shows
// up as a Failed outcome and never aborts the run. The returned error is
// non-nil only when the subscription list itself cannot be loaded.
func (c *Coordinator) SyncAll(ctx context.Context) (*Aggregate, error) {
	ids, err := c.store.ListSubscribedIDs()
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	outcomes := make([]Outcome, len(ids))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			outcomes[i] = c.Sync(ctx, id)
			return nil
		})
	}
	// Workers never return errors; outcomes carry the failures.
	_ = g.Wait()

	agg := &Aggregate{Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Status {
		case StatusUpdated:
			agg.UpdatedCount++
			agg.TotalNew += o.Added
		case StatusFailed:
			agg.FailedCount++
		}
	}

	return agg, nil
}

// SyncAllAndNotify runs a fleet sync and delivers the aggregate to the
// notifier. Used by the background trigger path.
func (c *Coordinator) SyncAllAndNotify(ctx context.Context, n Notifier) (*Aggregate, error) {
	agg, err := c.SyncAll(ctx)
	if err != nil {
		return nil, err
	}
	if n != nil {
		if err := n.Notify(ctx, agg); err != nil {
			c.log.WithError(err).Warn("notifier failed")
		}
	}
	return agg, nil
}
