// ABOUTME: Notification sink for aggregate sync results
// ABOUTME: The UI layer plugs in here; feed URLs in outcomes allow deep-linking back to a podcast

package syncer

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Notifier receives the aggregate result of a fleet sync run.
type Notifier interface {
	Notify(ctx context.Context, result *Aggregate) error
}

// LogNotifier reports aggregate results through the structured logger.
type LogNotifier struct {
	Logger log.FieldLogger
}

// Notify logs the summary plus one line per updated or failed podcast.
func (n *LogNotifier) Notify(_ context.Context, result *Aggregate) error {
	logger := n.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	logger.WithFields(log.Fields{
		"total_new": result.TotalNew,
		"updated":   result.UpdatedCount,
		"failed":    result.FailedCount,
	}).Info(result.Summary())

	for _, o := range result.Outcomes {
		switch o.Status {
		case StatusUpdated:
			logger.WithFields(log.Fields{
				"feed_url": o.FeedURL,
				"added":    o.Added,
			}).Infof("updated %s", o.Title)
		case StatusFailed:
			logger.WithFields(log.Fields{
				"feed_url": o.FeedURL,
			}).WithError(o.Err).Warnf("failed %s", o.Title)
		}
	}

	return nil
}
