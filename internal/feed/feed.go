// ABOUTME: RSS/Atom feed parsing using gofeed library
// ABOUTME: Normalizes a raw feed document into podcast metadata plus an ordered list of episode items

package feed

import (
	"errors"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/harper/podkeep/internal/timeutil"
)

// ErrMalformedDocument is returned when the document cannot be recognized
// as an RSS or Atom feed at all.
var ErrMalformedDocument = errors.New("malformed feed document")

// Item is one normalized episode entry from a fetched feed.
type Item struct {
	GUID        string
	Title       string
	Description string
	MediaURL    string
	ReleaseAt   *time.Time // nil when the feed omits or mangles the date
	Duration    int        // seconds, 0 if unknown
}

// Record is the parsed representation of one feed fetch. It is never persisted.
type Record struct {
	Title       string
	Description string
	ImageURL    string
	Items       []Item // feed order preserved
	Skipped     int    // malformed items dropped during normalization
}

// Parse normalizes raw feed data into a Record.
// Missing optional fields become zero values. Items that carry neither a
// title nor a media URL are unidentifiable and are skipped rather than
// failing the document. Only an unrecognizable document is an error.
func Parse(data []byte) (*Record, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	record := &Record{
		Title:       feed.Title,
		Description: feed.Description,
		Items:       make([]Item, 0, len(feed.Items)),
	}

	if feed.Image != nil {
		record.ImageURL = feed.Image.URL
	}
	if record.ImageURL == "" && feed.ITunesExt != nil {
		record.ImageURL = feed.ITunesExt.Image
	}

	for _, raw := range feed.Items {
		if raw == nil {
			record.Skipped++
			continue
		}

		item := Item{
			GUID:        raw.GUID,
			Title:       raw.Title,
			Description: raw.Description,
		}

		if item.Description == "" {
			item.Description = raw.Content
		}

		if len(raw.Enclosures) > 0 && raw.Enclosures[0] != nil {
			item.MediaURL = raw.Enclosures[0].URL
		}
		if item.MediaURL == "" {
			item.MediaURL = raw.Link
		}

		// An item with no title and no media is unidentifiable; drop it
		// and keep going.
		if item.Title == "" && item.MediaURL == "" {
			record.Skipped++
			continue
		}

		// Use PublishedParsed or fall back to UpdatedParsed. An item
		// without either stays in the record with a nil ReleaseAt and
		// sorts last in date-ordered views.
		if raw.PublishedParsed != nil {
			item.ReleaseAt = raw.PublishedParsed
		} else if raw.UpdatedParsed != nil {
			item.ReleaseAt = raw.UpdatedParsed
		}

		if raw.ITunesExt != nil {
			if secs, ok := timeutil.ParseDuration(raw.ITunesExt.Duration); ok {
				item.Duration = secs
			}
		}

		record.Items = append(record.Items, item)
	}

	return record, nil
}
