// ABOUTME: Feed discovery for resolving a regular web page to its podcast feed URL
// ABOUTME: Tries the URL as a direct feed, then link rel=alternate headers, then common feed paths

package discover

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/harper/podkeep/internal/feed"
	"github.com/harper/podkeep/internal/fetch"
)

// Common feed paths to probe when other discovery methods fail
var commonFeedPaths = []string{
	"/feed.xml",
	"/feed",
	"/rss.xml",
	"/rss",
	"/podcast.xml",
	"/podcast/rss",
	"/index.xml",
}

// Errors returned by discovery
var (
	ErrNoFeedFound = errors.New("no feed found at URL")
	ErrInvalidURL  = errors.New("invalid URL")
)

// Found describes a discovered feed.
type Found struct {
	URL   string // Absolute feed URL
	Title string // Feed title (from content or link element)
}

// Discover resolves inputURL to a podcast feed URL. Strategies in order:
// direct feed, <link rel="alternate"> extraction from HTML, common path
// probing.
func Discover(ctx context.Context, fetcher fetch.Fetcher, inputURL string) (*Found, error) {
	parsedURL, err := url.Parse(inputURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: missing scheme or host", ErrInvalidURL)
	}

	result, err := fetcher.Fetch(ctx, inputURL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	// Strategy 1: the URL is the feed itself
	if record, err := feed.Parse(result.Body); err == nil {
		return &Found{URL: inputURL, Title: record.Title}, nil
	}

	// Strategy 2: look for alternate links in the HTML
	for _, candidate := range feedLinks(result.Body, parsedURL) {
		if found := verify(ctx, fetcher, candidate); found != nil {
			return found, nil
		}
	}

	// Strategy 3: probe common paths on the same host
	base := &url.URL{Scheme: parsedURL.Scheme, Host: parsedURL.Host}
	for _, path := range commonFeedPaths {
		if found := verify(ctx, fetcher, base.String()+path); found != nil {
			return found, nil
		}
	}

	return nil, ErrNoFeedFound
}

// verify fetches candidate and confirms it parses as a feed.
func verify(ctx context.Context, fetcher fetch.Fetcher, candidate string) *Found {
	result, err := fetcher.Fetch(ctx, candidate, nil, nil)
	if err != nil {
		return nil
	}
	record, err := feed.Parse(result.Body)
	if err != nil {
		return nil
	}
	return &Found{URL: candidate, Title: record.Title}
}

// feedLinks extracts candidate feed URLs from <link rel="alternate">
// elements, resolved against the page URL.
func feedLinks(body []byte, pageURL *url.URL) []string {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, typ, href string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = strings.ToLower(attr.Val)
				case "type":
					typ = strings.ToLower(attr.Val)
				case "href":
					href = attr.Val
				}
			}
			if rel == "alternate" && href != "" && isFeedType(typ) {
				if resolved, err := pageURL.Parse(href); err == nil {
					links = append(links, resolved.String())
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return links
}

func isFeedType(typ string) bool {
	return strings.Contains(typ, "rss") || strings.Contains(typ, "atom") || strings.Contains(typ, "xml")
}
