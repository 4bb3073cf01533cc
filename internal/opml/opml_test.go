// ABOUTME: Tests for OPML subscription list parsing and writing
// ABOUTME: Covers nested folder flattening and write/parse round-trips

package opml

import (
	"bytes"
	"strings"
	"testing"
)

func TestParse_Flat(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>Podcasts</title></head>
  <body>
    <outline text="Go Time" type="rss" xmlUrl="https://changelog.com/gotime/feed"/>
    <outline text="Another" title="Another Show" type="rss" xmlUrl="https://example.com/feed.xml"/>
  </body>
</opml>`

	subs, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("len(subs) = %d, want 2", len(subs))
	}
	if subs[0].Title != "Go Time" || subs[0].FeedURL != "https://changelog.com/gotime/feed" {
		t.Errorf("subs[0] = %+v", subs[0])
	}
	// title attribute wins over text when both are present
	if subs[1].Title != "Another Show" {
		t.Errorf("subs[1].Title = %q, want Another Show", subs[1].Title)
	}
}

func TestParse_FlattensFolders(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>Podcasts</title></head>
  <body>
    <outline text="Tech">
      <outline text="Go Time" type="rss" xmlUrl="https://changelog.com/gotime/feed"/>
      <outline text="Nested Deeper">
        <outline text="Inner Show" type="rss" xmlUrl="https://example.com/inner.xml"/>
      </outline>
    </outline>
    <outline text="Top Level" type="rss" xmlUrl="https://example.com/top.xml"/>
  </body>
</opml>`

	subs, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("len(subs) = %d, want 3 (folders flattened)", len(subs))
	}

	urls := []string{subs[0].FeedURL, subs[1].FeedURL, subs[2].FeedURL}
	want := []string{
		"https://changelog.com/gotime/feed",
		"https://example.com/inner.xml",
		"https://example.com/top.xml",
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse(strings.NewReader("not xml at all")); err == nil {
		t.Error("expected error for malformed document")
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	subs := []Subscription{
		{Title: "Go Time", FeedURL: "https://changelog.com/gotime/feed"},
		{Title: "Another Show", FeedURL: "https://example.com/feed.xml"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, "My Podcasts", subs); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `version="2.0"`) {
		t.Errorf("output missing OPML version: %s", out)
	}
	if !strings.Contains(out, "<title>My Podcasts</title>") {
		t.Errorf("output missing document title: %s", out)
	}

	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse of written document failed: %v", err)
	}
	if len(parsed) != len(subs) {
		t.Fatalf("len(parsed) = %d, want %d", len(parsed), len(subs))
	}
	for i := range subs {
		if parsed[i] != subs[i] {
			t.Errorf("parsed[%d] = %+v, want %+v", i, parsed[i], subs[i])
		}
	}
}
