// ABOUTME: OPML parsing and writing for podcast subscription lists
// ABOUTME: Flat outline structure; round-trips the xmlUrl attribute podcast apps exchange

package opml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Subscription is one podcast entry in an OPML document.
type Subscription struct {
	Title   string
	FeedURL string
}

type opmlXML struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    headXML  `xml:"head"`
	Body    bodyXML  `xml:"body"`
}

type headXML struct {
	Title string `xml:"title"`
}

type bodyXML struct {
	Outlines []outlineXML `xml:"outline"`
}

type outlineXML struct {
	Text     string       `xml:"text,attr"`
	Title    string       `xml:"title,attr,omitempty"`
	Type     string       `xml:"type,attr,omitempty"`
	XMLURL   string       `xml:"xmlUrl,attr,omitempty"`
	Children []outlineXML `xml:"outline,omitempty"`
}

// Parse reads an OPML document and returns its subscriptions. Folder
// nesting is flattened; outlines without an xmlUrl are containers and
// contribute only their children.
func Parse(r io.Reader) ([]Subscription, error) {
	var doc opmlXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode OPML: %w", err)
	}

	var subs []Subscription
	var collect func(outlines []outlineXML)
	collect = func(outlines []outlineXML) {
		for _, o := range outlines {
			if o.XMLURL != "" {
				title := o.Title
				if title == "" {
					title = o.Text
				}
				subs = append(subs, Subscription{Title: title, FeedURL: o.XMLURL})
			}
			collect(o.Children)
		}
	}
	collect(doc.Body.Outlines)

	return subs, nil
}

// Write renders subscriptions as an OPML 2.0 document.
func Write(w io.Writer, title string, subs []Subscription) error {
	doc := opmlXML{
		Version: "2.0",
		Head:    headXML{Title: title},
	}

	for _, s := range subs {
		doc.Body.Outlines = append(doc.Body.Outlines, outlineXML{
			Text:   s.Title,
			Title:  s.Title,
			Type:   "rss",
			XMLURL: s.FeedURL,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write OPML header: %w", err)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode OPML: %w", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}
