package extract

import (
	"bytes"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Summary is one post card on a tag listing page. Link is resolved against
// the listing's base URL so it can serve as a de-duplication key.
type Summary struct {
	Link      string
	Published time.Time
}

const (
	cardSelector     = "article"
	cardTimeSelector = "footer.post-card-meta time"
	cardLinkSelector = "a.post-card-image-link"
)

// ParseListing returns the post summaries of a tag listing page in page
// order. Cards missing a timestamp or a link are skipped. Listings are
// reverse-chronological on the source site; deciding where to stop reading
// is the caller's concern.
func ParseListing(body []byte, base *url.URL) ([]Summary, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var out []Summary
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		stamp, ok := card.Find(cardTimeSelector).First().Attr("datetime")
		if !ok {
			return
		}
		published, perr := parseCardTime(stamp)
		if perr != nil {
			return
		}
		href, ok := card.Find(cardLinkSelector).First().Attr("href")
		if !ok || href == "" {
			return
		}
		out = append(out, Summary{Link: resolveLink(base, href), Published: published})
	})
	return out, nil
}

// cardTimeLayouts covers the datetime attribute variants the source site
// has been observed to emit.
var cardTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02",
}

func parseCardTime(stamp string) (time.Time, error) {
	var lastErr error
	for _, layout := range cardTimeLayouts {
		t, err := time.Parse(layout, stamp)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func resolveLink(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
