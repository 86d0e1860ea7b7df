package extract

import (
	"net/url"
	"testing"
	"time"
)

const listingPage = `<!doctype html>
<html><body>
  <article>
    <a class="post-card-image-link" href="/newest-post/"></a>
    <footer class="post-card-meta post-card-footer"><time datetime="2026-08-25T10:00:00.000+00:00">25 Aug</time></footer>
  </article>
  <article>
    <a class="post-card-image-link" href="/older-post/"></a>
    <footer class="post-card-meta post-card-footer"><time datetime="2026-07-01T00:00:00.000+00:00">1 Jul</time></footer>
  </article>
  <article>
    <!-- card without a link is skipped -->
    <footer class="post-card-meta post-card-footer"><time datetime="2026-06-01T00:00:00.000+00:00">1 Jun</time></footer>
  </article>
</body></html>`

func TestParseListing_OrderAndAbsoluteLinks(t *testing.T) {
	base, _ := url.Parse("https://blog.example.com")
	got, err := ParseListing([]byte(listingPage), base)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d: %+v", len(got), got)
	}
	if got[0].Link != "https://blog.example.com/newest-post/" {
		t.Fatalf("link not resolved to absolute: %q", got[0].Link)
	}
	if got[1].Link != "https://blog.example.com/older-post/" {
		t.Fatalf("second link = %q", got[1].Link)
	}
	if !got[0].Published.After(got[1].Published) {
		t.Fatalf("expected page order to be newest first: %v then %v", got[0].Published, got[1].Published)
	}
	want := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	if !got[0].Published.Equal(want) {
		t.Fatalf("published = %v, want %v", got[0].Published, want)
	}
}

func TestParseListing_NoCards(t *testing.T) {
	base, _ := url.Parse("https://blog.example.com")
	got, err := ParseListing([]byte(`<html><body><p>empty tag page</p></body></html>`), base)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no summaries, got %+v", got)
	}
}

func TestParseCardTime_Variants(t *testing.T) {
	for _, stamp := range []string{
		"2026-08-25T10:00:00Z",
		"2026-08-25T10:00:00.000+00:00",
		"2026-08-25",
	} {
		if _, err := parseCardTime(stamp); err != nil {
			t.Fatalf("parseCardTime(%q): %v", stamp, err)
		}
	}
	if _, err := parseCardTime("yesterday"); err == nil {
		t.Fatalf("expected error for unparseable stamp")
	}
}
