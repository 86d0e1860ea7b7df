package extract

import (
	"bytes"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

const (
	SectionIntro = "intro"

	NodeParagraph = "paragraph"
	NodeList      = "list"
)

// Node is a single content unit inside a section: either one paragraph of
// text or one bulleted/numbered list.
type Node struct {
	Type  string
	Text  string
	Items []string
}

// Section groups consecutive content under one heading. Content before the
// first heading is collected into a single "intro" section; the rest are
// tagged by heading level, e.g. "section_h2".
type Section struct {
	Type    string
	Heading string
	Content []Node
}

// Article is the structured extraction of one blog post.
type Article struct {
	Title       string
	Description string
	Category    string
	Sections    []Section
	URL         string
}

// ErrNoContent indicates the page has no recognizable article body. Callers
// must not persist anything for such a page.
var ErrNoContent = errors.New("no content region found")

const (
	titleSelector   = "h1.article-title"
	excerptSelector = "p.article-excerpt"
	contentSelector = "section.gh-content"
	blockSelector   = "p, h1, h2, h3, h4, h5, h6, ul, ol"
)

// ExtractArticle parses a full post page into typed sections. Block elements
// are walked in document order: headings open a new section, paragraphs and
// lists accumulate into the current one. A heading with no content after it
// is dropped rather than emitted empty.
func ExtractArticle(body []byte, pageURL, category string) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		return nil, ErrNoContent
	}

	art := &Article{
		Title:       cleanText(doc.Find(titleSelector).First().Text()),
		Description: cleanText(doc.Find(excerptSelector).First().Text()),
		Category:    category,
		URL:         pageURL,
	}

	current := Section{Type: SectionIntro}
	content.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		text := cleanText(s.Text())
		if text == "" {
			return
		}
		tag := goquery.NodeName(s)
		switch {
		case strings.HasPrefix(tag, "h"):
			if len(current.Content) > 0 {
				art.Sections = append(art.Sections, current)
			}
			current = Section{Type: "section_" + tag, Heading: text}
		case tag == "ul" || tag == "ol":
			var items []string
			s.Find("li").Each(func(_ int, li *goquery.Selection) {
				items = append(items, cleanText(li.Text()))
			})
			current.Content = append(current.Content, Node{Type: NodeList, Items: items})
		default:
			current.Content = append(current.Content, Node{Type: NodeParagraph, Text: text})
		}
	})
	if len(current.Content) > 0 {
		art.Sections = append(art.Sections, current)
	}

	return art, nil
}

// cleanText trims and NFC-normalizes extracted text so filename derivation
// stays stable across sources that mix composed and decomposed accents.
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
