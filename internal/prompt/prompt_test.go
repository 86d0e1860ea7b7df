package prompt

import (
	"strings"
	"testing"

	"github.com/voltade/blogpipe/internal/extract"
)

func sampleArticle() *extract.Article {
	return &extract.Article{
		Title:       "Grant Funding 101",
		Description: "How to fund your startup.",
		Category:    "grant",
		Sections: []extract.Section{
			{
				Type: extract.SectionIntro,
				Content: []extract.Node{
					{Type: extract.NodeParagraph, Text: "Welcome."},
					{Type: extract.NodeList, Items: []string{"never rendered"}},
				},
			},
			{
				Type:    "section_h2",
				Heading: "Applying",
				Content: []extract.Node{
					{Type: extract.NodeParagraph, Text: "Start early."},
					{Type: extract.NodeList, Items: []string{"Form A", "Form B"}},
				},
			},
		},
	}
}

func TestFlatten_Layout(t *testing.T) {
	got := Flatten(sampleArticle())

	want := strings.Join([]string{
		"Title: Grant Funding 101\nDescription: How to fund your startup.\nCategory: grant\n\n",
		"Introduction:",
		"- Welcome.",
		"\nApplying",
		"- Start early.",
		"List items:",
		"  • Form A",
		"  • Form B",
	}, "\n")

	if got != want {
		t.Fatalf("flatten mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFlatten_IntroListsNotRendered(t *testing.T) {
	got := Flatten(sampleArticle())
	if strings.Contains(got, "never rendered") {
		t.Fatalf("intro lists must not be emitted:\n%s", got)
	}
}

func TestFlatten_NilArticle(t *testing.T) {
	if got := Flatten(nil); got != "" {
		t.Fatalf("expected empty string for nil article, got %q", got)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one  two\nthree\t four "); got != 4 {
		t.Fatalf("WordCount = %d, want 4", got)
	}
	if got := WordCount("   "); got != 0 {
		t.Fatalf("WordCount of blanks = %d, want 0", got)
	}
}
