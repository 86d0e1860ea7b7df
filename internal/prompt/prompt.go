// Package prompt flattens structured article sections into the single text
// blob fed to the rewrite model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/voltade/blogpipe/internal/extract"
)

// Flatten renders an article as a linear, bulleted text document. The intro
// section emits only its paragraphs; lists parsed inside an intro are
// intentionally not rendered.
func Flatten(a *extract.Article) string {
	if a == nil {
		return ""
	}

	lines := []string{
		fmt.Sprintf("Title: %s\nDescription: %s\nCategory: %s\n\n", a.Title, a.Description, a.Category),
	}

	for _, section := range a.Sections {
		if section.Type == extract.SectionIntro {
			lines = append(lines, "Introduction:")
			for _, node := range section.Content {
				if node.Type == extract.NodeParagraph {
					lines = append(lines, "- "+node.Text)
				}
			}
			continue
		}

		lines = append(lines, "\n"+section.Heading)
		for _, node := range section.Content {
			switch node.Type {
			case extract.NodeParagraph:
				lines = append(lines, "- "+node.Text)
			case extract.NodeList:
				lines = append(lines, "List items:")
				for _, item := range node.Items {
					lines = append(lines, "  • "+item)
				}
			}
		}
	}

	return strings.Join(lines, "\n")
}

// WordCount counts whitespace-separated tokens; it is the metric recorded in
// the manifest for both raw and generated documents.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
