package app

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// writePDF renders a generated blog document as a simple PDF. The layout is
// intentionally minimal: frontmatter lines are set small and grey, headings
// larger and bold, everything else as body text. Full Markdown/MDX layout
// is not attempted.
func writePDF(markdown string, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	inFrontmatter := false
	firstLine := true

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "---" {
			if firstLine {
				inFrontmatter = true
				firstLine = false
				continue
			}
			if inFrontmatter {
				inFrontmatter = false
				pdf.Ln(6)
				continue
			}
		}
		firstLine = false

		if line == "" {
			pdf.Ln(5)
			continue
		}
		if inFrontmatter {
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(120, 120, 120)
			pdf.MultiCell(0, 4, line, "", "L", false)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		if strings.HasPrefix(line, "#") {
			level := 0
			for level < len(line) && line[level] == '#' {
				level++
			}
			text := strings.TrimSpace(line[level:])
			if text == "" {
				continue
			}
			size := 14.0
			if level >= 2 {
				size = 12.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(outPath)
}
