package ui

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/five82/anchorpatch/internal/document"
)

const diffContext = 3

// UnifiedDiff returns a unified diff between two versions of the document
// named name. Identical documents produce an empty string. Line endings are
// normalised for display.
func UnifiedDiff(name string, before, after document.Document) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        diffLines(before),
		B:        diffLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  diffContext,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", name, err)
	}
	return diff, nil
}

func diffLines(doc document.Document) []string {
	lines := doc.Contents()
	for i := range lines {
		lines[i] += "\n"
	}
	return lines
}

// ColorizeDiff styles each line of a unified diff.
func ColorizeDiff(diff string, styles Styles) string {
	if diff == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, line := range lines {
		lines[i] = colorizeDiffLine(line, styles)
	}
	return strings.Join(lines, "\n")
}

func colorizeDiffLine(line string, styles Styles) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return styles.AccentText.Render(line)
	case strings.HasPrefix(line, "@@"):
		return styles.InfoText.Render(line)
	case strings.HasPrefix(line, "+"):
		return styles.SuccessText.Render(line)
	case strings.HasPrefix(line, "-"):
		return styles.DangerText.Render(line)
	default:
		return styles.Text.Render(line)
	}
}
