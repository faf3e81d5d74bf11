package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders one markdown document for the terminal.
type MarkdownRenderer func(markdown string) (string, error)

// NewMarkdownRenderer returns a glamour renderer that picks a light or dark
// style from the terminal background. wrap <= 0 disables word wrapping.
func NewMarkdownRenderer(wrap int) (MarkdownRenderer, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(wrap, 0)),
	)
	if err != nil {
		return nil, err
	}
	return func(markdown string) (string, error) {
		out, err := r.Render(markdown)
		if err != nil {
			return "", err
		}
		return strings.Trim(out, "\n"), nil
	}, nil
}
