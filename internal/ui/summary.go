package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/five82/anchorpatch/internal/patch"
)

// Outcome labels shown as badges.
const (
	outcomeApplied   = "applied"
	outcomePresent   = "present"
	outcomeTruncated = "truncated"
	outcomeMismatch  = "mismatch"
	outcomeMissing   = "missing"
)

// SummaryOptions describes a finished run.
type SummaryOptions struct {
	Path   string
	Report patch.Report
	// Dest is where the document was written; empty when nothing was written.
	Dest  string
	Theme Theme
}

// OutcomeLabel classifies a rule outcome for display.
func OutcomeLabel(o patch.Outcome) string {
	switch {
	case o.Fired > 0 && o.Truncated:
		return outcomeTruncated
	case o.Fired > 0:
		return outcomeApplied
	case o.BoundaryMismatches > 0:
		return outcomeMismatch
	case o.AlreadyApplied > 0:
		return outcomePresent
	default:
		return outcomeMissing
	}
}

// RenderSummary renders the confirmation printed after a run: a headline
// naming the document and one line per rule.
func RenderSummary(opts SummaryOptions) string {
	styles := opts.Theme.Styles()
	r := opts.Report
	name := filepath.Base(opts.Path)

	var b strings.Builder
	b.WriteString(headline(opts, name, styles))
	b.WriteString("\n")

	width := 0
	for _, o := range r.Outcomes {
		width = max(width, len(o.Rule))
	}
	for _, o := range r.Outcomes {
		label := OutcomeLabel(o)
		badge := styles.OutcomeStyle(label).Render(fmt.Sprintf("%-9s", label))
		fmt.Fprintf(&b, "  %s %s %s\n",
			badge,
			styles.Text.Render(fmt.Sprintf("%-*s", width, o.Rule)),
			styles.MutedText.Render(outcomeDetail(o)))
	}
	return b.String()
}

func headline(opts SummaryOptions, name string, styles Styles) string {
	r := opts.Report
	satisfied := len(r.Outcomes) - len(r.Missing())
	counts := fmt.Sprintf("%d/%d rules, %d → %d lines", satisfied, len(r.Outcomes), r.LinesIn, r.LinesOut)

	switch {
	case !r.Changed():
		return styles.MutedText.Render(fmt.Sprintf("• %s unchanged (%s)", name, counts))
	case opts.Dest == "":
		return styles.WarningText.Render(fmt.Sprintf("• %s not written (%s)", name, counts))
	case !r.Complete():
		return styles.WarningText.Render(fmt.Sprintf("! %s patched with gaps → %s (%s)", name, opts.Dest, counts))
	default:
		return styles.SuccessText.Render(fmt.Sprintf("✓ %s patched → %s (%s)", name, opts.Dest, counts))
	}
}

func outcomeDetail(o patch.Outcome) string {
	var parts []string
	if o.Fired > 0 {
		parts = append(parts, fmt.Sprintf("%s ×%d", o.Action, o.Fired))
	}
	if o.AlreadyApplied > 0 {
		parts = append(parts, fmt.Sprintf("already applied ×%d", o.AlreadyApplied))
	}
	if o.Truncated {
		parts = append(parts, "document ended inside skip")
	}
	if o.BoundaryMismatches > 0 {
		parts = append(parts, fmt.Sprintf("boundary mismatch ×%d", o.BoundaryMismatches))
	}
	if len(parts) == 0 {
		return "anchor not found"
	}
	return strings.Join(parts, ", ")
}
