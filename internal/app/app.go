package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/five82/anchorpatch/internal/config"
	"github.com/five82/anchorpatch/internal/document"
	"github.com/five82/anchorpatch/internal/logging"
	"github.com/five82/anchorpatch/internal/patch"
	"github.com/five82/anchorpatch/internal/prefs"
	"github.com/five82/anchorpatch/internal/ui"
)

var (
	// ErrIncomplete is returned in strict mode when a rule neither fired nor
	// was found already applied.
	ErrIncomplete = errors.New("rule table not fully applied")
	// ErrNotTerminal is returned when review is requested without a terminal.
	ErrNotTerminal = errors.New("review needs an interactive terminal")
	// ErrReviewDeclined is returned when the user discards the reviewed change.
	ErrReviewDeclined = errors.New("change discarded in review")
)

// Reviewer shows a pending change and returns the user's decision.
type Reviewer func(ctx context.Context, opts ui.ReviewOptions) (ui.Decision, error)

// Options configure a patch run.
type Options struct {
	DocumentPath string
	ConfigPath   string // empty uses ~/.config/anchorpatch/rules.toml or the built-in rules
	OutputPath   string // empty overwrites DocumentPath
	PrefsPath    string // empty uses ~/.config/anchorpatch/prefs.toml

	DryRun   bool
	ShowDiff bool
	Review   bool
	Strict   bool

	Stdout io.Writer
	Logger *slog.Logger

	// IsTerminal and Reviewer default to a TTY check and the Bubble Tea
	// review screen.
	IsTerminal func() bool
	Reviewer   Reviewer
}

func (o *Options) setDefaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	if o.IsTerminal == nil {
		o.IsTerminal = func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		}
	}
	if o.Reviewer == nil {
		o.Reviewer = func(ctx context.Context, opts ui.ReviewOptions) (ui.Decision, error) {
			return ui.RunReview(ctx, opts)
		}
	}
}

// Run patches one document with the configured rule table and prints a
// summary. A missing anchor is reported, not returned, unless Strict is set.
func Run(ctx context.Context, opts Options) (patch.Report, error) {
	opts.setDefaults()
	log := opts.Logger

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return patch.Report{}, fmt.Errorf("load rules: %w", err)
	}
	if cfg.Builtin {
		log.Debug("using built-in rules", "rules", len(cfg.Rules))
	} else {
		log.Debug("loaded rules", "path", cfg.Path, "rules", len(cfg.Rules))
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	src, err := document.Read(opts.DocumentPath)
	if err != nil {
		return patch.Report{}, err
	}

	res, err := patch.Apply(src, cfg.Rules)
	if err != nil {
		return patch.Report{}, fmt.Errorf("apply rules to %s: %w", opts.DocumentPath, err)
	}
	logOutcomes(log, opts.DocumentPath, res.Report)

	name := filepath.Base(opts.DocumentPath)
	var diff string
	if opts.ShowDiff || opts.Review {
		if diff, err = ui.UnifiedDiff(name, src, res.Document); err != nil {
			return res.Report, err
		}
	}
	if opts.ShowDiff {
		fmt.Fprint(opts.Stdout, diff)
	}

	dest := opts.OutputPath
	if dest == "" {
		dest = opts.DocumentPath
	}

	write := !opts.DryRun && (res.Report.Changed() || dest != opts.DocumentPath)
	declined := false
	if write && opts.Review {
		if !opts.IsTerminal() {
			return res.Report, ErrNotTerminal
		}
		decision, err := opts.Reviewer(ctx, ui.ReviewOptions{
			Path:      opts.DocumentPath,
			Diff:      diff,
			Report:    res.Report,
			Prefs:     userPrefs,
			PrefsPath: opts.PrefsPath,
		})
		if err != nil {
			return res.Report, err
		}
		log.Debug("review finished", "decision", decision)
		write = decision == ui.DecisionApply
		declined = !write
	}

	written := ""
	if write {
		if err := document.Write(dest, res.Document); err != nil {
			return res.Report, err
		}
		written = dest
		log.Info("document written", "path", dest, "lines", res.Report.LinesOut)
	}

	fmt.Fprint(opts.Stdout, ui.RenderSummary(ui.SummaryOptions{
		Path:   opts.DocumentPath,
		Report: res.Report,
		Dest:   written,
		Theme:  ui.GetTheme(userPrefs.Theme),
	}))

	if declined {
		return res.Report, ErrReviewDeclined
	}
	if opts.Strict && !res.Report.Complete() {
		return res.Report, fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(deficient(res.Report), ", "))
	}
	return res.Report, nil
}

func logOutcomes(log *slog.Logger, path string, r patch.Report) {
	for _, o := range r.Outcomes {
		switch {
		case o.BoundaryMismatches > 0:
			log.Warn("boundary mismatch, payload withheld", "path", path, "rule", o.Rule, "count", o.BoundaryMismatches)
		case !o.Satisfied():
			log.Warn("anchor not found", "path", path, "rule", o.Rule)
		default:
			log.Debug("rule outcome", "rule", o.Rule, "fired", o.Fired, "already_applied", o.AlreadyApplied, "truncated", o.Truncated)
		}
	}
}

func deficient(r patch.Report) []string {
	var names []string
	for _, o := range r.Outcomes {
		if !o.Satisfied() || o.BoundaryMismatches > 0 {
			names = append(names, o.Rule)
		}
	}
	return names
}
