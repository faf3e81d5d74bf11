package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/five82/anchorpatch/internal/app"
	"github.com/five82/anchorpatch/internal/config"
	"github.com/five82/anchorpatch/internal/logging"
	"github.com/five82/anchorpatch/internal/prefs"
)

type rootFlags struct {
	config   string
	out      string
	prefs    string
	logLevel string
	color    string
	dryRun   bool
	diff     bool
	review   bool
	strict   bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "anchorpatch [flags] <document>",
		Short: "Apply anchor-based line patches to a source file",
		Long: `anchorpatch edits a text file by locating anchor lines and inserting or
replacing literal lines around them, driven by an ordered rule table.

Running the same rule table twice leaves the file unchanged. Anchors that are
not found are reported in the summary; use --strict to fail on them.`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyColor(flags.color)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(flags.logLevel)
			if err != nil {
				return err
			}
			_, err = app.Run(cmd.Context(), app.Options{
				DocumentPath: args[0],
				ConfigPath:   flags.config,
				OutputPath:   flags.out,
				PrefsPath:    flags.prefs,
				DryRun:       flags.dryRun,
				ShowDiff:     flags.diff,
				Review:       flags.review,
				Strict:       flags.strict,
				Stdout:       cmd.OutOrStdout(),
				Logger:       logging.New(level),
			})
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.config, "config", "", "rule table (.toml, .yaml or .yml; default "+config.DefaultPath()+", else built-in rules)")
	f.StringVarP(&flags.out, "out", "o", "", "write the result here instead of overwriting the document")
	f.BoolVar(&flags.dryRun, "dry-run", false, "do not write anything")
	f.BoolVar(&flags.diff, "diff", false, "print a unified diff of the change")
	f.BoolVar(&flags.review, "review", false, "review the diff interactively before writing")
	f.BoolVar(&flags.strict, "strict", false, "fail when a rule neither fired nor was already applied")

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.prefs, "prefs", "", "preferences file (default "+prefs.DefaultPath()+")")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&flags.color, "color", "auto", "colour output: auto, always or never")

	cmd.AddCommand(newTailCmd(&flags))
	return cmd
}

// applyColor sets the lipgloss colour profile. auto keeps the profile
// detected from stdout.
func applyColor(mode string) error {
	switch mode {
	case "", "auto":
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("unknown color mode %q", mode)
	}
	return nil
}

// exactArgs is cobra.ExactArgs with the usage text appended to the error,
// since usage printing is silenced for runtime errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
		}
		return nil
	}
}
