package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/anchorpatch/internal/app"
	"github.com/five82/anchorpatch/internal/logging"
	"github.com/five82/anchorpatch/internal/ui"
)

func newTailCmd(root *rootFlags) *cobra.Command {
	var (
		count  int
		render bool
		wrap   int
	)

	cmd := &cobra.Command{
		Use:   "tail [-n N] <log.jsonl>",
		Short: "Print the last assistant text blocks of a JSONL session log",
		Long: `tail reads a JSONL session log and prints the text blocks of the last
assistant messages, oldest first. Lines that are not valid JSON are skipped.
A log that cannot be read prints nothing.`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(root.logLevel)
			if err != nil {
				return err
			}
			opts := app.TailOptions{
				LogPath:   args[0],
				Count:     count,
				PrefsPath: root.prefs,
				Stdout:    cmd.OutOrStdout(),
				Logger:    logging.New(level),
			}
			if render {
				if opts.Render, err = ui.NewMarkdownRenderer(wrap); err != nil {
					return err
				}
			}
			app.Tail(opts)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&count, "count", "n", 0, "number of texts to print (default: tail_count preference)")
	f.BoolVar(&render, "render", false, "render texts as markdown")
	f.IntVar(&wrap, "wrap", 100, "word wrap width for --render (0 disables)")
	return cmd
}
