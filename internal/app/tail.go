package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/five82/anchorpatch/internal/logging"
	"github.com/five82/anchorpatch/internal/logtail"
	"github.com/five82/anchorpatch/internal/prefs"
	"github.com/five82/anchorpatch/internal/ui"
)

// TailOptions configure the assistant text extraction.
type TailOptions struct {
	LogPath   string
	Count     int // zero or less uses the tail_count preference
	PrefsPath string
	Stdout    io.Writer
	Logger    *slog.Logger
	// Render formats each text before printing; nil prints texts as is.
	Render ui.MarkdownRenderer
}

// Tail prints the last assistant text blocks of a JSONL session log and
// returns them. A log that cannot be read is reported and yields an empty
// result.
func Tail(opts TailOptions) []string {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	count := opts.Count
	if count <= 0 {
		p, _ := prefs.Load(opts.PrefsPath)
		count = p.TailCount
	}

	texts, err := logtail.AssistantTexts(opts.LogPath, count)
	if err != nil {
		opts.Logger.Error("cannot read session log", "path", opts.LogPath, "error", err)
		return nil
	}
	opts.Logger.Debug("extracted assistant texts", "path", opts.LogPath, "count", len(texts))

	for i, text := range texts {
		if i > 0 {
			fmt.Fprintln(opts.Stdout)
		}
		fmt.Fprintln(opts.Stdout, opts.render(text))
	}
	return texts
}

func (o TailOptions) render(text string) string {
	if o.Render == nil {
		return text
	}
	out, err := o.Render(text)
	if err != nil {
		o.Logger.Warn("markdown render failed", "error", err)
		return text
	}
	return out
}
