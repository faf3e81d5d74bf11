package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/anchorpatch/internal/ui"
)

const rulesTOML = `
[[rule]]
name    = "import-c"
trigger = "import B"
action  = "insert-after"
payload = ["import C"]

[[rule]]
name    = "mode"
trigger = "x = 1"
match   = "exact"
action  = "replace-line"
payload = ["x = 2"]
`

type fixture struct {
	dir    string
	doc    string
	rules  string
	prefs  string
	stdout *bytes.Buffer
}

func newFixture(t *testing.T, content, rules string) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:    dir,
		doc:    filepath.Join(dir, "App.tsx"),
		rules:  filepath.Join(dir, "rules.toml"),
		prefs:  filepath.Join(dir, "prefs.toml"),
		stdout: &bytes.Buffer{},
	}
	require.NoError(t, os.WriteFile(f.doc, []byte(content), 0o644))
	require.NoError(t, os.WriteFile(f.rules, []byte(rules), 0o644))
	return f
}

func (f fixture) options() Options {
	return Options{
		DocumentPath: f.doc,
		ConfigPath:   f.rules,
		PrefsPath:    f.prefs,
		Stdout:       f.stdout,
		IsTerminal:   func() bool { return true },
		Reviewer: func(context.Context, ui.ReviewOptions) (ui.Decision, error) {
			panic("reviewer called without review")
		},
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_PatchesInPlace(t *testing.T) {
	f := newFixture(t, "import A\nimport B\nx = 1\n", rulesTOML)

	report, err := Run(context.Background(), f.options())
	require.NoError(t, err)

	assert.Equal(t, "import A\nimport B\nimport C\nx = 2\n", readFile(t, f.doc))
	assert.True(t, report.Complete())
	assert.Equal(t, 2, report.Fired())
	assert.Contains(t, f.stdout.String(), "App.tsx patched")
}

func TestRun_SecondRunIsNoOp(t *testing.T) {
	f := newFixture(t, "import A\nimport B\nx = 1\n", rulesTOML)

	_, err := Run(context.Background(), f.options())
	require.NoError(t, err)
	first := readFile(t, f.doc)

	f.stdout.Reset()
	report, err := Run(context.Background(), f.options())
	require.NoError(t, err)

	assert.Equal(t, first, readFile(t, f.doc))
	assert.False(t, report.Changed())
	assert.True(t, report.Complete())
	assert.Contains(t, f.stdout.String(), "App.tsx unchanged")
}

func TestRun_DryRunLeavesFile(t *testing.T) {
	f := newFixture(t, "import B\nx = 1\n", rulesTOML)
	opts := f.options()
	opts.DryRun = true
	opts.ShowDiff = true

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "import B\nx = 1\n", readFile(t, f.doc))
	assert.True(t, report.Changed())
	out := f.stdout.String()
	assert.Contains(t, out, "+import C\n")
	assert.Contains(t, out, "-x = 1\n")
	assert.Contains(t, out, "App.tsx not written")
}

func TestRun_OutputPath(t *testing.T) {
	f := newFixture(t, "import B\r\nx = 1", rulesTOML)
	opts := f.options()
	opts.OutputPath = filepath.Join(f.dir, "out", "App.tsx")
	require.NoError(t, os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755))

	_, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "import B\r\nx = 1", readFile(t, f.doc))
	assert.Equal(t, "import B\r\nimport C\r\nx = 2", readFile(t, opts.OutputPath))
}

func TestRun_StrictReportsMissingRules(t *testing.T) {
	f := newFixture(t, "import B\n", rulesTOML)
	opts := f.options()

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"mode"}, report.Missing())

	opts.Strict = true
	_, err = Run(context.Background(), opts)
	require.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "mode")
	assert.Contains(t, f.stdout.String(), "anchor not found")
}

func TestRun_Review(t *testing.T) {
	tests := []struct {
		name     string
		decision ui.Decision
		wantErr  error
		wantDoc  string
	}{
		{"apply writes", ui.DecisionApply, nil, "import B\nimport C\n"},
		{"discard keeps file", ui.DecisionDiscard, ErrReviewDeclined, "import B\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "import B\n", rulesTOML)
			opts := f.options()
			opts.Review = true

			var seen ui.ReviewOptions
			opts.Reviewer = func(_ context.Context, ro ui.ReviewOptions) (ui.Decision, error) {
				seen = ro
				return tt.decision, nil
			}

			_, err := Run(context.Background(), opts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantDoc, readFile(t, f.doc))
			assert.Contains(t, seen.Diff, "+import C")
			assert.Equal(t, f.prefs, seen.PrefsPath)
		})
	}
}

func TestRun_ReviewNeedsTerminal(t *testing.T) {
	f := newFixture(t, "import B\n", rulesTOML)
	opts := f.options()
	opts.Review = true
	opts.IsTerminal = func() bool { return false }

	_, err := Run(context.Background(), opts)
	require.ErrorIs(t, err, ErrNotTerminal)
	assert.Equal(t, "import B\n", readFile(t, f.doc))
}

func TestRun_ReviewSkippedWhenNothingChanges(t *testing.T) {
	f := newFixture(t, "nothing here\n", rulesTOML)
	opts := f.options()
	opts.Review = true

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, report.Changed())
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing document", func(t *testing.T) {
		f := newFixture(t, "", rulesTOML)
		opts := f.options()
		opts.DocumentPath = filepath.Join(f.dir, "missing.tsx")

		_, err := Run(context.Background(), opts)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid rules", func(t *testing.T) {
		f := newFixture(t, "import B\n", "[[rule]]\nname = \"x\"\naction = \"insert-after\"\n")

		_, err := Run(context.Background(), f.options())
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "load rules:"), err.Error())
		assert.Equal(t, "import B\n", readFile(t, f.doc))
	})
}

func TestTail(t *testing.T) {
	dir := t.TempDir()
	log := filepath.Join(dir, "session.jsonl")
	lines := []string{
		`{"type":"assistant","message":{"content":[{"type":"text","text":"one"}]}}`,
		`not json`,
		`{"type":"user","message":{"content":[{"type":"text","text":"skip"}]}}`,
		`{"type":"assistant","message":{"content":[{"type":"tool_use","name":"x"},{"type":"text","text":"two"}]}}`,
		`{"type":"assistant","message":{"content":[{"type":"text","text":"three"}]}}`,
	}
	require.NoError(t, os.WriteFile(log, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	var out bytes.Buffer
	texts := Tail(TailOptions{LogPath: log, Count: 2, PrefsPath: filepath.Join(dir, "prefs.toml"), Stdout: &out})

	assert.Equal(t, []string{"two", "three"}, texts)
	assert.Equal(t, "two\n\nthree\n", out.String())
}

func TestTail_DefaultCountFromPrefs(t *testing.T) {
	dir := t.TempDir()
	prefsPath := filepath.Join(dir, "prefs.toml")
	require.NoError(t, os.WriteFile(prefsPath, []byte("tail_count = 1\n"), 0o644))

	log := filepath.Join(dir, "session.jsonl")
	require.NoError(t, os.WriteFile(log, []byte(
		`{"type":"assistant","message":{"content":[{"type":"text","text":"a"}]}}`+"\n"+
			`{"type":"assistant","message":{"content":[{"type":"text","text":"b"}]}}`+"\n"), 0o644))

	texts := Tail(TailOptions{LogPath: log, PrefsPath: prefsPath, Stdout: &bytes.Buffer{}})
	assert.Equal(t, []string{"b"}, texts)
}

func TestTail_Render(t *testing.T) {
	dir := t.TempDir()
	log := filepath.Join(dir, "session.jsonl")
	require.NoError(t, os.WriteFile(log, []byte(
		`{"type":"assistant","message":{"content":[{"type":"text","text":"ok"}]}}`+"\n"+
			`{"type":"assistant","message":{"content":[{"type":"text","text":"bad"}]}}`+"\n"), 0o644))

	render := func(md string) (string, error) {
		if md == "bad" {
			return "", errors.New("boom")
		}
		return "<" + md + ">", nil
	}

	var out bytes.Buffer
	texts := Tail(TailOptions{LogPath: log, Count: 5, Stdout: &out, Render: render})

	assert.Equal(t, []string{"ok", "bad"}, texts)
	assert.Equal(t, "<ok>\n\nbad\n", out.String())
}

func TestTail_UnreadableLogYieldsNothing(t *testing.T) {
	var out bytes.Buffer
	texts := Tail(TailOptions{LogPath: filepath.Join(t.TempDir(), "missing.jsonl"), Count: 3, Stdout: &out})

	assert.Empty(t, texts)
	assert.Empty(t, out.String())
}
