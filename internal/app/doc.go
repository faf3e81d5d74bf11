// Package app wires configuration, the patch engine, file I/O and the
// presentation layer together.
//
// # Run
//
//	config.Load ──> document.Read ──> patch.Apply ──> diff / review ──> document.Write ──> summary
//
// Run loads the rule table (explicit path, default path or built-in rules),
// applies it to one document and prints a summary of every rule outcome. The
// document is written to OutputPath, or back to its own path, unless DryRun
// is set or the pass changed nothing.
//
// With Review set the diff is shown in the full-screen review program first.
// Review needs a terminal on stdin and stdout; without one Run returns
// ErrNotTerminal before touching the file. Discarding the change returns
// ErrReviewDeclined.
//
// # Errors
//
// Fatal (returned):
//   - rule table missing, unreadable or invalid
//   - document unreadable or unwritable
//   - review requested without a terminal
//
// Reported only (summary and warn logs):
//   - anchors not found
//   - boundary mismatches
//
// With Strict set, reported problems are returned as ErrIncomplete naming
// the affected rules.
//
// # Tail
//
// Tail prints the last assistant text blocks of a JSONL session log. A log
// that cannot be read is logged and yields an empty result; it never fails
// the caller.
package app
