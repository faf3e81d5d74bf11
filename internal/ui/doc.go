// Package ui renders patch results for the terminal.
//
//   - diff.go: unified diff of a document before and after a pass, and its
//     colouring
//   - summary.go: the per-rule summary printed after every run
//   - review.go: a Bubble Tea program that shows the diff in a scrolling
//     viewport and asks the user to apply or discard it
//   - theme.go: colour palettes shared by all of the above
//   - keys.go: review key bindings and help text
//
// # Key Bindings
//
//   - y or Enter: apply
//   - n, q or Esc: discard
//   - j/k, PgUp/PgDn, g/G: scroll
//   - T: cycle theme (saved to preferences)
//   - ?: toggle full help
package ui
