// Package config loads the ordered rule table that drives the patch engine.
//
// # Resolution
//
// Load follows this order:
//
//  1. If a path is explicitly provided, use it; it must exist
//  2. Otherwise, use ~/.config/anchorpatch/rules.toml
//  3. If that default file doesn't exist, use BuiltinRules
//
// The table is validated with patch.Validate before it is returned, so a
// loaded Config is always safe to hand to patch.Apply.
//
// # Formats
//
// The file extension picks the decoder: .toml for TOML, .yaml or .yml for
// YAML. Unknown keys are rejected in both formats so a misspelt field fails
// loudly instead of silently producing a rule that never fires.
//
// TOML:
//
//	[[rule]]
//	name     = "import"
//	trigger  = "import ConsultationManager"
//	match    = "contains"   # or "exact"; default contains
//	action   = "insert-after"
//	payload  = ["import StudentManagementTab from './StudentManagementTab';"]
//
//	[[rule]]
//	name           = "view"
//	trigger        = ") : appMode === 'attendance' ?"
//	action         = "skip-then-insert"
//	skip           = 4
//	boundary       = "</div>"
//	boundary_match = "contains"
//	payload        = ["        ) : appMode === 'students' ? ("]
//
// YAML uses the same keys as a list under "rules:".
//
// Optional keys: match, skip, boundary, boundary_match, anchor (lines that
// replace the anchor of a skip-then-insert rule) and once.
//
// # Path Expansion
//
// Tilde paths are expanded to the home directory and relative paths are made
// absolute.
package config
