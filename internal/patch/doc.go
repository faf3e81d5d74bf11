// Package patch implements the anchor-based line patch engine.
//
// # Overview
//
// A rule table is an ordered list of Rules. Each rule has a Trigger (exact or
// substring match against a line's content), an Action and a payload of
// literal lines. Apply walks the source document once:
//
//   - the scanner evaluates the rules in order against each source line and
//     picks the first eligible match;
//   - the applicator emits the edit into an append-only output buffer and
//     moves the cursor past the lines the rule consumes.
//
// Lines the pass emits are never scanned again.
//
// # Actions
//
//	insert-after      anchor, payload
//	replace-line      payload
//	skip-then-insert  anchor, K preserved lines, payload
//
// insert-after fires at most once per document. replace-line and
// skip-then-insert fire at every anchor unless the rule sets Once.
//
// A skip-then-insert rule may name a Boundary trigger. The last preserved
// line must match it, otherwise the payload is withheld, the anchor is kept
// as it was and the outcome records a boundary mismatch. This catches a skip
// count that no longer fits the shape of the surrounding block.
//
// # Idempotency
//
// Before emitting a payload the applicator checks whether the source lines
// at the insertion point already equal it. If so the edit is counted as
// already applied and nothing is emitted, so running a rule table over its
// own output leaves the document unchanged.
//
// # Reporting
//
// A missing anchor is not an error. Every pass returns a Report with one
// Outcome per rule; Report.Missing lists rules that neither fired nor were
// found applied, and Report.Complete is the check callers use to decide
// whether a run did everything it was configured to do.
//
// # Line endings
//
// Untouched lines are copied byte for byte. Payload lines get the document's
// EOL, and an unterminated final line stays unterminated.
package patch
