package patch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRule is returned by Validate for a malformed rule table.
var ErrInvalidRule = errors.New("invalid rule")

// Action is the structural edit a rule performs at its anchor.
type Action string

const (
	ActionInsertAfter    Action = "insert-after"
	ActionReplaceLine    Action = "replace-line"
	ActionSkipThenInsert Action = "skip-then-insert"
)

// MatchMode selects how a trigger compares against a line.
type MatchMode string

const (
	MatchContains MatchMode = "contains"
	MatchExact    MatchMode = "exact"
)

// Trigger identifies an anchor line by its content.
type Trigger struct {
	Text string
	Mode MatchMode // empty means MatchContains
}

// Matches reports whether line (without its terminator) satisfies the trigger.
func (t Trigger) Matches(line string) bool {
	if t.Text == "" {
		return false
	}
	if t.Mode == MatchExact {
		return line == t.Text
	}
	return strings.Contains(line, t.Text)
}

// Rule is one entry of the ordered rule table.
type Rule struct {
	Name    string
	Trigger Trigger
	Action  Action
	// Payload lines are stored without terminators; the document's EOL is
	// appended when they are emitted.
	Payload []string
	// Skip is the number of source lines preserved after the anchor before
	// the payload is spliced in. Only used by ActionSkipThenInsert.
	Skip int
	// Boundary, when set, must match the last preserved line or the payload
	// is withheld.
	Boundary *Trigger
	// Anchor, when non-nil, replaces the anchor line of a skip-then-insert rule.
	Anchor []string
	// Once limits the rule to a single firing per document. Always true for
	// ActionInsertAfter.
	Once bool
}

func (r Rule) firesOnce() bool {
	return r.Once || r.Action == ActionInsertAfter
}

// Validate checks a rule table before it is applied.
func Validate(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, r := range rules {
		if err := validateRule(r); err != nil {
			return fmt.Errorf("%w: rule %d (%q): %v", ErrInvalidRule, i+1, r.Name, err)
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("%w: rule %d: duplicate name %q", ErrInvalidRule, i+1, r.Name)
		}
		seen[r.Name] = struct{}{}
	}
	return nil
}

func validateRule(r Rule) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is empty")
	}
	if err := validateTrigger(r.Trigger); err != nil {
		return err
	}
	switch r.Action {
	case ActionInsertAfter, ActionSkipThenInsert:
		if len(r.Payload) == 0 {
			return fmt.Errorf("%s needs a payload", r.Action)
		}
	case ActionReplaceLine:
	default:
		return fmt.Errorf("unknown action %q", r.Action)
	}
	if r.Skip < 0 {
		return fmt.Errorf("skip must be >= 0, got %d", r.Skip)
	}
	if r.Action != ActionSkipThenInsert {
		if r.Skip != 0 {
			return fmt.Errorf("skip is only valid for %s", ActionSkipThenInsert)
		}
		if r.Boundary != nil || r.Anchor != nil {
			return fmt.Errorf("boundary and anchor are only valid for %s", ActionSkipThenInsert)
		}
	}
	if r.Boundary != nil {
		if err := validateTrigger(*r.Boundary); err != nil {
			return fmt.Errorf("boundary: %v", err)
		}
		if r.Skip == 0 {
			return errors.New("boundary needs skip > 0")
		}
	}
	for _, line := range append(append([]string{}, r.Payload...), r.Anchor...) {
		if strings.ContainsAny(line, "\r\n") {
			return fmt.Errorf("payload line %q contains a line break", line)
		}
	}
	return nil
}

func validateTrigger(t Trigger) error {
	if t.Text == "" {
		return errors.New("trigger is empty")
	}
	switch t.Mode {
	case "", MatchContains, MatchExact:
		return nil
	default:
		return fmt.Errorf("unknown match mode %q", t.Mode)
	}
}
