package patch

// Outcome records what one rule did during a pass.
type Outcome struct {
	Rule   string
	Action Action
	// Fired counts the edits the rule made.
	Fired int
	// AlreadyApplied counts anchors where the rule's payload was found in
	// place, so nothing was emitted.
	AlreadyApplied int
	// Truncated is set when the document ended before a skip drained.
	Truncated bool
	// BoundaryMismatches counts splices withheld because the last preserved
	// line did not match the rule's boundary.
	BoundaryMismatches int
}

// Satisfied reports whether the rule's edit is present in the output.
func (o Outcome) Satisfied() bool {
	return o.Fired > 0 || o.AlreadyApplied > 0
}

// Report summarises a pass.
type Report struct {
	Outcomes []Outcome
	LinesIn  int
	LinesOut int
}

func newReport(rules []Rule) Report {
	out := make([]Outcome, len(rules))
	for i, r := range rules {
		out[i] = Outcome{Rule: r.Name, Action: r.Action}
	}
	return Report{Outcomes: out}
}

// Fired returns how many rules made at least one edit.
func (r Report) Fired() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Fired > 0 {
			n++
		}
	}
	return n
}

// Changed reports whether the pass altered the document.
func (r Report) Changed() bool {
	return r.Fired() > 0
}

// Missing lists rules whose anchor was never found and whose edit is not
// already present.
func (r Report) Missing() []string {
	var names []string
	for _, o := range r.Outcomes {
		if !o.Satisfied() {
			names = append(names, o.Rule)
		}
	}
	return names
}

// Complete reports whether every configured rule is satisfied and no splice
// was withheld at a boundary.
func (r Report) Complete() bool {
	for _, o := range r.Outcomes {
		if !o.Satisfied() || o.BoundaryMismatches > 0 {
			return false
		}
	}
	return true
}
