package patch

// scanner picks the rule that fires on a source line. It only ever sees
// lines of the source document, never lines the pass has emitted.
type scanner struct {
	rules []Rule
	fired []bool
}

func newScanner(rules []Rule) *scanner {
	return &scanner{rules: rules, fired: make([]bool, len(rules))}
}

// next returns the index of the first eligible rule whose trigger matches
// line. Rules that fire once and already fired in this pass are not eligible.
func (s *scanner) next(line string) (int, bool) {
	for i, r := range s.rules {
		if s.fired[i] && r.firesOnce() {
			continue
		}
		if r.Trigger.Matches(line) {
			return i, true
		}
	}
	return -1, false
}

func (s *scanner) markFired(i int) {
	s.fired[i] = true
}

// presentReplacement returns the replace-line rule whose single-line payload
// equals line, which means the replacement was made by an earlier run.
func (s *scanner) presentReplacement(line string) (int, bool) {
	for i, r := range s.rules {
		if r.Action == ActionReplaceLine && len(r.Payload) == 1 && r.Payload[0] == line {
			return i, true
		}
	}
	return -1, false
}
