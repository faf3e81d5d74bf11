package patch

import (
	"github.com/five82/anchorpatch/internal/document"
)

// Result is the output of Apply.
type Result struct {
	Document document.Document
	Report   Report
}

// Apply runs rules over src in a single forward pass and returns the patched
// document. src is not modified. A rule whose anchor is never found is not
// an error; it shows up in Report.Missing.
func Apply(src document.Document, rules []Rule) (Result, error) {
	if err := Validate(rules); err != nil {
		return Result{}, err
	}

	eol := src.EOL
	if eol == "" {
		eol = document.LF
	}
	p := &pass{
		src:    src,
		rules:  rules,
		scan:   newScanner(rules),
		cur:    cursor{pending: noPending},
		out:    buffer{eol: eol, lines: make([]string, 0, src.Len())},
		report: newReport(rules),
	}
	p.run()

	doc := p.out.document(src.FinalNewline())
	p.report.LinesIn = src.Len()
	p.report.LinesOut = doc.Len()
	return Result{Document: doc, Report: p.report}, nil
}

type pass struct {
	src    document.Document
	rules  []Rule
	scan   *scanner
	cur    cursor
	out    buffer
	report Report
}

func (p *pass) run() {
	for p.cur.pos < p.src.Len() {
		if p.cur.skip > 0 {
			p.consume()
			continue
		}
		line := p.src.Content(p.cur.pos)
		if i, ok := p.scan.next(line); ok {
			p.apply(i)
			continue
		}
		if i, ok := p.scan.presentReplacement(line); ok {
			p.report.Outcomes[i].AlreadyApplied++
		} else if i, ok := p.presentSplice(p.cur.pos); ok {
			p.report.Outcomes[i].AlreadyApplied++
		}
		p.out.copy(p.src.Lines[p.cur.pos])
		p.cur.pos++
	}

	if p.cur.pending != noPending {
		p.report.Outcomes[p.cur.pending].Truncated = true
		p.cur.skip = 0
		p.splice()
	}
}
