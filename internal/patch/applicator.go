package patch

import (
	"github.com/five82/anchorpatch/internal/document"
)

const noPending = -1

// cursor tracks the position in the source document. While skip > 0 the
// lines under the cursor belong to the pending rule's preserved block. The
// anchor and the preserved lines are held until splice decides whether the
// rule's edit goes in.
type cursor struct {
	pos      int
	skip     int
	pending  int
	lastKept string
	anchor   string
	held     []string
}

// buffer is the append-only output of a pass.
type buffer struct {
	eol   string
	lines []string
}

func (b *buffer) copy(raw string) {
	b.terminateLast()
	b.lines = append(b.lines, raw)
}

func (b *buffer) emit(payload []string) {
	for _, l := range payload {
		b.terminateLast()
		b.lines = append(b.lines, l+b.eol)
	}
}

// terminateLast gives an unterminated last line a terminator before
// anything is appended after it.
func (b *buffer) terminateLast() {
	if n := len(b.lines); n > 0 && !document.Terminated(b.lines[n-1]) {
		b.lines[n-1] += b.eol
	}
}

func (b *buffer) document(finalNewline bool) document.Document {
	if n := len(b.lines); n > 0 && !finalNewline {
		b.lines[n-1] = document.Content(b.lines[n-1])
	}
	return document.Document{Lines: b.lines, EOL: b.eol}
}

// apply performs rule i at the anchor under the cursor.
func (p *pass) apply(i int) {
	r := p.rules[i]
	o := &p.report.Outcomes[i]
	raw := p.src.Lines[p.cur.pos]
	p.cur.pos++
	p.scan.markFired(i)

	switch r.Action {
	case ActionInsertAfter:
		p.out.copy(raw)
		if p.followedBy(p.cur.pos, r.Payload) {
			o.AlreadyApplied++
			return
		}
		p.out.emit(r.Payload)
		o.Fired++

	case ActionReplaceLine:
		if len(r.Payload) == 1 && document.Content(raw) == r.Payload[0] {
			p.out.copy(raw)
			o.AlreadyApplied++
			return
		}
		p.out.emit(r.Payload)
		o.Fired++

	case ActionSkipThenInsert:
		p.cur.pending = i
		p.cur.skip = r.Skip
		p.cur.anchor = raw
		p.cur.held = p.cur.held[:0]
		p.cur.lastKept = document.Content(raw)
		if p.cur.skip == 0 {
			p.splice()
		}
	}
}

// consume holds the next preserved line of a pending skip.
func (p *pass) consume() {
	raw := p.src.Lines[p.cur.pos]
	p.cur.held = append(p.cur.held, raw)
	p.cur.lastKept = document.Content(raw)
	p.cur.pos++
	p.cur.skip--
	if p.cur.skip == 0 {
		p.splice()
	}
}

// splice settles the pending rule once its preserved block is done. The
// anchor replacement and the payload go in together or not at all.
func (p *pass) splice() {
	i := p.cur.pending
	p.cur.pending = noPending
	r := p.rules[i]
	o := &p.report.Outcomes[i]

	switch {
	case r.Boundary != nil && (o.Truncated || !r.Boundary.Matches(p.cur.lastKept)):
		o.BoundaryMismatches++
		p.release(r, false)
	case p.followedBy(p.cur.pos, r.Payload):
		o.AlreadyApplied++
		p.release(r, false)
	default:
		p.release(r, true)
		p.out.emit(r.Payload)
		o.Fired++
	}
}

// release writes the held anchor, replaced when edit is set and r has an
// anchor replacement, followed by the preserved lines.
func (p *pass) release(r Rule, edit bool) {
	if edit && r.Anchor != nil {
		p.out.emit(r.Anchor)
	} else {
		p.out.copy(p.cur.anchor)
	}
	for _, raw := range p.cur.held {
		p.out.copy(raw)
	}
	p.cur.held = p.cur.held[:0]
}

// presentSplice returns the skip-then-insert rule whose anchor replacement
// starts at pos with its payload after the preserved block, which means an
// earlier run made the edit.
func (p *pass) presentSplice(pos int) (int, bool) {
	for i, r := range p.rules {
		if r.Action != ActionSkipThenInsert || len(r.Anchor) == 0 {
			continue
		}
		if p.followedBy(pos, r.Anchor) && p.followedBy(pos+len(r.Anchor)+r.Skip, r.Payload) {
			return i, true
		}
	}
	return -1, false
}

// followedBy reports whether the source lines starting at pos equal payload.
func (p *pass) followedBy(pos int, payload []string) bool {
	if pos+len(payload) > p.src.Len() {
		return false
	}
	for j, want := range payload {
		if p.src.Content(pos+j) != want {
			return false
		}
	}
	return true
}
