package document

import (
	"bytes"
	"strings"
)

const (
	LF   = "\n"
	CRLF = "\r\n"
)

// Document is a text file held as an ordered sequence of lines. Each line
// keeps its own terminator so untouched lines round-trip byte for byte.
type Document struct {
	Lines []string
	// EOL is the convention applied to newly inserted lines.
	EOL string
}

// Parse splits data into lines, keeping terminators attached.
func Parse(data []byte) Document {
	doc := Document{EOL: detectEOL(data)}
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			doc.Lines = append(doc.Lines, string(data))
			break
		}
		doc.Lines = append(doc.Lines, string(data[:i+1]))
		data = data[i+1:]
	}
	return doc
}

// FromStrings builds a document from unterminated line contents, joining
// them with eol. The final line is terminated too.
func FromStrings(eol string, lines ...string) Document {
	if eol == "" {
		eol = LF
	}
	doc := Document{EOL: eol, Lines: make([]string, len(lines))}
	for i, l := range lines {
		doc.Lines[i] = l + eol
	}
	return doc
}

// Bytes renders the document exactly as it would be written.
func (d Document) Bytes() []byte {
	var buf bytes.Buffer
	for _, l := range d.Lines {
		buf.WriteString(l)
	}
	return buf.Bytes()
}

// Len returns the number of lines.
func (d Document) Len() int {
	return len(d.Lines)
}

// Content returns line i without its terminator.
func (d Document) Content(i int) string {
	return Content(d.Lines[i])
}

// Contents returns every line without terminators.
func (d Document) Contents() []string {
	out := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = Content(l)
	}
	return out
}

// FinalNewline reports whether the last line carries a terminator. An empty
// document counts as terminated.
func (d Document) FinalNewline() bool {
	if len(d.Lines) == 0 {
		return true
	}
	return Terminated(d.Lines[len(d.Lines)-1])
}

// Content strips a trailing "\n" or "\r\n" from line. A lone trailing "\r"
// is content, not a terminator.
func Content(line string) string {
	if !strings.HasSuffix(line, LF) {
		return line
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, LF), "\r")
}

// Terminated reports whether line ends with a line feed.
func Terminated(line string) bool {
	return strings.HasSuffix(line, LF)
}

func detectEOL(data []byte) string {
	i := bytes.IndexByte(data, '\n')
	if i > 0 && data[i-1] == '\r' {
		return CRLF
	}
	return LF
}
