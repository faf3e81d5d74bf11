package logtail

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
)

const assistantType = "assistant"

// AssistantTexts returns the last maxTexts text blocks of assistant messages
// in the JSONL log at path, oldest first. maxTexts <= 0 returns every block.
func AssistantTexts(path string, maxTexts int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	texts, err := ReadAssistantTexts(file, maxTexts)
	if err != nil {
		return nil, fmt.Errorf("read log %s: %w", path, err)
	}
	return texts, nil
}

// ReadAssistantTexts is AssistantTexts over an arbitrary reader. Lines that
// are not valid JSON are skipped.
func ReadAssistantTexts(r io.Reader, maxTexts int) ([]string, error) {
	ring := newRing(maxTexts)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		for _, text := range textBlocks(scanner.Bytes()) {
			ring.push(text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ring.items(), nil
}

// textBlocks returns the text content blocks of one assistant record.
func textBlocks(line []byte) []string {
	if !gjson.ValidBytes(line) {
		return nil
	}
	record := gjson.ParseBytes(line)
	if record.Get("type").String() != assistantType {
		return nil
	}
	content := record.Get("message.content")
	if !content.IsArray() {
		return nil
	}
	var texts []string
	content.ForEach(func(_, block gjson.Result) bool {
		text := block.Get("text")
		if block.Get("type").String() == "text" && text.Type == gjson.String {
			texts = append(texts, text.String())
		}
		return true
	})
	return texts
}

// ring keeps the last n pushed values. n <= 0 keeps everything.
type ring struct {
	buf   []string
	limit int
	idx   int
	count int
}

func newRing(limit int) *ring {
	r := &ring{limit: limit}
	if limit > 0 {
		r.buf = make([]string, limit)
	}
	return r
}

func (r *ring) push(s string) {
	if r.limit <= 0 {
		r.buf = append(r.buf, s)
		r.count++
		return
	}
	r.buf[r.idx] = s
	r.idx = (r.idx + 1) % r.limit
	if r.count < r.limit {
		r.count++
	}
}

func (r *ring) items() []string {
	if r.limit <= 0 {
		return r.buf
	}
	out := make([]string, r.count)
	if r.count == r.limit {
		for i := 0; i < r.count; i++ {
			out[i] = r.buf[(r.idx+i)%r.limit]
		}
	} else {
		copy(out, r.buf[:r.count])
	}
	return out
}
