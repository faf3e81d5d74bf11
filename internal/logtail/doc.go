// Package logtail extracts the latest assistant replies from a JSONL session
// log.
//
// # Overview
//
// Each line of the log is an optional JSON record. A record counts when its
// "type" is "assistant"; every element of its "message.content" array whose
// "type" is "text" contributes its "text" string. AssistantTexts returns the
// last N of those strings in log order.
//
// Example record:
//
//	{"type":"assistant","message":{"content":[{"type":"text","text":"Done."}]}}
//
// Records are inspected with gjson, so a line is only parsed as far as the
// fields above require.
//
// # Ring Buffer Algorithm
//
// Texts are pushed into a circular buffer of size N while the file is scanned
// once:
//
//	1. Allocate ring buffer of size N
//	2. For each text block found:
//	   - Store it at the current index
//	   - Increment index (wrapping at N)
//	   - Track total blocks seen
//	3. If total < N:
//	   - Return the first 'count' entries
//	4. If total >= N:
//	   - Return the buffer starting from the current index (oldest block)
//
// Memory stays O(N) regardless of log size. N <= 0 disables the limit.
//
// # Error Handling
//
// Malformed lines and records of other types are skipped silently; they are
// expected in real session logs. Open and read errors are returned wrapped.
// Lines longer than 16MB abort the scan with bufio.ErrTooLong.
package logtail
