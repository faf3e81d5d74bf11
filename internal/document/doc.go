// Package document reads and writes text files as line sequences.
//
// Lines keep their terminators, so a document that is parsed and rendered
// again is byte-identical to the input regardless of whether it uses LF or
// CRLF, or whether the final line is terminated. The first terminator found
// decides the EOL convention used for lines added later.
//
// Write replaces the destination atomically (temporary file plus rename) and
// keeps the permissions of an existing file.
package document
