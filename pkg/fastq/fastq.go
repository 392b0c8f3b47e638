// 3 Oct 2026

// Package fastq reads and writes sequence records in fastq format.
// We only know about the four line form of the format:
//
//	@identifier
//	sequence
//	+
//	quality
//
// Sequences are not wrapped over several lines. The sequence and
// quality must have the same length.
package fastq

import (
	"fmt"
)

// Marker characters for the identifier and separator lines.
const (
	IDChar  byte = '@'
	SepChar byte = '+'
)

// Record is one fastq entry. The identifier is stored without
// the leading "@".
type Record struct {
	id   string
	seq  []byte
	qual []byte
}

// FormatError says where the input stopped looking like fastq.
// Line numbers start from 1.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return "fastq format error: " + e.Msg
	}
	return fmt.Sprintf("fastq format error at line %d: %s", e.Line, e.Msg)
}

// NewRecord builds a record from its parts. The slices are used,
// not copied.
func NewRecord(id string, seq, qual []byte) (*Record, error) {
	if len(seq) != len(qual) {
		const msg = "sequence length %d but quality length %d for %s"
		return nil, &FormatError{Msg: fmt.Sprintf(msg, len(seq), len(qual), trimStr(id, 40))}
	}
	return &Record{id: id, seq: seq, qual: qual}, nil
}

// ID returns the identifier without the "@"
func (r *Record) ID() string { return r.id }

// Seq returns the sequence as the original byte slice
func (r *Record) Seq() []byte { return r.seq }

// Qual returns the quality string as the original byte slice
func (r *Record) Qual() []byte { return r.qual }

// Len is the number of bases.
func (r *Record) Len() int { return len(r.seq) }

// String gives the record as it would be written, including the
// final newline.
func (r *Record) String() string {
	return fmt.Sprintf("%c%s\n%s\n%c\n%s\n", IDChar, r.id, r.seq, SepChar, r.qual)
}

// trimStr trims a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
