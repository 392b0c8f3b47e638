// Reader for fastq format files.

package fastq

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

const defaultReadSize = 64 * 1024

var rdsize int = defaultReadSize

// setRdSize is only used during benchmarking
func setRdSize(i int) {
	if i < 16 {
		panic("setRdSize given buffer length less than 16")
	}
	rdsize = i
}

// Reader hands out records one at a time. Use it like a bufio.Scanner:
//
//	rdr := fastq.NewReader(fp)
//	for rdr.Next() {
//		r := rdr.Record()
//	}
//	if err := rdr.Err(); err != nil {
//
// Nothing is kept from one record to the next, so memory does not
// grow with the size of the input.
type Reader struct {
	rdr  *bufio.Reader
	rec  *Record
	line int // lines consumed so far
	err  error
	done bool
}

// NewReader wraps an io.Reader. It does its own buffering.
func NewReader(r io.Reader) *Reader {
	return &Reader{rdr: bufio.NewReaderSize(r, rdsize)}
}

// readLine returns the next line without the line ending. There is
// no limit on line length. io.EOF only comes back if there was
// nothing left at all, so a last line without a newline is fine.
// Every call returns a new slice.
func (r *Reader) readLine() ([]byte, error) {
	b, err := r.rdr.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(b) == 0) {
		return nil, err
	}
	r.line++
	b = bytes.TrimSuffix(b, []byte{'\n'})
	b = bytes.TrimSuffix(b, []byte{'\r'})
	return b, nil
}

// fail records a format error at the current line.
func (r *Reader) fail(format string, a ...any) bool {
	r.err = &FormatError{Line: r.line, Msg: fmt.Sprintf(format, a...)}
	r.rec = nil
	return false
}

// body reads one of the lines after the identifier. Running out of
// input here means a truncated record.
func (r *Reader) body(what string) ([]byte, bool) {
	b, err := r.readLine()
	switch {
	case err == io.EOF:
		r.line++ // report the line we wanted
		return nil, r.fail("input ended where the %s line should be", what)
	case err != nil:
		r.err = err
		return nil, false
	}
	return b, true
}

// blanks is called after an empty line where an identifier should
// be. Empty lines at the end of a file are forgiven. Anything after
// them is an error.
func (r *Reader) blanks() bool {
	for {
		b, err := r.readLine()
		if err == io.EOF {
			r.done = true
			return false
		}
		if err != nil {
			r.err = err
			return false
		}
		if len(b) != 0 {
			return r.fail("blank line before record")
		}
	}
}

// Next reads the next record. It returns false at the end of input
// or on the first error. Check Err() to tell them apart.
func (r *Reader) Next() bool {
	if r.err != nil || r.done {
		return false
	}
	r.rec = nil
	hdr, err := r.readLine()
	switch {
	case err == io.EOF:
		r.done = true
		return false
	case err != nil:
		r.err = err
		return false
	case len(hdr) == 0:
		return r.blanks()
	case hdr[0] != IDChar:
		return r.fail("identifier line starts with %q, not %q", hdr[0], IDChar)
	}
	id := hdr[1:]

	seq, ok := r.body("sequence")
	if !ok {
		return false
	}
	sep, ok := r.body("separator")
	if !ok {
		return false
	}
	if len(sep) == 0 || sep[0] != SepChar {
		return r.fail("separator line does not start with %q", SepChar)
	}
	if len(sep) > 1 && !bytes.Equal(sep[1:], id) {
		const msg = "separator %q does not match identifier %q"
		return r.fail(msg, trimStr(string(sep[1:]), 40), trimStr(string(id), 40))
	}
	qual, ok := r.body("quality")
	if !ok {
		return false
	}
	if len(qual) != len(seq) {
		const msg = "sequence length %d but quality length %d for %s"
		return r.fail(msg, len(seq), len(qual), trimStr(string(id), 40))
	}
	r.rec = &Record{id: string(id), seq: seq, qual: qual}
	return true
}

// Record returns the record from the last successful call to Next.
func (r *Reader) Record() *Record { return r.rec }

// Err returns the first error seen. Reaching the end of input
// cleanly is not an error. Format problems come back as a
// *FormatError. Anything else is from the underlying reader.
func (r *Reader) Err() error { return r.err }

// Line tells us how many lines have been read.
func (r *Reader) Line() int { return r.line }
