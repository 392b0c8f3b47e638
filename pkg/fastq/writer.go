package fastq

import (
	"io"
)

// Write puts one record on w as four lines. The separator line is
// always written as a bare "+". There is no buffering here, so give
// it something buffered if you care.
func Write(w io.Writer, r *Record) error {
	var wrtr Writer
	wrtr.w = w
	return wrtr.Write(r)
}

// Writer writes records, reusing one scratch buffer so each record
// goes out in a single call to the underlying Write.
type Writer struct {
	w    io.Writer
	buf  []byte
	nrec int
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Write serialises one record.
func (w *Writer) Write(r *Record) error {
	n := len(r.id) + len(r.seq) + len(r.qual) + 6
	if cap(w.buf) < n {
		w.buf = make([]byte, 0, n)
	}
	b := w.buf[:0]
	b = append(b, IDChar)
	b = append(b, r.id...)
	b = append(b, '\n')
	b = append(b, r.seq...)
	b = append(b, '\n', SepChar, '\n')
	b = append(b, r.qual...)
	b = append(b, '\n')
	w.buf = b
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	w.nrec++
	return nil
}

// NRec is the number of records written so far.
func (w *Writer) NRec() int { return w.nrec }
