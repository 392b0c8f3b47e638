// brokenio is a wrapper around an io.ReadCloser or io.WriteCloser.
// It lets us make reads or writes fail after a set number of bytes.
// Typical use: You get a file pointer, a reader from a compressed
// source or a writer to an output file. You write
// reader = brokenio.NewReader(reader) to wrap the old one. Everything
// then functions as before, but with an artificial error at the
// chosen point.
// It also remembers if Close was called, which is what we usually
// want to know after an error.

package brokenio

import (
	"errors"
	"fmt"
	"io"
)

// ErrBroken is what comes back once the limit is reached.
var ErrBroken = errors.New("brokenio: artificial failure")

// counts is the book-keeping shared by the reader and writer.
// failAt < 0 means never fail.
type counts struct {
	failAt  int
	nCalled int
	nByte   int
	closed  bool
	verbose bool
}

// budget says how much of a request of n bytes can go through and
// whether we have hit the limit.
func (c *counts) budget(n int) (int, bool) {
	if c.failAt < 0 || c.nByte+n <= c.failAt {
		return n, false
	}
	return c.failAt - c.nByte, true
}

func (c *counts) close() {
	c.closed = true
	if c.verbose {
		fmt.Println("Closing", c.nCalled, "calls and", c.nByte, "bytes")
	}
}

// SetVerbose sets the verbosity flag to true or false
func (c *counts) SetVerbose(newV bool) { c.verbose = newV }

// SetFailAt sets the number of bytes which get through before
// an error. Negative means never.
func (c *counts) SetFailAt(n int) { c.failAt = n }

// Closed tells us if Close has been called.
func (c *counts) Closed() bool { return c.closed }

// NByte is the number of bytes which made it through.
func (c *counts) NByte() int { return c.nByte }

// BrknRdrClsr is modelled on the various Readers in the standard
// library, but fails after a given number of bytes.
type BrknRdrClsr struct {
	counts
	rdr_orig io.ReadCloser // Wrapped reader
}

// NewReader returns a new Reader - a wrapper around the old one.
// It does not fail until SetFailAt is called.
func NewReader(rIn io.ReadCloser) *BrknRdrClsr {
	return &BrknRdrClsr{counts: counts{failAt: -1}, rdr_orig: rIn}
}

// Read wraps the original reader and sums up the amount of data that
// has gone through. When the limit is reached, it returns what it
// could and ErrBroken.
func (r *BrknRdrClsr) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	r.nCalled++
	want, broken := r.budget(len(p))
	if want > 0 {
		n, err = r.rdr_orig.Read(p[:want])
		r.nByte += n
	}
	if broken && err == nil {
		err = ErrBroken
	}
	return n, err
}

// Close wraps the original Close method.
func (r *BrknRdrClsr) Close() error {
	r.close()
	return r.rdr_orig.Close()
}

// BrknWrtClsr is the writing version.
type BrknWrtClsr struct {
	counts
	wrt_orig io.WriteCloser
}

// NewWriter wraps a WriteCloser. It does not fail until SetFailAt
// is called.
func NewWriter(wIn io.WriteCloser) *BrknWrtClsr {
	return &BrknWrtClsr{counts: counts{failAt: -1}, wrt_orig: wIn}
}

// Write passes on as much as the limit allows.
func (w *BrknWrtClsr) Write(p []byte) (n int, err error) {
	w.nCalled++
	want, broken := w.budget(len(p))
	if want > 0 {
		n, err = w.wrt_orig.Write(p[:want])
		w.nByte += n
	}
	if broken && err == nil {
		err = ErrBroken
	}
	return n, err
}

// Close wraps the original Close method.
func (w *BrknWrtClsr) Close() error {
	w.close()
	return w.wrt_orig.Close()
}

// NopWriteCloser is io.NopCloser for writers.
func NopWriteCloser(w io.Writer) io.WriteCloser { return nopWC{w} }

type nopWC struct{ io.Writer }

func (nopWC) Close() error { return nil }
