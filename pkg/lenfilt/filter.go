// 6 Oct 2026

package lenfilt

import (
	"errors"
	"io"

	"github.com/andrew-torda/fqlen/pkg/fastq"
)

// Counts are what we can see for free while filtering.
type Counts struct {
	NIn       int // records read
	NKept     int // records written
	NBaseKept int // bases in the records written
}

// Keep says if a record is strictly longer than lower and strictly
// shorter than upper. If lower >= upper, nothing is kept.
func Keep(r *fastq.Record, lower, upper int) bool {
	n := r.Len()
	return lower < n && n < upper
}

// Filter reads fastq records from rdr and writes the ones that
// pass Keep to wrtr, in the order they arrive. Only one record is
// held at a time.
// On a broken record it stops, returning the *fastq.FormatError.
// Whatever was written so far stays written. Failures of rdr or
// wrtr come back as *IOError without a Path.
func Filter(rdr io.Reader, wrtr io.Writer, lower, upper int) (Counts, error) {
	var cnt Counts
	fr := fastq.NewReader(rdr)
	fw := fastq.NewWriter(wrtr)
	for fr.Next() {
		r := fr.Record()
		cnt.NIn++
		if !Keep(r, lower, upper) {
			continue
		}
		if err := fw.Write(r); err != nil {
			return cnt, &IOError{Op: "write", Err: err}
		}
		cnt.NKept++
		cnt.NBaseKept += r.Len()
	}
	if err := fr.Err(); err != nil {
		var ferr *fastq.FormatError
		if errors.As(err, &ferr) {
			return cnt, err
		}
		return cnt, &IOError{Op: "read", Err: err}
	}
	return cnt, nil
}
