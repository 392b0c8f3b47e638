// 6 Oct 2026
// Read a fastq file, keep the sequences whose length lies between
// two limits, write them to a new file, maybe compressed.

package lenfilt

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/andrew-torda/fqlen/pkg/zwrap"
)

// Config is literally command line flags after parsing. It is passed
// by value and nothing changes it.
type Config struct {
	InFile   string // .fastq, .fq, .fastq.gz or .fq.gz
	OutFile  string // .gz on the end means compressed
	Lower    int    // keep lengths strictly greater than this
	Upper    int    // and strictly less than this
	Gzip     bool   // compress output, adding .gz if necessary
	Verbose  bool   // report counts at the end
	Progress bool   // show a progress bar on stderr
}

// check looks for things we cannot work with. lower >= upper is not
// one of them. It gives empty output and a warning.
func (cfg Config) check() error {
	switch {
	case cfg.InFile == "":
		return &UsageError{"no input file given"}
	case cfg.OutFile == "":
		return &UsageError{"no output file given"}
	case cfg.Lower < 0 || cfg.Upper < 0:
		const msg = "length limits must not be negative, got lower %d upper %d"
		return &UsageError{fmt.Sprintf(msg, cfg.Lower, cfg.Upper)}
	}
	return nil
}

var warnColor = color.New(color.FgYellow)

// warn writes a highlighted warning.
func warn(w io.Writer, format string, a ...any) {
	warnColor.Fprintf(w, "warning: "+format+"\n", a...)
}

// newBar sets up a progress bar over the raw input bytes.
func newBar(size int64, w io.Writer) *pb.ProgressBar {
	if size < 0 {
		size = 0
	}
	bar := pb.New64(size).SetUnits(pb.U_BYTES)
	bar.Output = w
	bar.ShowSpeed = true
	return bar
}

// closeIt closes a file and only reports the error if nothing went
// wrong earlier.
func closeIt(c io.Closer, path string, err *error) {
	if e := c.Close(); e != nil && *err == nil {
		*err = &IOError{Op: "close", Path: path, Err: e}
	}
}

// Mymain does the work after the command line has been parsed.
// Warnings and, if asked for, counts and progress go to stderr.
// Both files are closed however we leave.
func Mymain(cfg Config, stderr io.Writer) (cnt Counts, err error) {
	if err = cfg.check(); err != nil {
		return cnt, err
	}
	if cfg.Lower >= cfg.Upper {
		warn(stderr, "lower limit %d >= upper limit %d, no sequences will be kept", cfg.Lower, cfg.Upper)
	}
	outName, compress, renamed := zwrap.OutName(cfg.OutFile, cfg.Gzip)
	if filepath.Clean(outName) == filepath.Clean(cfg.InFile) {
		return cnt, &UsageError{"input and output are the same file: " + cfg.InFile}
	}

	var bar *pb.ProgressBar
	var tap zwrap.Tap
	if cfg.Progress {
		tap = func(r io.Reader, size int64) io.Reader {
			bar = newBar(size, stderr)
			return bar.NewProxyReader(r)
		}
	}
	fpIn, err := zwrap.Open(cfg.InFile, tap)
	if err != nil {
		var uerr *zwrap.UnsupportedInputError
		if errors.As(err, &uerr) {
			return cnt, err
		}
		return cnt, &IOError{Op: "open", Path: cfg.InFile, Err: err}
	}
	defer closeIt(fpIn, cfg.InFile, &err)

	if renamed {
		warn(stderr, "compressed output requested, writing to %s instead of %s", outName, cfg.OutFile)
	}
	fpOut, err := zwrap.Create(outName, compress)
	if err != nil {
		return cnt, &IOError{Op: "create", Path: outName, Err: err}
	}
	defer closeIt(fpOut, outName, &err)

	if bar != nil {
		bar.Start()
		defer bar.Finish()
	}
	cnt, err = Filter(fpIn, fpOut, cfg.Lower, cfg.Upper)
	var ioerr *IOError
	if errors.As(err, &ioerr) && ioerr.Path == "" {
		ioerr.Path = cfg.InFile
		if ioerr.Op == "write" {
			ioerr.Path = outName
		}
	}
	if err == nil && cfg.Verbose {
		const msg = "%s: read %d sequences, kept %d (%d bases) in %s\n"
		fmt.Fprintf(stderr, msg, cfg.InFile, cnt.NIn, cnt.NKept, cnt.NBaseKept, outName)
	}
	return cnt, err
}
