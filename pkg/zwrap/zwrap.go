// Package zwrap opens fastq files for reading and writing and
// optionally wraps them so upon calling Close, the compressor or
// decompressor will be closed, followed by the underlying file.
// Whether a file is compressed is decided by its name. For input,
// the first two bytes are checked as well, so a compressed file
// with a plain name is caught before it turns into rubbish records.
package zwrap

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"
)

// Kind says how the bytes in a file are stored.
type Kind byte

const (
	Plain Kind = iota
	Gzip
)

func (k Kind) String() string {
	if k == Gzip {
		return "gzip"
	}
	return "plain"
}

// GzSuffix marks compressed files.
const GzSuffix = ".gz"

// Names we accept for input, before any GzSuffix.
var plainSuffixes = []string{".fastq", ".fq"}

const (
	gzMagic0 = 0x1f
	gzMagic1 = 0x8b
)

// UnsupportedInputError is returned if we cannot tell from the name
// of an input file what is in it, or the name and contents disagree.
type UnsupportedInputError struct {
	Path string
	Msg  string
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported input %q: %s", e.Path, e.Msg)
}

// InKind looks at the end of an input file name. There is no
// default. If the name is not one we know, it is an error, rather
// than guessing and parsing garbage.
func InKind(path string) (Kind, error) {
	name := strings.ToLower(path)
	kind := Plain
	if strings.HasSuffix(name, GzSuffix) {
		kind = Gzip
		name = strings.TrimSuffix(name, GzSuffix)
	}
	for _, sfx := range plainSuffixes {
		if strings.HasSuffix(name, sfx) {
			return kind, nil
		}
	}
	const msg = "name should end in .fastq, .fq, .fastq.gz or .fq.gz"
	return kind, &UnsupportedInputError{Path: path, Msg: msg}
}

type FpGzip struct { // This is what we return.
	fp   io.Closer    // backing file
	mm   mmap.MMap    // the file contents, if we could map them
	zrdr *gzip.Reader // nil for plain files
	rdr  io.Reader    // what Read actually reads from
}

// Read makes sure we read from the decompressed stream and
// not the underlying file.
func (fc *FpGzip) Read(p []byte) (int, error) { return fc.rdr.Read(p) }

// Close closes the decompressor, then gets rid of the mapping and
// finally closes the file. Errors from every step are returned.
func (fc *FpGzip) Close() error {
	var errs []error
	if fc.zrdr != nil {
		errs = append(errs, fc.zrdr.Close())
	}
	if fc.mm != nil {
		errs = append(errs, fc.mm.Unmap())
		fc.mm = nil
	}
	errs = append(errs, fc.fp.Close())
	return errors.Join(errs...)
}

// Mapped is true if the file is being read through a memory map.
func (fc *FpGzip) Mapped() bool { return fc.mm != nil }

// Compressed is true if we are decompressing.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Tap is given the raw bytes of the file, before decompression, and
// the file size (-1 if unknown). It can return a reader which counts
// or watches what goes past.
type Tap func(rdr io.Reader, size int64) io.Reader

// mapFile tries to map a regular file. Empty files and things like
// pipes cannot be mapped. They are read as normal, so failure is not
// an error.
func mapFile(fp *os.File) (mmap.MMap, int64) {
	fi, err := fp.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		return nil, -1
	}
	if fi.Size() == 0 {
		return nil, 0
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, fi.Size()
	}
	return mm, fi.Size()
}

// Open opens a fastq file for reading, decompressing if the name
// says so. tap may be nil.
// A plain name on a gzipped file gives an UnsupportedInputError.
// A .gz name on something which is not gzipped fails when the
// gzip header is read.
func Open(path string, tap Tap) (*FpGzip, error) {
	kind, err := InKind(path)
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fc := &FpGzip{fp: fp}
	var raw io.Reader = fp
	var size int64
	if fc.mm, size = mapFile(fp); fc.mm != nil {
		raw = bytes.NewReader(fc.mm)
	}
	if tap != nil {
		raw = tap(raw, size)
	}
	br := bufio.NewReader(raw)
	sig, _ := br.Peek(2) // short files and errors show up on the first Read
	isGz := len(sig) == 2 && sig[0] == gzMagic0 && sig[1] == gzMagic1

	switch {
	case kind == Plain && isGz:
		fc.Close()
		const msg = "contents are gzip compressed, but the name does not end in " + GzSuffix
		return nil, &UnsupportedInputError{Path: path, Msg: msg}
	case kind == Plain:
		fc.rdr = br
	default:
		zrdr, err := gzip.NewReader(br)
		if err != nil {
			fc.Close()
			return nil, err
		}
		fc.zrdr = zrdr
		fc.rdr = zrdr
	}
	return fc, nil
}
