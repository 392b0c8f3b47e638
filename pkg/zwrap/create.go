// 5 Oct 2026

package zwrap

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const wrsize = 64 * 1024

// OutName decides what an output file will really be called and
// if it is compressed. A name ending in .gz is always compressed.
// If gz is set and the name does not end in .gz, the suffix is
// added and renamed comes back true, so the caller can say so.
func OutName(path string, gz bool) (name string, compress, renamed bool) {
	if strings.HasSuffix(strings.ToLower(path), GzSuffix) {
		return path, true, false
	}
	if gz {
		return path + GzSuffix, true, true
	}
	return path, false, false
}

// FpGzipW is a buffered file, possibly with a compressor in front.
type FpGzipW struct {
	fp *os.File
	bw *bufio.Writer
	zw *gzip.Writer
	w  io.Writer
}

// Create makes the file name. Nothing is done to the name here.
// Get it from OutName first.
func Create(name string, compress bool) (*FpGzipW, error) {
	fp, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	fw := &FpGzipW{fp: fp, bw: bufio.NewWriterSize(fp, wrsize)}
	fw.w = fw.bw
	if compress {
		fw.zw = gzip.NewWriter(fw.bw)
		fw.w = fw.zw
	}
	return fw, nil
}

// Write goes to the compressor if there is one.
func (fw *FpGzipW) Write(p []byte) (int, error) { return fw.w.Write(p) }

// Name is the name of the file being written.
func (fw *FpGzipW) Name() string { return fw.fp.Name() }

// Close finishes the compressed stream, flushes the buffer and
// closes the file, in that order. The file is closed even if an
// earlier step failed.
func (fw *FpGzipW) Close() error {
	var errs []error
	if fw.zw != nil {
		errs = append(errs, fw.zw.Close())
	}
	errs = append(errs, fw.bw.Flush())
	errs = append(errs, fw.fp.Close())
	return errors.Join(errs...)
}
