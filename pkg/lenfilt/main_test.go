package lenfilt_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofastq "github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/fqlen/pkg/common"
	"github.com/andrew-torda/fqlen/pkg/lenfilt"
	"github.com/andrew-torda/fqlen/pkg/randseq"
	"github.com/andrew-torda/fqlen/pkg/zwrap"
)

// wrtFile writes s to dir/name, compressed if the name says so.
func wrtFile(t *testing.T, dir, name, s string) string {
	t.Helper()
	fname := filepath.Join(dir, name)
	_, compress, _ := zwrap.OutName(fname, false)
	fw, err := zwrap.Create(fname, compress)
	require.NoError(t, err)
	_, err = io.WriteString(fw, s)
	require.NoError(t, err)
	require.NoError(t, fw.Close())
	return fname
}

// rdFile gives back the decompressed contents of a file.
func rdFile(t *testing.T, fname string) string {
	t.Helper()
	fc, err := zwrap.Open(fname, nil)
	require.NoError(t, err)
	defer fc.Close()
	b, err := io.ReadAll(fc)
	require.NoError(t, err)
	return string(b)
}

// isGzip looks for the magic number at the start of a file.
func isGzip(t *testing.T, fname string) bool {
	t.Helper()
	b, err := os.ReadFile(fname)
	require.NoError(t, err)
	return len(b) > 2 && b[0] == 0x1f && b[1] == 0x8b
}

func TestMymainPlain(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "in.fastq", mkRecs(100, 150, 200, 250))
	out := filepath.Join(dir, "out.fastq")
	var stderr bytes.Buffer
	cfg := lenfilt.Config{InFile: in, OutFile: out, Lower: 120, Upper: 220}
	cnt, err := lenfilt.Mymain(cfg, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 2, cnt.NKept)
	assert.Empty(t, stderr.String())
	assert.False(t, isGzip(t, out))
	recs := parse(t, rdFile(t, out))
	require.Len(t, recs, 2)
	assert.Equal(t, 150, recs[0].Len())
	assert.Equal(t, 200, recs[1].Len())
}

// The same records, compressed or not, give the same result.
func TestMymainGzipInput(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	args := randseq.RandSeqArgs{Wrtr: &sb, Nseq: 400, MinLen: 1, MaxLen: 120, Iseed: 3}
	require.NoError(t, randseq.RandSeqMain(&args))
	plainIn := wrtFile(t, dir, "in.fq", sb.String())
	gzIn := wrtFile(t, dir, "in.fq.gz", sb.String())
	require.True(t, isGzip(t, gzIn))

	var results []string
	for i, in := range []string{plainIn, gzIn} {
		out := filepath.Join(dir, []string{"a.fastq", "b.fastq.gz"}[i])
		_, err := lenfilt.Mymain(lenfilt.Config{InFile: in, OutFile: out, Lower: 30, Upper: 90}, io.Discard)
		require.NoError(t, err)
		results = append(results, rdFile(t, out))
	}
	assert.Equal(t, results[0], results[1])
	assert.NotEmpty(t, results[0])
}

// --gzip with a plain name: .gz is added, there is a warning and the
// output really is gzip. Check it with an independent fastq reader.
func TestMymainGzipFlag(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "in.fastq", mkRecs(100, 150, 200, 250))
	out := filepath.Join(dir, "out.fastq")
	var stderr bytes.Buffer
	cfg := lenfilt.Config{InFile: in, OutFile: out, Lower: 120, Upper: 220, Gzip: true}
	_, err := lenfilt.Mymain(cfg, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "warning")
	assert.Contains(t, stderr.String(), out+".gz")
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "plain named file should not exist")
	require.True(t, isGzip(t, out+".gz"))

	fc, err := zwrap.Open(out+".gz", nil)
	require.NoError(t, err)
	defer fc.Close()
	template := linear.NewQSeq("", nil, alphabet.DNA, alphabet.Sanger)
	sc := seqio.NewScanner(biofastq.NewReader(fc, template))
	var lens []int
	for sc.Next() {
		lens = append(lens, sc.Seq().Len())
	}
	require.NoError(t, sc.Error())
	assert.Equal(t, []int{150, 200}, lens)
}

func TestMymainWarnings(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "in.fastq", mkRecs(10, 20))
	out := filepath.Join(dir, "out.fastq")
	var stderr bytes.Buffer
	cnt, err := lenfilt.Mymain(lenfilt.Config{InFile: in, OutFile: out, Lower: 30, Upper: 5}, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "no sequences will be kept")
	assert.Zero(t, cnt.NKept)
	assert.Empty(t, rdFile(t, out))
}

func TestMymainVerbose(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "in.fastq", mkRecs(10, 20, 30))
	var stderr bytes.Buffer
	cfg := lenfilt.Config{InFile: in, OutFile: filepath.Join(dir, "o.fq"), Lower: 15, Upper: 100, Verbose: true}
	_, err := lenfilt.Mymain(cfg, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "read 3 sequences, kept 2 (50 bases)")
}

// lockedBuf is written to by the progress bar's own goroutine.
type lockedBuf struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuf) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuf) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// The progress bar goes to stderr and does not change the result.
func TestMymainProgress(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "in.fastq.gz", mkRecs(10, 20, 30))
	out := filepath.Join(dir, "o.fq")
	var stderr lockedBuf
	cfg := lenfilt.Config{InFile: in, OutFile: out, Lower: 15, Upper: 100, Progress: true}
	cnt, err := lenfilt.Mymain(cfg, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 2, cnt.NKept)
	assert.NotEmpty(t, stderr.String())
	assert.Len(t, parse(t, rdFile(t, out)), 2)
}

func TestMymainUnsupported(t *testing.T) {
	dir := t.TempDir()
	in, err := common.WrtTemp(mkRecs(10), ".txt")
	require.NoError(t, err)
	defer os.Remove(in)
	out := filepath.Join(dir, "out.fastq")
	_, err = lenfilt.Mymain(lenfilt.Config{InFile: in, OutFile: out, Lower: 1, Upper: 100}, io.Discard)
	var uerr *zwrap.UnsupportedInputError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, common.ExitFailure, lenfilt.ExitCode(err))
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "no output for bad input")
}

func TestMymainUsage(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "in.fastq", mkRecs(10))
	var cases = []lenfilt.Config{
		{InFile: in, OutFile: filepath.Join(dir, "o.fastq"), Lower: -1, Upper: 10},
		{InFile: in, OutFile: filepath.Join(dir, "o.fastq"), Lower: 1, Upper: -10},
		{InFile: "", OutFile: filepath.Join(dir, "o.fastq"), Lower: 1, Upper: 10},
		{InFile: in, OutFile: "", Lower: 1, Upper: 10},
		{InFile: in, OutFile: in, Lower: 1, Upper: 10},
	}
	for _, cfg := range cases {
		_, err := lenfilt.Mymain(cfg, io.Discard)
		var uerr *lenfilt.UsageError
		assert.ErrorAs(t, err, &uerr, "%+v", cfg)
		assert.Equal(t, common.ExitUsageError, lenfilt.ExitCode(err))
	}
	assert.Equal(t, mkRecs(10), rdFile(t, in), "input must not be touched")
}

func TestMymainMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := lenfilt.Config{InFile: filepath.Join(dir, "none.fastq"), OutFile: filepath.Join(dir, "o.fastq"), Upper: 10}
	_, err := lenfilt.Mymain(cfg, io.Discard)
	var ioerr *lenfilt.IOError
	require.ErrorAs(t, err, &ioerr)
	assert.Equal(t, "open", ioerr.Op)
	assert.True(t, os.IsNotExist(ioerr.Err))
	assert.Equal(t, common.ExitFailure, lenfilt.ExitCode(err))
}

// A broken record part way through. The good records before it
// are left in a properly finished output file.
func TestMymainPartial(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	args := randseq.RandSeqArgs{Wrtr: &sb, Nseq: 50, MinLen: 40, MaxLen: 60, MkErr: true}
	require.NoError(t, randseq.RandSeqMain(&args))
	in := wrtFile(t, dir, "in.fastq.gz", sb.String())
	out := filepath.Join(dir, "out.fastq.gz")
	cnt, err := lenfilt.Mymain(lenfilt.Config{InFile: in, OutFile: out, Lower: 0, Upper: 1000}, io.Discard)
	require.Error(t, err)
	assert.Equal(t, common.ExitFailure, lenfilt.ExitCode(err))
	assert.Equal(t, args.Nseq-1, cnt.NKept)
	assert.Len(t, parse(t, rdFile(t, out)), args.Nseq-1)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, common.ExitSuccess, lenfilt.ExitCode(nil))
	assert.Equal(t, common.ExitUsageError, lenfilt.ExitCode(&lenfilt.UsageError{Msg: "x"}))
	assert.Equal(t, common.ExitFailure, lenfilt.ExitCode(&lenfilt.IOError{Op: "read", Err: io.ErrUnexpectedEOF}))
}
