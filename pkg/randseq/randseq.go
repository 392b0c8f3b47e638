// 31 July 2020
// Random fastq records for testing and benchmarks.

package randseq

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
)

var (
	letters  = []byte{'A', 'C', 'G', 'T'}
	nLetters = append(letters, 'N')
)

// Sanger quality symbols run from '!' (0) to 'J' (41).
const (
	qualLo = '!'
	qualHi = 'J'
)

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed  int64     // random number seed
	Wrtr   io.Writer // where we write to
	Cmmt   string    // Comment for the sequences
	Nseq   int       // number of sequences
	MinLen int       // shortest sequence
	MaxLen int       // longest sequence, inclusive. Zero means MinLen
	NoN    bool      // Do not put N into sequences
	MkErr  bool      // Add an error, by making the last quality string short
}

// rec is a sequence and its quality string on the way to the writer.
type rec struct {
	seq, qual []byte
}

// getrec returns a random sequence and quality of length seqlen
func getrec(seqlen int, alfbt []byte, rnd *rand.Rand) rec {
	r := rec{seq: make([]byte, seqlen), qual: make([]byte, seqlen)}
	l := int32(len(alfbt))
	for i := 0; i < seqlen; i++ {
		r.seq[i] = alfbt[rnd.Int31n(l)]
		r.qual[i] = byte(qualLo + rnd.Int31n(qualHi-qualLo+1))
	}
	return r
}

// writeseq takes records from the channel, adds a name and writes
// them. n is the number of the sequence, so the output has identifier
// lines "@s1 something, @s2 something...", padded to the same width.
func writeseq(rChan <-chan rec, args *RandSeqArgs, err *error, wg *sync.WaitGroup) {
	defer wg.Done()
	width := len(fmt.Sprintf("%d", args.Nseq))
	var i int
	for r := range rChan {
		i++
		if *err != nil {
			continue // drain the channel
		}
		if args.MkErr && i == args.Nseq && len(r.qual) > 0 {
			r.qual = r.qual[:len(r.qual)-1]
		}
		_, *err = fmt.Fprintf(args.Wrtr, "@s%0*d %s\n%s\n+\n%s\n", width, i, args.Cmmt, r.seq, r.qual)
	}
}

// RandSeqMain writes random fastq records to an io.Writer.
func RandSeqMain(args *RandSeqArgs) error {
	var wg sync.WaitGroup
	var err error
	maxlen := args.MaxLen
	if maxlen == 0 {
		maxlen = args.MinLen
	}
	if args.MinLen < 0 || maxlen < args.MinLen {
		return fmt.Errorf("bad lengths min %d max %d", args.MinLen, maxlen)
	}
	alfbt := nLetters
	if args.NoN {
		alfbt = letters
	}
	rnd := rand.New(rand.NewSource(args.Iseed))
	rChan := make(chan rec)
	wg.Add(1)
	go writeseq(rChan, args, &err, &wg)
	for i := 0; i < args.Nseq; i++ {
		n := args.MinLen + rnd.Intn(maxlen-args.MinLen+1)
		rChan <- getrec(n, alfbt, rnd)
	}
	close(rChan)
	wg.Wait()
	return err
}
