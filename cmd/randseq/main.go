// 31 July 2020

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/fqlen/pkg/common"
	"github.com/andrew-torda/fqlen/pkg/randseq"
	"github.com/andrew-torda/fqlen/pkg/zwrap"
)

const iseed int64 = 1637

// usageError is anything wrong with the command line.
type usageError struct{ error }

// posInt converts a command line argument. Zero is allowed.
func posInt(s, what string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, usageError{fmt.Errorf("failed converting %s %q to positive integer", what, s)}
	}
	return int(n), nil
}

// wrtFile sets up the output and runs the generator. "-" means stdout.
func wrtFile(fname string, gz bool, args *randseq.RandSeqArgs, stderr io.Writer) (err error) {
	if fname == "-" {
		args.Wrtr = os.Stdout
		return randseq.RandSeqMain(args)
	}
	name, compress, renamed := zwrap.OutName(fname, gz)
	if renamed {
		fmt.Fprintln(stderr, "writing to", name)
	}
	fw, err := zwrap.Create(name, compress)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, fw.Close()) }()
	args.Wrtr = fw
	return randseq.RandSeqMain(args)
}

func newCmd(stderr io.Writer) *cobra.Command {
	var args randseq.RandSeqArgs
	var gz bool
	cmd := &cobra.Command{
		Use:           "randseq [options] file nseq minlen maxlen",
		Short:         "Write random fastq records for testing",
		Args:          cobra.ExactArgs(4),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, argv []string) error {
			var err error
			if args.Nseq, err = posInt(argv[1], "nseq"); err != nil {
				return err
			}
			if args.MinLen, err = posInt(argv[2], "minlen"); err != nil {
				return err
			}
			if args.MaxLen, err = posInt(argv[3], "maxlen"); err != nil {
				return err
			}
			if args.MaxLen < args.MinLen {
				return usageError{fmt.Errorf("maxlen %d < minlen %d", args.MaxLen, args.MinLen)}
			}
			return wrtFile(argv[0], gz, &args, stderr)
		},
	}
	f := cmd.Flags()
	f.Int64VarP(&args.Iseed, "seed", "r", iseed, "random number seed")
	f.BoolVarP(&args.MkErr, "err", "e", false, "provoke an error by making the last quality string short")
	f.BoolVarP(&args.NoN, "non", "n", false, "do not put N in the sequences")
	f.BoolVarP(&gz, "gzip", "z", false, "compress the output")
	f.StringVarP(&args.Cmmt, "comment", "c", "", "description put after each identifier")
	return cmd
}

// mymain returns the exit status.
func mymain(argv []string, stderr io.Writer) int {
	cmd := newCmd(stderr)
	cmd.SetArgs(argv)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	var ran bool
	cmd.PreRun = func(*cobra.Command, []string) { ran = true }
	err := cmd.Execute()
	if err == nil {
		return common.ExitSuccess
	}
	fmt.Fprintln(stderr, "Error:", err)
	var uerr usageError
	if !ran || errors.As(err, &uerr) {
		fmt.Fprint(stderr, cmd.UsageString())
		return common.ExitUsageError
	}
	return common.ExitFailure
}

func main() {
	os.Exit(mymain(os.Args[1:], os.Stderr))
}
