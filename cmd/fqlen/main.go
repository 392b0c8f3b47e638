// 7 Oct 2026
// fqlen keeps the sequences in a fastq file whose lengths lie
// strictly between two limits.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/fqlen/pkg/common"
	"github.com/andrew-torda/fqlen/pkg/lenfilt"
)

const version = "1.0.0"

// newCmd builds the command. The Config is filled in by the flag
// parser and handed to run as a value.
func newCmd(run func(lenfilt.Config) error) *cobra.Command {
	var cfg lenfilt.Config
	cmd := &cobra.Command{
		Use:   "fqlen -i input.fastq -o output.fastq -l lower -u upper [-z]",
		Short: "Keep fastq records with lower < length < upper",
		Long: `fqlen reads a fastq file and writes the records whose sequence length
is strictly greater than the lower limit and strictly less than the upper
limit. Input names must end in .fastq, .fq, .fastq.gz or .fq.gz.
Output is gzipped if its name ends in .gz or -z is given.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfg.InFile, "input", "i", "", "input fastq file [REQUIRED]")
	f.StringVarP(&cfg.OutFile, "output", "o", "", "output fastq file [REQUIRED]")
	f.IntVarP(&cfg.Lower, "lower", "l", 0, "exclusive lower length limit [REQUIRED]")
	f.IntVarP(&cfg.Upper, "upper", "u", 0, "exclusive upper length limit [REQUIRED]")
	f.BoolVarP(&cfg.Gzip, "gzip", "z", false, "gzip the output, adding .gz to the name if needed")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "print counts to stderr at the end")
	f.BoolVar(&cfg.Progress, "progress", false, "show a progress bar on stderr")
	for _, name := range []string{"input", "output", "lower", "upper"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

// mymain returns the exit status. Errors from the flag parser are
// usage errors. Errors from run are classified by lenfilt.ExitCode.
// Nothing goes to stdout, not even help.
func mymain(argv []string, stderr io.Writer) int {
	var runErr error
	ran := false
	cmd := newCmd(func(cfg lenfilt.Config) error {
		ran = true
		_, runErr = lenfilt.Mymain(cfg, stderr)
		return runErr
	})
	cmd.SetArgs(argv)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	if err == nil {
		return common.ExitSuccess
	}
	code := common.ExitUsageError
	if ran {
		code = lenfilt.ExitCode(runErr)
	}
	fmt.Fprintln(stderr, "Error:", err)
	if code == common.ExitUsageError {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return code
}

func main() {
	os.Exit(mymain(os.Args[1:], os.Stderr))
}
