package lenfilt

import (
	"errors"
	"fmt"

	"github.com/andrew-torda/fqlen/pkg/common"
)

// UsageError is a problem with what we were asked to do, rather than
// with the files.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// IOError is a failure opening, reading, writing or closing one of
// the two files. Op is one of "open", "create", "read", "write",
// "close".
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ExitCode turns an error from Mymain into a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return common.ExitSuccess
	}
	var uerr *UsageError
	if errors.As(err, &uerr) {
		return common.ExitUsageError
	}
	return common.ExitFailure
}
