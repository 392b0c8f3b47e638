// 29 Apr 2020

package common

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
// An optional suffix is put on the end of the name, since the
// readers decide what to do by looking at the file name.
func WrtTemp(s string, suffix ...string) (string, error) {
	pattern := "_del_me_testing"
	if len(suffix) > 0 {
		pattern = pattern + "*" + suffix[0]
	}
	f_tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("tempfile fail")
	}

	if _, err := io.WriteString(f_tmp, s); err != nil {
		f_tmp.Close()
		return "", fmt.Errorf("writing string to temp file %v", f_tmp.Name())
	}
	name := f_tmp.Name()
	f_tmp.Close()
	return name, nil
}
