//go:build !windows && !unix

package debug

import "errors"

func residentSetSize() (uint64, error) {
	return 0, errors.New("resident set size not available on this platform")
}
