//go:build unix

package debug

import (
	"golang.org/x/sys/unix"
)

// residentSetSize reports the peak resident set; getrusage has no current-RSS field.
func residentSetSize() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	maxrss := uint64(ru.Maxrss)
	if maxrssInKilobytes {
		maxrss *= 1024
	}
	return maxrss, nil
}
