//go:build darwin

package debug

// darwin reports ru_maxrss in bytes.
const maxrssInKilobytes = false
