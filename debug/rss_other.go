//go:build unix && !darwin

package debug

// linux and the BSDs report ru_maxrss in kilobytes.
const maxrssInKilobytes = true
