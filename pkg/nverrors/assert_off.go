//go:build !ci

package nverrors

const DebugAssertionsEnabled = false

// DebugAssertf is a no-op outside of CI builds.
func DebugAssertf(condition func() bool, format string, args ...any) {}
