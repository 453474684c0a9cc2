package testutil

import "go.uber.org/goleak"

// GoLeakIgnores returns the goroutines that leak detection must ignore: those
// already running when the test binary starts.
func GoLeakIgnores() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreCurrent(),
	}
}
