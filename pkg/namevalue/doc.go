// Package namevalue implements Collection, an insertion-ordered container
// that binds string names to zero or more values of a single type.
//
// It is the typed generalization of the multi-valued maps used for HTTP
// headers and query strings: keys keep their first-insertion order and
// spelling, values keep their insertion order within a key, and key equality
// is case-insensitive unless another comparer is configured.
//
// The all-keys and all-values views are computed on demand and cached until
// the next mutation. A collection can be latched read-only, after which every
// mutating call returns an error matched by nverrors.IsReadOnlyErr.
//
// A Collection is not safe for concurrent use; callers sharing one between
// goroutines must serialize every call, including reads, with their own lock.
package namevalue
