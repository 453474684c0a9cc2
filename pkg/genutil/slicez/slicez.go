package slicez

// Map iterates over a slice and creates a new slice with each element
// transformed.
func Map[T any, R any](xs []T, fn func(T) R) []R {
	ys := make([]R, len(xs))
	for i, x := range xs {
		ys[i] = fn(x)
	}
	return ys
}

// Flatten concatenates the given slices, in order, into a single new slice.
//
// The result is never nil, even when every input is empty.
func Flatten[T any](xss ...[]T) []T {
	total := 0
	for _, xs := range xss {
		total += len(xs)
	}

	ys := make([]T, 0, total)
	for _, xs := range xss {
		ys = append(ys, xs...)
	}
	return ys
}

// Clone returns a shallow copy of the slice that is never nil.
func Clone[T any](xs []T) []T {
	ys := make([]T, len(xs))
	copy(ys, xs)
	return ys
}
