package namevalue

import "iter"

// Pair is one key and one of its values.
type Pair[T any] struct {
	Key   Key
	Value T
}

// Entry is an untyped Pair, as produced through the Dictionary interface.
type Entry struct {
	Key   any
	Value any
}

// Enumerator is a forward-only cursor over dictionary entries.
type Enumerator interface {
	// Next advances to the next entry and reports whether there is one.
	Next() bool

	// Entry returns the current entry, or false if the cursor is not
	// positioned on one.
	Entry() (Entry, bool)

	// Reset moves the cursor back before the first entry.
	Reset()

	// Close releases the cursor.
	Close() error
}

// Pairs returns every key and value pair, key by key in the order of Keys and
// in insertion order within each key. A key bound to N values yields N pairs;
// a key bound to an empty list yields none.
func (c *Collection[T]) Pairs() []Pair[T] {
	pairs := make([]Pair[T], 0, c.store.Len())
	for i := range c.store.Len() {
		key, _ := c.store.KeyAt(i)
		values, _ := c.store.GetAt(i)
		for _, value := range values {
			pairs = append(pairs, Pair[T]{Key: key, Value: value})
		}
	}
	return pairs
}

// All iterates over the pairs of the collection as they were when iteration
// started. Mutating the collection during iteration is allowed and does not
// affect the iteration in progress.
func (c *Collection[T]) All() iter.Seq2[Key, T] {
	return func(yield func(Key, T) bool) {
		for _, pair := range c.Pairs() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Enumerator returns a cursor over a snapshot of Pairs taken now.
func (c *Collection[T]) Enumerator() *PairEnumerator[T] {
	return &PairEnumerator[T]{pairs: c.Pairs(), position: -1}
}

// PairEnumerator walks a fixed snapshot of the pairs of a collection. It holds
// no reference to the collection it came from.
type PairEnumerator[T any] struct {
	pairs    []Pair[T]
	position int
}

var _ Enumerator = (*PairEnumerator[string])(nil)

// Next implements Enumerator.
func (e *PairEnumerator[T]) Next() bool {
	if e.position+1 < len(e.pairs) {
		e.position++
		return true
	}
	e.position = len(e.pairs)
	return false
}

// Current returns the pair under the cursor, or false before the first call
// to Next and after the last pair.
func (e *PairEnumerator[T]) Current() (Pair[T], bool) {
	if e.position < 0 || e.position >= len(e.pairs) {
		return Pair[T]{}, false
	}
	return e.pairs[e.position], true
}

// Entry implements Enumerator.
func (e *PairEnumerator[T]) Entry() (Entry, bool) {
	pair, ok := e.Current()
	if !ok {
		return Entry{}, false
	}
	return Entry{Key: pair.Key, Value: pair.Value}, true
}

// Reset implements Enumerator.
func (e *PairEnumerator[T]) Reset() { e.position = -1 }

// Len returns the number of pairs in the snapshot.
func (e *PairEnumerator[T]) Len() int { return len(e.pairs) }

// Close implements Enumerator. It does nothing.
func (e *PairEnumerator[T]) Close() error { return nil }
