// Package orderedstore implements an insertion-ordered store of payloads
// keyed by name, addressable both by key and by position.
//
// Key equality is delegated to a KeyComparer, case-insensitive by default.
// The store can be latched read-only, after which every mutation fails.
package orderedstore

import (
	"slices"

	"github.com/authzed/namevalue/pkg/nverrors"
)

type entry[V any] struct {
	key   Key
	value V
}

// indexKey is the normalized identity of a Key in the index.
type indexKey struct {
	normalized string
	named      bool
}

// Store is an insertion-ordered collection of payloads of type V, keyed by
// Key. It is not safe for concurrent use.
type Store[V any] struct {
	entries  []entry[V]
	index    map[indexKey]int
	comparer KeyComparer
	config   Config
	readOnly bool
}

// New creates a new, empty store configured with the given options.
func New[V any](opts ...ConfigOption) *Store[V] {
	config := NewConfigWithOptionsAndDefaults(opts...)
	comparer := config.comparer()
	return &Store[V]{
		entries:  make([]entry[V], 0, config.Capacity),
		index:    make(map[indexKey]int, config.Capacity),
		comparer: comparer,
		config:   *config,
		readOnly: config.ReadOnly,
	}
}

// Config returns the configuration the store was built with. The ReadOnly
// field reflects the current state of the latch.
func (s *Store[V]) Config() Config {
	config := s.config
	config.ReadOnly = s.readOnly
	return config
}

// Comparer returns the comparer deciding key equality in this store.
func (s *Store[V]) Comparer() KeyComparer { return s.comparer }

// Len returns the number of keys in the store.
func (s *Store[V]) Len() int { return len(s.entries) }

// IsReadOnly returns true once the store has been latched read-only.
func (s *Store[V]) IsReadOnly() bool { return s.readOnly }

// SetReadOnly latches the store read-only. There is no way back.
func (s *Store[V]) SetReadOnly() { s.readOnly = true }

// HasKeys returns true if the store contains at least one key.
func (s *Store[V]) HasKeys() bool { return len(s.entries) > 0 }

// Has returns true if the key is found in the store.
func (s *Store[V]) Has(key Key) bool {
	_, ok := s.index[s.indexKeyFor(key)]
	return ok
}

// Get returns the payload bound to the key and whether the key existed.
func (s *Store[V]) Get(key Key) (V, bool) {
	position, ok := s.index[s.indexKeyFor(key)]
	if !ok {
		var zero V
		return zero, false
	}
	return s.entries[position].value, true
}

// GetAt returns the payload at the given position.
func (s *Store[V]) GetAt(index int) (V, error) {
	if err := s.checkIndex(index); err != nil {
		var zero V
		return zero, err
	}
	return s.entries[index].value, nil
}

// KeyAt returns the key at the given position, spelled as it was first
// inserted.
func (s *Store[V]) KeyAt(index int) (Key, error) {
	if err := s.checkIndex(index); err != nil {
		return NullKey, err
	}
	return s.entries[index].key, nil
}

// Keys returns all keys in insertion order. The returned slice is a fresh
// copy.
func (s *Store[V]) Keys() []Key {
	keys := make([]Key, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.key
	}
	return keys
}

// Add binds the payload to a key that is not yet in the store, placing it
// last.
func (s *Store[V]) Add(key Key, value V) error {
	if s.readOnly {
		return nverrors.NewUnsupportedOperationErr("add to store")
	}

	ik := s.indexKeyFor(key)
	if _, ok := s.index[ik]; ok {
		return nverrors.NewInvalidArgumentErr("key", nverrors.ReasonDuplicateKey, "key %q is already present", key.Name())
	}

	s.index[ik] = len(s.entries)
	s.entries = append(s.entries, entry[V]{key: key, value: value})
	return nil
}

// Set replaces the payload bound to the key, keeping its position. If the
// key is absent it is added last.
func (s *Store[V]) Set(key Key, value V) error {
	if s.readOnly {
		return nverrors.NewUnsupportedOperationErr("set in store")
	}

	ik := s.indexKeyFor(key)
	if position, ok := s.index[ik]; ok {
		s.entries[position].value = value
		return nil
	}

	s.index[ik] = len(s.entries)
	s.entries = append(s.entries, entry[V]{key: key, value: value})
	return nil
}

// SetAt replaces the payload at the given position.
func (s *Store[V]) SetAt(index int, value V) error {
	if s.readOnly {
		return nverrors.NewUnsupportedOperationErr("set in store")
	}
	if err := s.checkIndex(index); err != nil {
		return err
	}

	s.entries[index].value = value
	return nil
}

// Remove deletes the key and its payload. Removing an absent key is a no-op.
// The relative order of the remaining keys is preserved.
func (s *Store[V]) Remove(key Key) error {
	if s.readOnly {
		return nverrors.NewUnsupportedOperationErr("remove from store")
	}

	ik := s.indexKeyFor(key)
	position, ok := s.index[ik]
	if !ok {
		return nil
	}

	delete(s.index, ik)
	s.entries = slices.Delete(s.entries, position, position+1)
	for i := position; i < len(s.entries); i++ {
		s.index[s.indexKeyFor(s.entries[i].key)] = i
	}

	nverrors.DebugAssertf(func() bool { return len(s.index) == len(s.entries) },
		"store index has %d keys but %d entries", len(s.index), len(s.entries))
	return nil
}

// Clear removes every key from the store.
func (s *Store[V]) Clear() error {
	if s.readOnly {
		return nverrors.NewUnsupportedOperationErr("clear store")
	}

	clear(s.entries)
	s.entries = s.entries[:0]
	clear(s.index)
	return nil
}

func (s *Store[V]) indexKeyFor(key Key) indexKey {
	if key.IsNull() {
		return indexKey{}
	}
	return indexKey{normalized: s.comparer.Normalize(key.Name()), named: true}
}

func (s *Store[V]) checkIndex(index int) error {
	if index < 0 || index >= len(s.entries) {
		return nverrors.NewIndexOutOfRangeErr(index, len(s.entries))
	}
	return nil
}
