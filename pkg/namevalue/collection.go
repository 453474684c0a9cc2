package namevalue

import (
	"github.com/rs/zerolog"

	log "github.com/authzed/namevalue/internal/logging"
	"github.com/authzed/namevalue/pkg/genutil"
	"github.com/authzed/namevalue/pkg/genutil/slicez"
	"github.com/authzed/namevalue/pkg/nverrors"
	"github.com/authzed/namevalue/pkg/orderedstore"
)

// Collection binds keys to ordered lists of values of type T, preserving the
// insertion order of both.
type Collection[T any] struct {
	store *orderedstore.Store[[]T]

	keys   lazy[[]Key]
	values lazy[[]T]
}

// New creates an empty collection.
func New[T any](opts ...Option) *Collection[T] {
	return &Collection[T]{store: orderedstore.New[[]T](opts...)}
}

// NewFrom creates a collection holding a copy of every entry of src, added
// key by key and value by value as AddCollection does.
//
// The capacity is the larger of the configured capacity and the number of
// keys in src. Without a WithComparer option the comparer of src is kept.
// WithReadOnly latches the copy after it has been filled.
func NewFrom[T any](src *Collection[T], opts ...Option) (*Collection[T], error) {
	if src == nil {
		return nil, nverrors.NewNilArgumentErr("collection")
	}

	config := orderedstore.NewConfigWithOptionsAndDefaults(opts...)
	if config.Comparer == nil {
		config.Comparer = src.store.Comparer()
	}
	config.Capacity = max(config.Capacity, genutil.MustEnsureUInt32(src.Count()))

	return Build(func(c *Collection[T]) error {
		return c.AddCollection(src)
	}, config.ToOption())
}

// Build creates a collection, fills it with the given function and, if the
// options ask for it, latches it read-only once fill has returned.
func Build[T any](fill func(c *Collection[T]) error, opts ...Option) (*Collection[T], error) {
	config := orderedstore.NewConfigWithOptionsAndDefaults(opts...)
	readOnly := config.ReadOnly

	c := New[T](config.ToOption(), WithReadOnly(false))
	if err := fill(c); err != nil {
		return nil, err
	}

	if readOnly {
		c.MakeReadOnly()
	}
	return c, nil
}

// invalidate marks both derived views as stale. Every mutation calls it once
// validation has passed and before the store is touched.
func (c *Collection[T]) invalidate() {
	c.keys.reset()
	c.values.reset()
}

func (c *Collection[T]) checkWritable(operation string) error {
	if c.store.IsReadOnly() {
		return nverrors.NewUnsupportedOperationErr(operation)
	}
	return nil
}

// Add appends the value to the list bound to key, creating the entry if the
// key is new. Re-adding an existing key does not move it. A nil value is
// never appended, so for a nillable T, Add(key, nil) behaves like AddKey.
func (c *Collection[T]) Add(key Key, value T) error {
	if err := c.checkWritable("add"); err != nil {
		return err
	}

	c.invalidate()
	return c.add(key, value, !isAbsent(value))
}

// AddKey ensures an entry exists for key without adding a value to it. A new
// key is bound to an empty list; an existing key is left untouched.
func (c *Collection[T]) AddKey(key Key) error {
	if err := c.checkWritable("add"); err != nil {
		return err
	}

	c.invalidate()
	var zero T
	return c.add(key, zero, false)
}

func (c *Collection[T]) add(key Key, value T, present bool) error {
	existing, ok := c.store.Get(key)
	if !ok {
		list := make([]T, 0, 1)
		if present {
			list = append(list, value)
		}
		return c.store.Add(key, list)
	}

	if !present {
		return nil
	}
	return c.store.Set(key, append(existing, value))
}

type snapshotEntry[T any] struct {
	key    Key
	values []T
}

// AddCollection adds every value of src to this collection, as if by calling
// Add for each key and value in order. Keys of src without values are added
// as empty entries. Lists of keys present in both collections accumulate.
func (c *Collection[T]) AddCollection(src *Collection[T]) error {
	if src == nil {
		return nverrors.NewNilArgumentErr("collection")
	}
	if err := c.checkWritable("add collection"); err != nil {
		return err
	}

	c.invalidate()

	// Snapshot first so that adding a collection to itself terminates.
	snapshot := make([]snapshotEntry[T], 0, src.Count())
	for i := range src.store.Len() {
		key, err := src.store.KeyAt(i)
		if err != nil {
			return err
		}
		values, err := src.store.GetAt(i)
		if err != nil {
			return err
		}
		snapshot = append(snapshot, snapshotEntry[T]{key: key, values: values})
	}

	var zero T
	for _, e := range snapshot {
		if len(e.values) == 0 {
			if err := c.add(e.key, zero, false); err != nil {
				return err
			}
			continue
		}

		for _, value := range e.values {
			if err := c.add(e.key, value, !isAbsent(value)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Set replaces the list bound to key with a list holding only value.
func (c *Collection[T]) Set(key Key, value T) error {
	if err := c.checkWritable("set"); err != nil {
		return err
	}

	c.invalidate()
	return c.store.Set(key, []T{value})
}

// SetValues replaces the list bound to key with a copy of values. An empty
// call leaves key bound to an empty list.
func (c *Collection[T]) SetValues(key Key, values ...T) error {
	if err := c.checkWritable("set"); err != nil {
		return err
	}

	c.invalidate()
	return c.store.Set(key, slicez.Clone(values))
}

// Remove deletes key and all of its values. Removing an absent key is a
// no-op. Like every other mutation, it fails on a read-only collection.
func (c *Collection[T]) Remove(key Key) error {
	if err := c.checkWritable("remove"); err != nil {
		return err
	}

	c.invalidate()
	return c.store.Remove(key)
}

// Clear removes every entry.
func (c *Collection[T]) Clear() error {
	if err := c.checkWritable("clear"); err != nil {
		return err
	}

	c.invalidate()
	return c.store.Clear()
}

// Get returns a copy of the values bound to key and whether the key exists.
// A key bound to an empty list returns a non-nil empty slice.
func (c *Collection[T]) Get(key Key) ([]T, bool) {
	values, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	return slicez.Clone(values), true
}

// GetAt returns a copy of the values of the entry at position index.
func (c *Collection[T]) GetAt(index int) ([]T, error) {
	values, err := c.store.GetAt(index)
	if err != nil {
		return nil, err
	}
	return slicez.Clone(values), nil
}

// KeyAt returns the key of the entry at position index.
func (c *Collection[T]) KeyAt(index int) (Key, error) {
	return c.store.KeyAt(index)
}

// Keys returns every key in insertion order.
//
// The slice is cached until the next mutation and must not be modified.
func (c *Collection[T]) Keys() []Key {
	return c.keys.get(func() []Key {
		keys := c.store.Keys()
		log.Trace().Int("keys", len(keys)).Msg("populated key cache")
		return keys
	})
}

// Values returns every value, key by key in the order of Keys and in
// insertion order within each key.
//
// The slice is cached until the next mutation and must not be modified.
func (c *Collection[T]) Values() []T {
	return c.values.get(func() []T {
		lists := make([][]T, 0, c.store.Len())
		for i := range c.store.Len() {
			values, err := c.store.GetAt(i)
			if err != nil {
				nverrors.MustPanic("store position %d vanished while flattening: %s", i, err)
			}
			lists = append(lists, values)
		}

		values := slicez.Flatten(lists...)
		log.Trace().Int("values", len(values)).Msg("populated value cache")
		return values
	})
}

// CopyTo copies the result of Values into dest, starting at index.
func (c *Collection[T]) CopyTo(dest []T, index int) error {
	if dest == nil {
		return nverrors.NewNilArgumentErr("dest")
	}

	values := c.Values()
	if err := checkCopy(len(dest), index, len(values)); err != nil {
		return err
	}

	copy(dest[index:], values)
	return nil
}

func checkCopy(destLen, index, count int) error {
	if index < 0 {
		return nverrors.NewNegativeIndexErr(index)
	}
	if destLen-index < count {
		return nverrors.NewInvalidArgumentErr("dest", nverrors.ReasonInsufficientSpace,
			"%d values do not fit in %d slots starting at index %d", count, destLen, index)
	}
	return nil
}

// HasKeys returns true if the collection holds at least one key, including
// keys bound to empty lists.
func (c *Collection[T]) HasKeys() bool { return c.store.HasKeys() }

// Has returns true if the key is found in the collection.
func (c *Collection[T]) Has(key Key) bool { return c.store.Has(key) }

// Count returns the number of keys.
func (c *Collection[T]) Count() int { return c.store.Len() }

// IsReadOnly returns true once the collection has been latched read-only.
func (c *Collection[T]) IsReadOnly() bool { return c.store.IsReadOnly() }

// IsFixedSize is always false: a collection is never fixed-size, only
// possibly read-only.
func (c *Collection[T]) IsFixedSize() bool { return false }

// MarshalZerologObject implements zerolog object marshalling.
func (c *Collection[T]) MarshalZerologObject(e *zerolog.Event) {
	valueCount := 0
	for i := range c.store.Len() {
		values, _ := c.store.GetAt(i)
		valueCount += len(values)
	}
	e.Int("keys", c.store.Len()).Int("values", valueCount).Bool("readOnly", c.store.IsReadOnly())
}
