package namevalue

import (
	"fmt"

	"github.com/authzed/namevalue/pkg/nverrors"
)

// Dictionary is an untyped key to value(s) contract, for code that consumes
// dictionaries without knowing the element type.
type Dictionary interface {
	// Contains returns true if the key is present. Keys of unsupported types
	// are never present.
	Contains(key any) bool

	// Add adds a value under the key.
	Add(key, value any) error

	// Get returns the values bound to the key.
	Get(key any) (any, bool)

	// Set replaces the values bound to the key.
	Set(key, value any) error

	// Remove deletes the key and its values.
	Remove(key any) error

	// Enumerator returns a cursor over every key and value pair.
	Enumerator() Enumerator

	// CopyTo copies every value into dest, starting at index.
	CopyTo(dest any, index int) error

	// Len returns the number of keys.
	Len() int

	IsReadOnly() bool
	IsFixedSize() bool
}

// DictionaryView exposes a Collection through the Dictionary interface. It
// holds no storage of its own.
//
// Keys may be a Key, a string, a *string, or nil for the null key. Values
// must be of type T; nil is accepted only when T can be nil (pointer, map,
// slice, channel, function or interface types), where it stands for the
// absent value.
type DictionaryView[T any] struct {
	c *Collection[T]
}

var _ Dictionary = (*DictionaryView[string])(nil)

// Dictionary returns a Dictionary view over the collection.
func (c *Collection[T]) Dictionary() *DictionaryView[T] {
	return &DictionaryView[T]{c: c}
}

// Contains implements Dictionary.
func (d *DictionaryView[T]) Contains(key any) bool {
	k, ok := toKey(key)
	if !ok {
		return false
	}
	return d.c.Has(k)
}

// Add implements Dictionary. A nil value creates the entry without adding
// a value, like AddKey.
func (d *DictionaryView[T]) Add(key, value any) error {
	k, err := checkKey(key)
	if err != nil {
		return err
	}

	typed, present, err := toValue[T](value)
	if err != nil {
		return err
	}

	if !present {
		return d.c.AddKey(k)
	}
	return d.c.Add(k, typed)
}

// Get implements Dictionary. The returned value is a []T.
func (d *DictionaryView[T]) Get(key any) (any, bool) {
	k, ok := toKey(key)
	if !ok {
		return nil, false
	}

	values, ok := d.c.Get(k)
	if !ok {
		return nil, false
	}
	return values, true
}

// Set implements Dictionary. A []T replaces the whole list; any other value
// replaces it with a single value. A nil value stores the zero
// value.
func (d *DictionaryView[T]) Set(key, value any) error {
	k, err := checkKey(key)
	if err != nil {
		return err
	}

	if values, ok := value.([]T); ok {
		return d.c.SetValues(k, values...)
	}

	typed, _, err := toValue[T](value)
	if err != nil {
		return err
	}
	return d.c.Set(k, typed)
}

// Remove implements Dictionary.
func (d *DictionaryView[T]) Remove(key any) error {
	k, err := checkKey(key)
	if err != nil {
		return err
	}
	return d.c.Remove(k)
}

// Enumerator implements Dictionary. A key bound to N values yields N entries.
func (d *DictionaryView[T]) Enumerator() Enumerator {
	return d.c.Enumerator()
}

// CopyTo implements Dictionary. The destination must be a []T or a []any.
func (d *DictionaryView[T]) CopyTo(dest any, index int) error {
	switch typed := dest.(type) {
	case nil:
		return nverrors.NewNilArgumentErr("dest")

	case []T:
		return d.c.CopyTo(typed, index)

	case []any:
		if typed == nil {
			return nverrors.NewNilArgumentErr("dest")
		}

		values := d.c.Values()
		if err := checkCopy(len(typed), index, len(values)); err != nil {
			return err
		}
		for i, value := range values {
			typed[index+i] = value
		}
		return nil

	case [][]T, [][]any:
		return nverrors.NewInvalidArgumentErr("dest", nverrors.ReasonNotFlat,
			"destination of type %T is not one-dimensional", dest)

	default:
		return nverrors.NewInvalidArgumentErr("dest", nverrors.ReasonInvalidValue,
			"cannot copy values of type %s into %T", typeName[T](), dest)
	}
}

// Len implements Dictionary.
func (d *DictionaryView[T]) Len() int { return d.c.Count() }

// IsReadOnly implements Dictionary.
func (d *DictionaryView[T]) IsReadOnly() bool { return d.c.IsReadOnly() }

// IsFixedSize implements Dictionary.
func (d *DictionaryView[T]) IsFixedSize() bool { return d.c.IsFixedSize() }

func toKey(key any) (Key, bool) {
	switch k := key.(type) {
	case nil:
		return NullKey, true
	case Key:
		return k, true
	case string:
		return Name(k), true
	case *string:
		if k == nil {
			return NullKey, true
		}
		return Name(*k), true
	default:
		return NullKey, false
	}
}

func checkKey(key any) (Key, error) {
	k, ok := toKey(key)
	if !ok {
		return NullKey, nverrors.NewInvalidArgumentErr("key", nverrors.ReasonInvalidKey,
			"expected a string key, got %T", key)
	}
	return k, nil
}

// toValue converts an untyped value into a T. The boolean is false when the
// value is nil and T can represent nil.
func toValue[T any](value any) (T, bool, error) {
	var zero T
	if value == nil {
		if nillable[T]() {
			return zero, false, nil
		}
		return zero, false, nverrors.NewInvalidArgumentErr("value", nverrors.ReasonInvalidValue,
			"nil is not a valid %s", typeName[T]())
	}

	typed, ok := value.(T)
	if !ok {
		return zero, false, nverrors.NewInvalidArgumentErr("value", nverrors.ReasonInvalidValue,
			"expected a value of type %s, got %T", typeName[T](), value)
	}
	return typed, true, nil
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
