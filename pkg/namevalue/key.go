package namevalue

import "github.com/authzed/namevalue/pkg/orderedstore"

// Key names an entry. The zero Key is the null key.
type Key = orderedstore.Key

// Option configures a Collection at construction.
type Option = orderedstore.ConfigOption

// NullKey is the key that carries no name. It is distinct from Name("").
var NullKey = orderedstore.NullKey

// Name returns the key with the given name.
func Name(name string) Key { return orderedstore.Name(name) }

// Names returns a key for each of the given names, in order.
func Names(names ...string) []Key { return orderedstore.Names(names...) }

var (
	// WithCapacity sets the number of keys to allocate room for.
	WithCapacity = orderedstore.WithCapacity

	// WithComparer sets the key comparer. The default is
	// orderedstore.CaseInsensitive.
	WithComparer = orderedstore.WithComparer

	// WithReadOnly builds the collection already latched read-only.
	WithReadOnly = orderedstore.WithReadOnly
)
