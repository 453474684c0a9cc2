package orderedstore

import "strconv"

// Key names an entry in a Store. The zero Key is the null key, which is
// distinct from every named key, including Name("").
type Key struct {
	name  string
	named bool
}

// NullKey is the key that carries no name.
var NullKey = Key{}

// Name returns the key with the given name.
func Name(name string) Key {
	return Key{name: name, named: true}
}

// Names returns a key for each of the given names, in order.
func Names(names ...string) []Key {
	keys := make([]Key, 0, len(names))
	for _, name := range names {
		keys = append(keys, Name(name))
	}
	return keys
}

// IsNull returns true for the null key.
func (k Key) IsNull() bool { return !k.named }

// Name returns the name of the key, or the empty string for the null key.
func (k Key) Name() string { return k.name }

// String returns the name of the key. The null key renders as the empty
// string; use GoString to tell the two apart.
func (k Key) String() string { return k.name }

// GoString implements fmt.GoStringer.
func (k Key) GoString() string {
	if k.IsNull() {
		return "orderedstore.NullKey"
	}
	return "orderedstore.Name(" + strconv.Quote(k.name) + ")"
}
