package namevalue

import (
	log "github.com/authzed/namevalue/internal/logging"
)

// MakeReadOnly latches the collection read-only. Reads keep working and
// return the same results; every mutation fails from then on.
func (c *Collection[T]) MakeReadOnly() {
	if c.store.IsReadOnly() {
		return
	}

	c.store.SetReadOnly()
	log.Debug().Object("collection", c).Msg("collection latched read-only")
}

// AsReadOnly returns a read-only *copy* of the collection. Later changes to
// the receiver do not show through.
func (c *Collection[T]) AsReadOnly() *Collection[T] {
	ro, err := NewFrom(c, WithReadOnly(true))
	if err != nil {
		panic(err)
	}
	return ro
}

// Clone returns a writable copy of the collection with the same comparer.
func (c *Collection[T]) Clone() *Collection[T] {
	cloned, err := NewFrom(c)
	if err != nil {
		panic(err)
	}
	return cloned
}
