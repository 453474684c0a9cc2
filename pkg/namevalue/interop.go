package namevalue

import (
	"maps"
	"net/http"
	"net/url"
	"slices"

	"github.com/authzed/namevalue/pkg/genutil"
)

// FromHeader builds a collection of the header fields. Go maps carry no
// order, so keys are added in sorted order; values keep their order.
func FromHeader(header http.Header, opts ...Option) *Collection[string] {
	return fromMap(header, opts)
}

// FromValues builds a collection of the query or form values. Keys are added
// in sorted order; values keep their order.
func FromValues(values url.Values, opts ...Option) *Collection[string] {
	return fromMap(values, opts)
}

func fromMap[M ~map[string][]string](m M, opts []Option) *Collection[string] {
	opts = append([]Option{WithCapacity(genutil.ClampUInt32(len(m)))}, opts...)
	c, err := Build(func(c *Collection[string]) error {
		for _, name := range slices.Sorted(maps.Keys(m)) {
			if err := c.AddKey(Name(name)); err != nil {
				return err
			}
			for _, value := range m[name] {
				if err := c.Add(Name(name), value); err != nil {
					return err
				}
			}
		}
		return nil
	}, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// ToHeader converts the collection into an http.Header. Keys are
// canonicalized; keys that collide after canonicalization are merged in
// collection order. The null key is skipped.
func ToHeader(c *Collection[string]) http.Header {
	header := make(http.Header, c.Count())
	toMap(c, header, http.CanonicalHeaderKey)
	return header
}

// ToValues converts the collection into url.Values. The null key is skipped.
func ToValues(c *Collection[string]) url.Values {
	values := make(url.Values, c.Count())
	toMap(c, values, func(name string) string { return name })
	return values
}

func toMap[M ~map[string][]string](c *Collection[string], m M, canonicalize func(string) string) {
	for i := range c.Count() {
		key, _ := c.KeyAt(i)
		if key.IsNull() {
			continue
		}

		name := canonicalize(key.Name())
		values, _ := c.store.GetAt(i)
		if _, ok := m[name]; !ok {
			m[name] = make([]string, 0, len(values))
		}
		m[name] = append(m[name], values...)
	}
}
