package orderedstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/authzed/namevalue/pkg/nverrors"
)

func TestStoreOperations(t *testing.T) {
	s := New[int]()
	require.Equal(t, 0, s.Len())
	require.False(t, s.HasKeys())
	require.False(t, s.IsReadOnly())

	require.NoError(t, s.Add(Name("first"), 1))
	require.NoError(t, s.Add(Name("second"), 2))
	require.NoError(t, s.Add(Name("third"), 3))

	require.Equal(t, 3, s.Len())
	require.True(t, s.HasKeys())
	require.Equal(t, Names("first", "second", "third"), s.Keys())

	found, ok := s.Get(Name("second"))
	require.True(t, ok)
	require.Equal(t, 2, found)

	_, ok = s.Get(Name("fourth"))
	require.False(t, ok)

	value, err := s.GetAt(2)
	require.NoError(t, err)
	require.Equal(t, 3, value)

	key, err := s.KeyAt(0)
	require.NoError(t, err)
	require.Equal(t, Name("first"), key)

	// Set keeps the position of an existing key.
	require.NoError(t, s.Set(Name("first"), 10))
	require.Equal(t, Names("first", "second", "third"), s.Keys())
	found, _ = s.Get(Name("first"))
	require.Equal(t, 10, found)

	// Set of an absent key appends.
	require.NoError(t, s.Set(Name("fourth"), 4))
	require.Equal(t, Names("first", "second", "third", "fourth"), s.Keys())

	require.NoError(t, s.SetAt(1, 20))
	found, _ = s.Get(Name("second"))
	require.Equal(t, 20, found)

	// Remove preserves the order of the remaining keys and their positions.
	require.NoError(t, s.Remove(Name("second")))
	require.Equal(t, Names("first", "third", "fourth"), s.Keys())
	value, err = s.GetAt(1)
	require.NoError(t, err)
	require.Equal(t, 3, value)
	found, ok = s.Get(Name("fourth"))
	require.True(t, ok)
	require.Equal(t, 4, found)

	// Removing an unknown key is a no-op.
	require.NoError(t, s.Remove(Name("unknown")))
	require.Equal(t, 3, s.Len())

	require.NoError(t, s.Clear())
	require.Equal(t, 0, s.Len())
	require.False(t, s.HasKeys())
	require.Empty(t, s.Keys())

	// The store is usable after a clear.
	require.NoError(t, s.Add(Name("first"), 1))
	require.Equal(t, Names("first"), s.Keys())
}

func TestStoreDuplicateAdd(t *testing.T) {
	s := New[string]()
	require.NoError(t, s.Add(Name("key"), "one"))

	err := s.Add(Name("KEY"), "two")
	ierr, ok := nverrors.AsInvalidArgumentErr(err)
	require.True(t, ok)
	require.Equal(t, nverrors.ReasonDuplicateKey, ierr.Reason())

	found, _ := s.Get(Name("key"))
	require.Equal(t, "one", found)
	require.Equal(t, 1, s.Len())
}

func TestStoreIndexBounds(t *testing.T) {
	s := New[int]()
	require.NoError(t, s.Add(Name("only"), 1))

	for _, index := range []int{-1, 1, 100} {
		_, err := s.GetAt(index)
		require.True(t, nverrors.IsIndexOutOfRangeErr(err), "index %d", index)

		_, err = s.KeyAt(index)
		require.True(t, nverrors.IsIndexOutOfRangeErr(err), "index %d", index)

		err = s.SetAt(index, 2)
		require.True(t, nverrors.IsIndexOutOfRangeErr(err), "index %d", index)
	}
}

func TestStoreNullKey(t *testing.T) {
	s := New[string]()
	require.NoError(t, s.Add(NullKey, "null"))
	require.NoError(t, s.Add(Name(""), "empty"))

	require.Equal(t, 2, s.Len())
	require.Equal(t, []Key{NullKey, Name("")}, s.Keys())

	found, ok := s.Get(NullKey)
	require.True(t, ok)
	require.Equal(t, "null", found)

	found, ok = s.Get(Name(""))
	require.True(t, ok)
	require.Equal(t, "empty", found)

	require.NoError(t, s.Remove(NullKey))
	require.False(t, s.Has(NullKey))
	require.True(t, s.Has(Name("")))
}

func TestStoreComparers(t *testing.T) {
	tests := []struct {
		name         string
		opts         []ConfigOption
		expectedKeys []Key
	}{
		{
			name:         "default is case-insensitive",
			expectedKeys: Names("Content-Type"),
		},
		{
			name:         "explicit case-insensitive",
			opts:         []ConfigOption{WithComparer(CaseInsensitive())},
			expectedKeys: Names("Content-Type"),
		},
		{
			name:         "ordinal",
			opts:         []ConfigOption{WithComparer(Ordinal())},
			expectedKeys: Names("Content-Type", "content-type", "CONTENT-TYPE"),
		},
		{
			name:         "custom lowercasing comparer",
			opts:         []ConfigOption{WithComparer(ComparerFunc(strings.ToLower))},
			expectedKeys: Names("Content-Type"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New[int](tc.opts...)
			for i, name := range []string{"Content-Type", "content-type", "CONTENT-TYPE"} {
				require.NoError(t, s.Set(Name(name), i))
			}
			require.Equal(t, tc.expectedKeys, s.Keys())
		})
	}
}

func TestCaseInsensitiveFoldsUnicode(t *testing.T) {
	s := New[int]()
	require.NoError(t, s.Add(Name("STRASSE"), 1))
	require.NoError(t, s.Set(Name("strasse"), 2))
	require.NoError(t, s.Set(Name("ΣΊΣΥΦΟΣ"), 3))

	found, ok := s.Get(Name("σίσυφος"))
	require.True(t, ok)
	require.Equal(t, 3, found)

	require.Equal(t, Names("STRASSE", "ΣΊΣΥΦΟΣ"), s.Keys())
}

func TestStoreReadOnly(t *testing.T) {
	s := New[int]()
	require.NoError(t, s.Add(Name("key"), 1))
	s.SetReadOnly()
	require.True(t, s.IsReadOnly())
	require.True(t, s.Config().ReadOnly)

	require.True(t, nverrors.IsReadOnlyErr(s.Add(Name("other"), 2)))
	require.True(t, nverrors.IsReadOnlyErr(s.Set(Name("key"), 2)))
	require.True(t, nverrors.IsReadOnlyErr(s.SetAt(0, 2)))
	require.True(t, nverrors.IsReadOnlyErr(s.Remove(Name("key"))))
	require.True(t, nverrors.IsReadOnlyErr(s.Clear()))

	found, ok := s.Get(Name("key"))
	require.True(t, ok)
	require.Equal(t, 1, found)
	require.Equal(t, 1, s.Len())
}

func TestStoreConfig(t *testing.T) {
	s := New[int](WithCapacity(16), WithComparer(Ordinal()), WithReadOnly(true))
	config := s.Config()
	require.Equal(t, uint32(16), config.Capacity)
	require.True(t, config.ReadOnly)
	require.True(t, s.IsReadOnly())
	require.NotNil(t, config.Comparer)
	require.Equal(t, "A", s.Comparer().Normalize("A"))

	copied := New[int](config.ToOption(), WithReadOnly(false))
	require.False(t, copied.IsReadOnly())
	require.Equal(t, uint32(16), copied.Config().Capacity)
	require.NoError(t, copied.Add(Name("a"), 1))
	require.NoError(t, copied.Add(Name("A"), 2))
	require.Equal(t, 2, copied.Len())
}

func TestKey(t *testing.T) {
	require.True(t, NullKey.IsNull())
	require.False(t, Name("").IsNull())
	require.NotEqual(t, NullKey, Name(""))
	require.Equal(t, "", NullKey.String())
	require.Equal(t, "accept", Name("accept").String())
	require.Equal(t, "orderedstore.NullKey", NullKey.GoString())
	require.Equal(t, `orderedstore.Name("accept")`, Name("accept").GoString())
	require.Equal(t, []Key{Name("a"), Name("b")}, Names("a", "b"))
}
