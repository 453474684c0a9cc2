// Package testutil implements various utilities to reduce boilerplate in unit
// tests a la testify.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/authzed/namevalue/pkg/orderedstore"
)

var keyComparer = cmp.Comparer(func(a, b orderedstore.Key) bool {
	return a.IsNull() == b.IsNull() && a.Name() == b.Name()
})

// RequireEqualEmptyNil is a version of require.Equal, but considers nil
// slices/maps to be equal to empty slices/maps.
func RequireEqualEmptyNil(t testing.TB, expected, actual any, msgAndArgs ...any) {
	t.Helper()
	opts := []cmp.Option{keyComparer, cmpopts.EquateEmpty()}
	msgAndArgs = append(msgAndArgs, cmp.Diff(expected, actual, opts...))
	require.Truef(t, cmp.Equal(expected, actual, opts...), "Should be equal", msgAndArgs...)
}
