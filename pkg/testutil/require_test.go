package testutil

import (
	"testing"

	"github.com/authzed/namevalue/pkg/orderedstore"
)

func TestRequireEqualEmptyNil(t *testing.T) {
	t.Parallel()
	RequireEqualEmptyNil(t, []int(nil), []int(nil))
	RequireEqualEmptyNil(t, []int(nil), []int{})
	RequireEqualEmptyNil(t, []int{}, []int(nil))
	RequireEqualEmptyNil(t, []int{}, []int{})
	RequireEqualEmptyNil(t, []orderedstore.Key{orderedstore.NullKey, orderedstore.Name("a")},
		[]orderedstore.Key{orderedstore.NullKey, orderedstore.Name("a")})
}
