package genutil

import (
	"math"

	"github.com/ccoveille/go-safecast/v2"

	"github.com/authzed/namevalue/pkg/nverrors"
)

// MustEnsureUInt32 is a helper function that calls EnsureUInt32 and panics on error.
func MustEnsureUInt32(value int) uint32 {
	ret, err := EnsureUInt32(value)
	if err != nil {
		panic(err)
	}
	return ret
}

// EnsureUInt32 ensures that the specified value can be represented as a uint32.
func EnsureUInt32(value int) (uint32, error) {
	ret, err := safecast.Convert[uint32](value)
	if err != nil {
		return 0, nverrors.MustBugf("specified value %d cannot be represented as a uint32: %s", value, err)
	}
	return ret, nil
}

// ClampUInt32 converts the value to a uint32, saturating at zero and at
// math.MaxUint32. Used for capacity hints, where an exact value is not required.
func ClampUInt32(value int) uint32 {
	ret, err := safecast.Convert[uint32](value)
	if err == nil {
		return ret
	}
	if value < 0 {
		return 0
	}
	return math.MaxUint32
}
