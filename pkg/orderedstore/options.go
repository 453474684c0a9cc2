package orderedstore

//go:generate go run github.com/ecordell/optgen -output zz_generated.options.go . Config

// Config holds the construction options of a Store.
type Config struct {
	// Capacity is a hint for the number of keys the store will hold.
	Capacity uint32 `default:"0"`

	// Comparer decides key equality. Nil selects CaseInsensitive.
	Comparer KeyComparer

	// ReadOnly latches the store as read-only from construction.
	ReadOnly bool `default:"false"`
}

func (c *Config) comparer() KeyComparer {
	if c.Comparer == nil {
		c.Comparer = CaseInsensitive()
	}
	return c.Comparer
}
