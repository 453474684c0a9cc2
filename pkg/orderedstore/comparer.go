package orderedstore

import (
	"golang.org/x/text/cases"
)

// KeyComparer decides which key names refer to the same entry. Two names are
// the same key if and only if their normalized forms are equal.
type KeyComparer interface {
	// Normalize returns the canonical form of the name.
	Normalize(name string) string
}

// ComparerFunc adapts a function into a KeyComparer.
type ComparerFunc func(name string) string

// Normalize implements KeyComparer.
func (f ComparerFunc) Normalize(name string) string { return f(name) }

// Ordinal returns a comparer under which names are equal only when they are
// byte-for-byte identical.
func Ordinal() KeyComparer {
	return ComparerFunc(func(name string) string { return name })
}

// CaseInsensitive returns a comparer that applies Unicode simple case folding,
// so that "Content-Type", "content-type" and "CONTENT-TYPE" are one key.
func CaseInsensitive() KeyComparer {
	return &foldingComparer{caser: cases.Fold()}
}

type foldingComparer struct {
	caser cases.Caser
}

func (fc *foldingComparer) Normalize(name string) string {
	return fc.caser.String(name)
}
