package namevalue

// lazy holds a derived view that is either populated or stale.
type lazy[S any] struct {
	value     S
	populated bool
}

func (l *lazy[S]) get(fill func() S) S {
	if !l.populated {
		l.value = fill()
		l.populated = true
	}
	return l.value
}

func (l *lazy[S]) reset() {
	var zero S
	l.value = zero
	l.populated = false
}
