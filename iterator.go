package deque

import (
	"fmt"

	"github.com/juju/errors"
)

// Iterator is a cursor over the logical indexes of a Deque. It holds a
// reference to the Deque but owns nothing, and copying an Iterator copies
// only the position.
//
// The zero Iterator is unbound and cannot be dereferenced. An Iterator
// dangles once its Deque reallocates or loses elements (a push past
// capacity, a pop, Clear or Assign); using it afterwards reads whatever now
// sits at its index.
type Iterator[T any] struct {
	d  *Deque[T]
	id int
}

// Begin returns an Iterator at the first element.
func (d *Deque[T]) Begin() Iterator[T] { return d.IterAt(0) }

// End returns an Iterator one past the last element. It is a loop bound and
// cannot be dereferenced.
func (d *Deque[T]) End() Iterator[T] { return d.IterAt(d.count) }

// IterAt returns an Iterator at logical index i. Any i is accepted; it is
// checked on dereference.
func (d *Deque[T]) IterAt(i int) Iterator[T] {
	return Iterator[T]{d: d, id: i}
}

// Bound reports whether the Iterator refers to a Deque.
func (it Iterator[T]) Bound() bool { return it.d != nil }

// Index returns the logical index the Iterator points at.
func (it Iterator[T]) Index() int { return it.id }

// Equal reports whether both Iterators refer to the same Deque and index.
func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.d == o.d && it.id == o.id
}

// Value returns the element under the Iterator.
func (it Iterator[T]) Value() (t T, err error) {
	p, err := it.Ref()
	if err != nil {
		return t, err
	}
	return *p, nil
}

// Set overwrites the element under the Iterator.
func (it Iterator[T]) Set(t T) error {
	p, err := it.Ref()
	if err != nil {
		return err
	}
	*p = t
	return nil
}

// Ref returns a pointer to the element under the Iterator. It returns
// ErrOutOfRange for an unbound Iterator or one outside [0, Len()).
func (it Iterator[T]) Ref() (*T, error) {
	if it.d == nil {
		return nil, errors.Annotate(ErrOutOfRange, "unbound iterator")
	}
	return it.d.Ref(it.id)
}

// Next moves to the following element and returns it.
func (it *Iterator[T]) Next() *Iterator[T] {
	it.id++
	return it
}

// Prev moves to the preceding element and returns it.
func (it *Iterator[T]) Prev() *Iterator[T] {
	it.id--
	return it
}

// PostNext moves to the following element and returns a copy of the
// Iterator from before the move.
func (it *Iterator[T]) PostNext() Iterator[T] {
	old := *it
	it.id++
	return old
}

// PostPrev moves to the preceding element and returns a copy of the
// Iterator from before the move.
func (it *Iterator[T]) PostPrev() Iterator[T] {
	old := *it
	it.id--
	return old
}

// Advance moves the Iterator by n positions, backwards if n is negative.
func (it *Iterator[T]) Advance(n int) *Iterator[T] {
	it.id += n
	return it
}

// Sub returns the distance from o to it, so that d.End().Sub(d.Begin()) is
// d.Len(). It panics if the Iterators refer to different Deques.
func (it Iterator[T]) Sub(o Iterator[T]) int {
	if it.d != o.d {
		panic(fmt.Sprintf("deque: subtracting iterators of different deques (%p, %p)", it.d, o.d))
	}
	return it.id - o.id
}
