// Package deque provides a generic double-ended queue over a growable
// circular buffer.
package deque

import (
	"iter"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("circdeque")

// Deque is a double-ended queue stored in a single circular buffer.
//
// Logical index i lives at physical index (front+i) % Cap(). The buffer only
// grows: pushing onto a full Deque reallocates to twice the capacity (or 1
// when the capacity is 0), copying the elements in logical order so that the
// front moves back to physical index 0. Popping and clearing never release
// storage.
//
// The zero value is an empty Deque with no storage, ready to use:
//
//	var d deque.Deque[int]
//	d.PushBack(1)
//
// A Deque is not safe for concurrent use.
type Deque[T any] struct {
	buf   []T
	count int
	front int
}

/*****************************************************************************
 * CONSTRUCTORS
 *****************************************************************************/

// New returns an empty Deque with no storage allocated.
func New[T any]() *Deque[T] {
	return &Deque[T]{}
}

// NewWithCapacity returns an empty Deque with room for capacity elements.
// It returns ErrInvalidArgument if capacity is negative.
func NewWithCapacity[T any](capacity int) (*Deque[T], error) {
	if capacity < 0 {
		return nil, errors.Annotatef(ErrInvalidArgument, "capacity %d", capacity)
	}
	d := &Deque[T]{}
	if capacity > 0 {
		d.buf = make([]T, capacity)
	}
	return d, nil
}

// Clone returns an independent copy of d with the same capacity, length and
// internal layout. Every slot of the buffer is copied, not only the live
// ones.
func (d *Deque[T]) Clone() *Deque[T] {
	if d.buf == nil {
		return &Deque[T]{}
	}
	buf := make([]T, len(d.buf))
	copy(buf, d.buf)
	return &Deque[T]{buf: buf, count: d.count, front: d.front}
}

// Assign replaces the contents of d with a copy of rhs's elements and
// returns d.
//
// The existing buffer is reused when it can hold rhs.Len() elements;
// otherwise d reallocates to exactly rhs.Len(). Elements are stored in logical
// order from physical index 0, whatever rhs's layout. Assigning an empty
// Deque keeps d's storage.
func (d *Deque[T]) Assign(rhs *Deque[T]) *Deque[T] {
	if d == rhs {
		return d
	}
	if rhs.count == 0 {
		d.count, d.front = 0, 0
		return d
	}
	if len(d.buf) < rhs.count {
		if logger.IsTraceEnabled() {
			logger.Tracef("assign reallocating from %d to %d slots", len(d.buf), rhs.count)
		}
		d.buf = make([]T, rhs.count)
	}
	rhs.copyTo(d.buf)
	d.count, d.front = rhs.count, 0
	return d
}

/*****************************************************************************
 * STATUS
 *****************************************************************************/

// Len returns the number of elements in the Deque, or 0 if d is nil.
func (d *Deque[T]) Len() int {
	if d == nil {
		return 0
	}
	return d.count
}

// Empty returns whether the Deque holds no elements.
func (d *Deque[T]) Empty() bool { return d.count == 0 }

// Cap returns the number of slots in the underlying buffer.
func (d *Deque[T]) Cap() int { return len(d.buf) }

// Layout is a snapshot of a Deque's internal bookkeeping, meant for
// diagnostics.
type Layout struct {
	Capacity int
	Count    int
	Front    int
}

// Layout reports the current capacity, length and physical front offset.
func (d *Deque[T]) Layout() Layout {
	return Layout{Capacity: len(d.buf), Count: d.count, Front: d.front}
}

/*****************************************************************************
 * ACCESS
 *****************************************************************************/

// Front returns the first element. It returns ErrOutOfRange if the Deque is
// empty.
func (d *Deque[T]) Front() (t T, err error) {
	return d.At(0)
}

// Back returns the last element. It returns ErrOutOfRange if the Deque is
// empty.
func (d *Deque[T]) Back() (t T, err error) {
	return d.At(d.count - 1)
}

// At returns the element at logical index i. It returns ErrOutOfRange unless
// 0 <= i < d.Len().
func (d *Deque[T]) At(i int) (t T, err error) {
	p, err := d.Ref(i)
	if err != nil {
		return t, err
	}
	return *p, nil
}

// SetFront overwrites the first element.
func (d *Deque[T]) SetFront(t T) error {
	return d.Set(0, t)
}

// SetBack overwrites the last element.
func (d *Deque[T]) SetBack(t T) error {
	return d.Set(d.count-1, t)
}

// Set overwrites the element at logical index i. It returns ErrOutOfRange
// unless 0 <= i < d.Len().
func (d *Deque[T]) Set(i int, t T) error {
	p, err := d.Ref(i)
	if err != nil {
		return err
	}
	*p = t
	return nil
}

// Ref returns a pointer to the slot holding logical index i. The pointer is
// only meaningful until the next call that reallocates or removes elements.
func (d *Deque[T]) Ref(i int) (*T, error) {
	if err := d.checkBounds(i); err != nil {
		return nil, err
	}
	return &d.buf[d.physical(i)], nil
}

/*****************************************************************************
 * INSERT
 *****************************************************************************/

// PushBack appends t after the last element, growing the buffer if it is
// full.
func (d *Deque[T]) PushBack(t T) {
	if d.count == len(d.buf) {
		d.Resize(0)
	}
	d.buf[d.physical(d.count)] = t
	d.count++
}

// PushFront inserts t before the first element, growing the buffer if it is
// full.
func (d *Deque[T]) PushFront(t T) {
	if d.count == len(d.buf) {
		d.Resize(0)
	}
	if d.count > 0 {
		// front-1 is negative when front is 0.
		d.front = (d.front - 1 + len(d.buf)) % len(d.buf)
	}
	d.buf[d.front] = t
	d.count++
}

/*****************************************************************************
 * REMOVE
 *****************************************************************************/

// PopBack removes the last element and returns it. It returns ErrOutOfRange
// if the Deque is empty. The slot is not zeroed and capacity is unchanged.
func (d *Deque[T]) PopBack() (t T, err error) {
	if t, err = d.Back(); err != nil {
		return t, errors.Annotate(err, "pop back")
	}
	d.count--
	return t, nil
}

// PopFront removes the first element and returns it. It returns
// ErrOutOfRange if the Deque is empty.
func (d *Deque[T]) PopFront() (t T, err error) {
	if t, err = d.Front(); err != nil {
		return t, errors.Annotate(err, "pop front")
	}
	d.front = (d.front + 1) % len(d.buf)
	d.count--
	return t, nil
}

// Clear empties the Deque in O(1). The buffer is kept, so pushing up to
// Cap() elements afterwards does not reallocate.
func (d *Deque[T]) Clear() { d.count, d.front = 0, 0 }

/*****************************************************************************
 * CAPACITY
 *****************************************************************************/

// Resize grows the buffer to newCap slots. If newCap <= 0 the capacity
// doubles, or becomes 1 if it was 0. Resize never shrinks: a newCap that
// does not exceed Cap() is a no-op.
//
// The elements are copied in logical order into a fresh buffer, which is
// only adopted once it is fully populated.
func (d *Deque[T]) Resize(newCap int) {
	if newCap <= 0 {
		newCap = max(1, 2*len(d.buf))
	}
	if newCap <= len(d.buf) {
		return
	}
	if logger.IsTraceEnabled() {
		logger.Tracef("growing from %d to %d slots with %d elements", len(d.buf), newCap, d.count)
	}

	newBuf := make([]T, newCap)
	d.copyTo(newBuf)

	d.buf = newBuf
	d.front = 0
}

/*****************************************************************************
 * SLICE API
 *****************************************************************************/

// Helper to copy contiguous runs instead of indexing slot by slot.
func (d *Deque[T]) slices() (a, b []T) {
	if d == nil || d.count == 0 {
		return nil, nil
	}
	end := d.front + d.count
	if end <= len(d.buf) {
		return d.buf[d.front:end], nil
	}
	return d.buf[d.front:], d.buf[:end-len(d.buf)]
}

// copyTo writes the elements in logical order to the start of dst, which
// must have room for d.count elements.
func (d *Deque[T]) copyTo(dst []T) {
	a, b := d.slices()
	n := copy(dst, a)
	copy(dst[n:], b)
}

// Slice returns a newly allocated slice holding the elements in logical
// order. It shares no memory with the Deque.
func (d *Deque[T]) Slice() []T {
	s := make([]T, d.Len())
	d.copyTo(s)
	return s
}

// Equal returns whether both Deques hold the same elements in the same
// logical order. Capacity and physical layout are ignored. Two nil Deques are
// equal, and a nil Deque equals an empty one. This must not be a method,
// otherwise Deque would be constrained to comparable elements.
func Equal[T comparable](d1, d2 *Deque[T]) bool {
	if d1.Len() != d2.Len() {
		return false
	}
	for i := range d1.Len() {
		if d1.buf[d1.physical(i)] != d2.buf[d2.physical(i)] {
			return false
		}
	}
	return true
}

/*****************************************************************************
 * ITER API
 *****************************************************************************/

// All returns an iterator over index-value pairs in logical order. It has the
// same semantics as slices.All. Modifying the Deque during iteration is not
// supported.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		a, b := d.slices()
		for i, t := range a {
			if !yield(i, t) {
				return
			}
		}
		for i, t := range b {
			if !yield(len(a)+i, t) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in logical order.
func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, t := range d.All() {
			if !yield(t) {
				return
			}
		}
	}
}

/*****************************************************************************
 * SENTINEL ERRORS
 *****************************************************************************/

const (
	// ErrInvalidArgument is returned when a Deque is constructed with a
	// negative capacity.
	ErrInvalidArgument = errors.ConstError("invalid argument")

	// ErrOutOfRange is returned when accessing, removing or dereferencing a
	// position that holds no element.
	ErrOutOfRange = errors.ConstError("out of range")
)

/*****************************************************************************
 * HELPERS
 *****************************************************************************/

// physical maps a logical index to its slot. The capacity must be nonzero.
func (d *Deque[T]) physical(id int) int {
	return (d.front + id) % len(d.buf)
}

func (d *Deque[T]) checkBounds(i int) error {
	if i < 0 || i >= d.Len() {
		return errors.Annotatef(ErrOutOfRange, "index %d with length %d", i, d.Len())
	}
	return nil
}
