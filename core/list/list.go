package list

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for any access, insertion or removal outside the list bounds.
	ErrOutOfRange = errors.New("index out of range")
	// ErrLocked is returned when a locked list is mutated.
	ErrLocked = errors.New("list is locked")
	// ErrCursorStale is returned by a cursor whose list changed structurally since its last reset.
	ErrCursorStale = errors.New("cursor invalidated by structural change")
)

type node[T any] struct {
	data T
	prev *node[T]
	next *node[T]
}

// List is a doubly linked sequence. The zero value is an empty, unlocked list.
type List[T any] struct {
	head    *node[T]
	tail    *node[T]
	size    int
	locked  bool
	version uint64
	cursor  *Cursor[T]
}

// New returns an empty list.
func New[T any]() *List[T] { return &List[T]{} }

// Of returns a list holding vals in order.
func Of[T any](vals ...T) *List[T] {
	l := New[T]()
	for _, v := range vals {
		l.pushBack(v)
	}
	return l
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.size }

// Get returns the element at index i.
func (l *List[T]) Get(i int) (T, error) {
	if i < 0 || i >= l.size {
		var zero T
		return zero, rangeError(i, l.size)
	}
	return l.nodeAt(i).data, nil
}

// Add appends v to the end of the list.
func (l *List[T]) Add(v T) error {
	if l.locked {
		return ErrLocked
	}
	l.pushBack(v)
	return nil
}

// Insert places v at index i so that a subsequent Get(i) returns v.
// Valid indexes are 0..Len() inclusive.
func (l *List[T]) Insert(i int, v T) error {
	if l.locked {
		return ErrLocked
	}
	if i < 0 || i > l.size {
		return rangeError(i, l.size)
	}
	if i == l.size {
		l.pushBack(v)
		return nil
	}
	at := l.nodeAt(i)
	n := &node[T]{data: v, prev: at.prev, next: at}
	if at.prev == nil {
		l.head = n
	} else {
		at.prev.next = n
	}
	at.prev = n
	l.size++
	l.version++
	return nil
}

// Remove unlinks the element at index i and returns it.
func (l *List[T]) Remove(i int) (T, error) {
	var zero T
	if l.locked {
		return zero, ErrLocked
	}
	if i < 0 || i >= l.size {
		return zero, rangeError(i, l.size)
	}
	n := l.nodeAt(i)
	if n.prev == nil {
		l.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		l.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
	l.size--
	l.version++
	return n.data, nil
}

// PopFront removes and returns the first element.
func (l *List[T]) PopFront() (T, error) { return l.Remove(0) }

// PeekFront returns the first element without removing it.
func (l *List[T]) PeekFront() (T, error) { return l.Get(0) }

// PopBack removes and returns the last element.
func (l *List[T]) PopBack() (T, error) { return l.Remove(l.size - 1) }

// PeekBack returns the last element without removing it.
func (l *List[T]) PeekBack() (T, error) { return l.Get(l.size - 1) }

// Lock makes the list read-only. Locking is permanent for this list; clones
// start unlocked.
func (l *List[T]) Lock() { l.locked = true }

// IsLocked reports whether the list rejects mutation.
func (l *List[T]) IsLocked() bool { return l.locked }

// Clone duplicates the node chain. Elements are copied by value, so pointer
// elements are shared with the original. The clone is never locked.
func (l *List[T]) Clone() *List[T] {
	c := New[T]()
	for n := l.head; n != nil; n = n.next {
		c.pushBack(n.data)
	}
	return c
}

// Append splices a clone of other after the receiver's tail.
func (l *List[T]) Append(other *List[T]) error {
	if l.locked {
		return ErrLocked
	}
	c := other.Clone()
	if c.size == 0 {
		return nil
	}
	if l.tail == nil {
		l.head = c.head
	} else {
		l.tail.next = c.head
		c.head.prev = l.tail
	}
	l.tail = c.tail
	l.size += c.size
	l.version++
	return nil
}

// Values returns the elements head to tail as a new slice.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.data)
	}
	return out
}

// Map applies fn to every element head to tail and returns the results as a
// new list. It does not touch any cursor of l.
func Map[T, U any](l *List[T], fn func(T) U) *List[U] {
	out := New[U]()
	for n := l.head; n != nil; n = n.next {
		out.pushBack(fn(n.data))
	}
	return out
}

func (l *List[T]) pushBack(v T) {
	n := &node[T]{data: v, prev: l.tail}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
	l.version++
}

// nodeAt walks from the nearer end. i must be in range.
func (l *List[T]) nodeAt(i int) *node[T] {
	if i < l.size/2 {
		n := l.head
		for j := 0; j < i; j++ {
			n = n.next
		}
		return n
	}
	n := l.tail
	for j := l.size - 1; j > i; j-- {
		n = n.prev
	}
	return n
}

func rangeError(i, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, size)
}
