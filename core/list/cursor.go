package list

import "fmt"

// Cursor is a restartable forward traversal over a List. Cursors are
// independent: any number may walk the same list at once.
type Cursor[T any] struct {
	list    *List[T]
	next    *node[T]
	version uint64
	read    int
}

// Cursor returns a new cursor positioned at the head of l.
func (l *List[T]) Cursor() *Cursor[T] {
	c := &Cursor[T]{list: l}
	c.Reset()
	return c
}

// Reset moves the cursor back to the head and re-arms it against the
// current shape of the list.
func (c *Cursor[T]) Reset() {
	c.next = c.list.head
	c.version = c.list.version
	c.read = 0
}

// HasNext reports whether Next would return an element.
func (c *Cursor[T]) HasNext() bool {
	return c.version == c.list.version && c.next != nil
}

// Next returns the element under the cursor and advances by one node.
func (c *Cursor[T]) Next() (T, error) {
	var zero T
	if c.version != c.list.version {
		return zero, ErrCursorStale
	}
	if c.next == nil {
		return zero, fmt.Errorf("%w: cursor exhausted after %d elements", ErrOutOfRange, c.read)
	}
	v := c.next.data
	c.next = c.next.next
	c.read++
	return v, nil
}

// ResetCursor rewinds the list's built-in cursor. It is a convenience for
// single-pass callers; concurrent passes should each take their own Cursor.
func (l *List[T]) ResetCursor() {
	if l.cursor == nil {
		l.cursor = &Cursor[T]{list: l}
	}
	l.cursor.Reset()
}

// CursorNext advances the built-in cursor. It fails with ErrCursorStale when
// ResetCursor was never called or the list changed since.
func (l *List[T]) CursorNext() (T, error) {
	if l.cursor == nil {
		var zero T
		return zero, fmt.Errorf("%w: cursor was never reset", ErrCursorStale)
	}
	return l.cursor.Next()
}
