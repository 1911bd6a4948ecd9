// Package list provides the ordered container used throughout the simulation:
// a doubly linked, indexable double-ended queue with structural cloning, a
// one-way immutability lock and restartable cursors.
//
// Index lookups walk from whichever end of the chain is nearer, so Get is
// O(n/2) in the worst case. Cursors hold their own position and are
// independent of each other; any structural change to the list after a
// cursor was reset invalidates that cursor rather than letting it walk a
// modified chain.
//
// Usage example:
//
//	l := list.Of(1, 2, 3)
//	c := l.Cursor()
//	for c.HasNext() {
//	        v, _ := c.Next()
//	        fmt.Println(v)
//	}
//	l.Lock()
//	if err := l.Add(4); errors.Is(err, list.ErrLocked) {
//	        // locked lists reject mutation
//	}
package list
