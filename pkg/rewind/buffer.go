package rewind

import (
	"fmt"
	"iter"
	"math"
)

// MaxCapacity keeps enough cursor headroom that a rebase can never overflow.
const MaxCapacity = 1 << 32

// Cursors are rebased once the write cursor reaches this limit. The slack of
// MaxCapacity guarantees write never wraps between two rebases.
const cursorRebaseLimit = math.MaxUint64 - MaxCapacity

// Buffer is a fixed-capacity ring buffer with independent read and write
// cursors. The cursors count absolute items, not storage slots; the modulo
// conversion happens only when the backing slice is indexed. Consumed
// elements stay in storage until overwritten, which makes Rewind a plain
// cursor decrement. The buffer is not synchronized.
type Buffer[T any] struct {
	data     []T
	capacity int

	read  uint64
	write uint64
}

func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("capacity must be positive")
	}
	if capacity > MaxCapacity {
		panic(fmt.Sprintf("capacity %d exceeds limit %d", capacity, MaxCapacity))
	}
	return &Buffer[T]{
		data:     make([]T, 0, capacity),
		capacity: capacity,
	}
}

// NewFilled pre-populates every slot with fill. The buffer starts full.
func NewFilled[T any](capacity int, fill T) *Buffer[T] {
	b := New[T](capacity)
	for range capacity {
		b.Put(fill)
	}
	return b
}

func (b *Buffer[T]) Capacity() int {
	return b.capacity
}

func (b *Buffer[T]) Count() int {
	return int(b.write - b.read)
}

func (b *Buffer[T]) IsEmpty() bool {
	return b.write == b.read
}

func (b *Buffer[T]) IsFull() bool {
	return b.Count() == b.capacity
}

// CanRewind reports whether the slot behind the read cursor still holds the
// element last read. Once the buffer is full that slot is the next one to be
// overwritten, so rewinding is refused.
func (b *Buffer[T]) CanRewind() bool {
	return b.Count() < b.capacity && b.read > 0
}

// Put stores item at the write cursor. It returns false and leaves the
// buffer unchanged when the buffer is full.
func (b *Buffer[T]) Put(item T) bool {
	if b.IsFull() {
		return false
	}
	if b.write >= cursorRebaseLimit {
		b.rebase()
	}
	if len(b.data) < b.capacity {
		// Storage grows lazily; while growing the write slot is always
		// the append position.
		b.data = append(b.data, item)
	} else {
		b.data[b.write%uint64(b.capacity)] = item
	}
	b.write++
	return true
}

// Get returns the element at the read cursor and advances past it. The
// element remains in storage until a later Put claims its slot.
func (b *Buffer[T]) Get() (T, bool) {
	item, ok := b.Peek()
	if ok {
		b.read++
	}
	return item, ok
}

func (b *Buffer[T]) Peek() (T, bool) {
	var zero T
	if b.IsEmpty() {
		return zero, false
	}
	return b.data[b.read%uint64(b.capacity)], true
}

// Rewind steps the read cursor back by one, un-consuming the most recently
// read element. It returns false at the stream origin or when the element
// may already have been overwritten.
func (b *Buffer[T]) Rewind() bool {
	if !b.CanRewind() {
		return false
	}
	b.read--
	return true
}

// Discard resets both cursors and eagerly releases the stored elements. The
// backing array is kept for reuse.
func (b *Buffer[T]) Discard() {
	clear(b.data)
	b.data = b.data[:0]
	b.read = 0
	b.write = 0
}

// Drain returns a consuming iterator over the buffered elements in read
// order. Stopping early leaves the remainder buffered; draining again after
// exhaustion yields nothing unless elements were put in between.
func (b *Buffer[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := b.Get()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// rebase shifts both cursors down together, preserving Count and the read
// cursor's storage alignment. Runs inside Put, so callers never observe
// intermediate state.
func (b *Buffer[T]) rebase() {
	count := b.write - b.read
	b.read = uint64(b.capacity) + b.read%uint64(b.capacity)
	b.write = b.read + count
}
