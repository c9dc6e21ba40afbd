package rewind

// Queue is the contract for a fixed-capacity queue that rejects writes when
// full and reports reads that find nothing.
type Queue[T any] interface {
	Put(item T) bool
	Get() (T, bool)
	IsFull() bool
	IsEmpty() bool
}

var _ Queue[int] = (*Buffer[int])(nil)
