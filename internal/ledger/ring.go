package ledger

// Ring is a fixed capacity buffer that keeps the most recently pushed
// values. Once full, every push evicts the oldest value.
type Ring[T any] struct {
	buf  []T
	head int
	n    int
}

func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity), head: -1}
}

func (r *Ring[T]) Push(v T) {
	r.head = (r.head + 1) % len(r.buf)
	r.buf[r.head] = v
	if r.n < len(r.buf) {
		r.n++
	}
}

func (r *Ring[T]) Len() int { return r.n }

// Items returns the buffered values, newest first.
func (r *Ring[T]) Items() []T {
	out := make([]T, r.n)
	for i := 0; i < r.n; i++ {
		out[i] = r.buf[(r.head-i+len(r.buf))%len(r.buf)]
	}
	return out
}
