package lz

import "fmt"

// Ring is the sliding-window replay buffer used while decoding. It records
// the most recent bytes of output and can replay a run from displacement
// positions back. One Ring is created per decode session with the format's
// window capacity and discarded afterwards.
type Ring struct {
	data    []byte
	cursor  int
	written int
}

// NewRing allocates a replay buffer. Capacity comes from a format constant;
// a non-positive value is a programming error.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		panic(fmt.Sprintf("lz: ring capacity %d", capacity))
	}
	return &Ring{data: make([]byte, capacity)}
}

// WriteByte records one decoded byte, overwriting the oldest byte once the
// capacity is exceeded.
func (r *Ring) WriteByte(b byte) {
	r.data[r.cursor] = b
	r.cursor++
	if r.cursor == len(r.data) {
		r.cursor = 0
	}
	r.written++
}

// Written reports how many bytes have ever been written to the ring.
func (r *Ring) Written() int {
	return r.written
}

// Copy replays length bytes starting displacement positions behind the write
// cursor, appending each byte to both dst and the ring itself. The copy is
// strictly byte-by-byte: when length exceeds displacement, later iterations
// must see the bytes written by earlier ones, which is how run-length
// expansion through a short back-reference works. A displacement beyond the
// bytes actually written, or beyond the ring's capacity, is a corrupt
// stream.
func (r *Ring) Copy(dst []byte, displacement, length int) ([]byte, error) {
	if displacement < 1 || displacement > r.written || displacement > len(r.data) {
		return dst, fmt.Errorf("%w: displacement %d with %d bytes of history",
			ErrCorruptStream, displacement, r.written)
	}
	for i := 0; i < length; i++ {
		pos := r.cursor - displacement
		if pos < 0 {
			pos += len(r.data)
		}
		b := r.data[pos]
		dst = append(dst, b)
		r.WriteByte(b)
	}
	return dst, nil
}
