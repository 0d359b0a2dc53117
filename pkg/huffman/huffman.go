// Package huffman implements the Nintendo Huffman scheme: a header byte of
// 0x20|depth and a 24-bit little-endian uncompressed length, a canonical
// code-length table, then symbol codes packed MSB-first into 32-bit
// little-endian words. Depth is 4 or 8 bits per symbol; at depth 4 the
// nibble order within each byte is configurable. The scheme is pure entropy
// coding, so it implements the codec interface directly instead of going
// through the LZ pipeline.
package huffman

import (
	"container/heap"
	"encoding/binary"
	"fmt"

	"github.com/nitrotools/nitropack/pkg/codec"
	"github.com/nitrotools/nitropack/pkg/lz"
)

const maxInput = 0xFFFFFF // the length field is 24 bits

// Codec is one Huffman variant. It holds only configuration and is safe to
// share across sessions.
type Codec struct {
	name      string
	depth     int
	highFirst bool
}

// New4 returns the 4-bit variant emitting each byte's low nibble first.
func New4() codec.Codec { return &Codec{name: "huff4", depth: 4} }

// New4HighFirst returns the 4-bit variant emitting high nibbles first.
func New4HighFirst() codec.Codec { return &Codec{name: "huff4hi", depth: 4, highFirst: true} }

// New8 returns the 8-bit variant.
func New8() codec.Codec { return &Codec{name: "huff8", depth: 8} }

func (c *Codec) Name() string { return c.name }

func (c *Codec) Constants() codec.Constants {
	return codec.Constants{
		Magic:        []byte{0x20 | byte(c.depth)},
		MaxInputSize: maxInput,
	}
}

func (c *Codec) Compress(dst, src []byte) ([]byte, error) {
	if len(src) > maxInput {
		return dst, fmt.Errorf("%s: %w: %d bytes, limit %d", c.name, lz.ErrInputTooLarge, len(src), maxInput)
	}
	var h [4]byte
	binary.LittleEndian.PutUint32(h[:], uint32(0x20|c.depth)|uint32(len(src))<<8)
	dst = append(dst, h[:]...)
	if len(src) == 0 {
		return dst, nil
	}

	units := c.split(src)
	freq := make([]int, 1<<c.depth)
	for _, u := range units {
		freq[u]++
	}
	lengths := codeLengths(freq)

	if c.depth == 4 {
		for i := 0; i < 16; i += 2 {
			dst = append(dst, byte(lengths[i])|byte(lengths[i+1])<<4)
		}
	} else {
		for _, l := range lengths {
			dst = append(dst, byte(l))
		}
	}

	codes := canonicalCodes(lengths)
	var bw bitWriter
	for _, u := range units {
		dst = bw.append(dst, codes[u], lengths[u])
	}
	return bw.flush(dst), nil
}

func (c *Codec) Decompress(dst, src []byte) ([]byte, error) {
	if len(src) < 4 || src[0] != 0x20|byte(c.depth) {
		return dst, fmt.Errorf("%s: %w", c.name, lz.ErrFormatMismatch)
	}
	size := int(binary.LittleEndian.Uint32(src[:4]) >> 8)
	if size == 0 {
		return dst, nil
	}

	nsym := 1 << c.depth
	pos := 4
	lengths := make([]int, nsym)
	if c.depth == 4 {
		if pos+8 > len(src) {
			return dst, fmt.Errorf("%s: %w: truncated code table", c.name, lz.ErrCorruptStream)
		}
		for i := 0; i < 8; i++ {
			lengths[2*i] = int(src[pos+i] & 0x0F)
			lengths[2*i+1] = int(src[pos+i] >> 4)
		}
		pos += 8
	} else {
		if pos+nsym > len(src) {
			return dst, fmt.Errorf("%s: %w: truncated code table", c.name, lz.ErrCorruptStream)
		}
		for i := 0; i < nsym; i++ {
			lengths[i] = int(src[pos+i])
		}
		pos += nsym
	}

	maxLen := 0
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen == 0 {
		return dst, fmt.Errorf("%s: %w: empty code table", c.name, lz.ErrCorruptStream)
	}
	firstCode := make([]uint64, maxLen+1)
	symsOf := make([][]int, maxLen+1)
	code := uint64(0)
	for l := 1; l <= maxLen; l++ {
		firstCode[l] = code
		for sym, sl := range lengths {
			if sl == l {
				symsOf[l] = append(symsOf[l], sym)
			}
		}
		code = (code + uint64(len(symsOf[l]))) << 1
	}

	nUnits := size
	if c.depth == 4 {
		nUnits = size * 2
	}
	units := make([]byte, 0, nUnits)
	br := bitReader{src: src[pos:]}
	for len(units) < nUnits {
		v, length := uint64(0), 0
		for {
			bit, ok := br.next()
			if !ok {
				return dst, fmt.Errorf("%s: %w: truncated bitstream", c.name, lz.ErrCorruptStream)
			}
			v = v<<1 | uint64(bit)
			length++
			if length > maxLen {
				return dst, fmt.Errorf("%s: %w: invalid symbol code", c.name, lz.ErrCorruptStream)
			}
			if idx := int(v) - int(firstCode[length]); idx >= 0 && idx < len(symsOf[length]) {
				units = append(units, byte(symsOf[length][idx]))
				break
			}
		}
	}
	return c.join(dst, units), nil
}

// split breaks src into coding units in emission order.
func (c *Codec) split(src []byte) []byte {
	if c.depth == 8 {
		return src
	}
	units := make([]byte, 0, len(src)*2)
	for _, b := range src {
		if c.highFirst {
			units = append(units, b>>4, b&0x0F)
		} else {
			units = append(units, b&0x0F, b>>4)
		}
	}
	return units
}

// join reassembles decoded units into bytes, inverting split.
func (c *Codec) join(dst []byte, units []byte) []byte {
	if c.depth == 8 {
		return append(dst, units...)
	}
	for i := 0; i < len(units); i += 2 {
		if c.highFirst {
			dst = append(dst, units[i]<<4|units[i+1])
		} else {
			dst = append(dst, units[i+1]<<4|units[i])
		}
	}
	return dst
}

// codeLengths computes Huffman code lengths for the non-zero frequencies.
// Fibonacci-skewed frequencies maximize depth; under the 24-bit input cap
// that is 33 bits at depth 8, so codes are carried in 64-bit values (the
// serialized length table fits in both variants regardless).
func codeLengths(freq []int) []int {
	lengths := make([]int, len(freq))
	var h nodeHeap
	for sym, f := range freq {
		if f > 0 {
			h = append(h, &node{freq: f, sym: sym, order: sym})
		}
	}
	if len(h) == 0 {
		return lengths
	}
	if len(h) == 1 {
		lengths[h[0].sym] = 1
		return lengths
	}
	heap.Init(&h)
	for h.Len() > 1 {
		a := heap.Pop(&h).(*node)
		b := heap.Pop(&h).(*node)
		order := a.order
		if b.order < order {
			order = b.order
		}
		heap.Push(&h, &node{freq: a.freq + b.freq, sym: -1, order: order, left: a, right: b})
	}

	type item struct {
		n     *node
		depth int
	}
	stack := []item{{h[0], 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.n.sym >= 0 {
			lengths[it.n.sym] = it.depth
			continue
		}
		stack = append(stack, item{it.n.left, it.depth + 1}, item{it.n.right, it.depth + 1})
	}
	return lengths
}

// canonicalCodes assigns the canonical code for each symbol: codes are
// sequential within a length, symbols ordered ascending.
func canonicalCodes(lengths []int) []uint64 {
	maxLen := 0
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	count := make([]int, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			count[l]++
		}
	}
	nextCode := make([]uint64, maxLen+1)
	code := uint64(0)
	for l := 1; l <= maxLen; l++ {
		nextCode[l] = code
		code = (code + uint64(count[l])) << 1
	}
	codes := make([]uint64, len(lengths))
	for sym, l := range lengths {
		if l > 0 {
			codes[sym] = nextCode[l]
			nextCode[l]++
		}
	}
	return codes
}

type node struct {
	freq  int
	sym   int // -1 for internal nodes
	order int // smallest symbol below this node, for deterministic ties
	left  *node
	right *node
}

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].order < h[j].order
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// bitWriter packs code bits MSB-first into 32-bit little-endian words.
type bitWriter struct {
	word uint32
	n    int
}

func (w *bitWriter) append(dst []byte, code uint64, length int) []byte {
	for i := length - 1; i >= 0; i-- {
		w.word |= uint32(code>>i&1) << (31 - w.n)
		w.n++
		if w.n == 32 {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], w.word)
			dst = append(dst, b[:]...)
			w.word, w.n = 0, 0
		}
	}
	return dst
}

func (w *bitWriter) flush(dst []byte) []byte {
	if w.n == 0 {
		return dst
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], w.word)
	w.word, w.n = 0, 0
	return append(dst, b[:]...)
}

type bitReader struct {
	src  []byte
	pos  int
	word uint32
	n    int
}

func (r *bitReader) next() (uint32, bool) {
	if r.n == 0 {
		if r.pos+4 > len(r.src) {
			return 0, false
		}
		r.word = binary.LittleEndian.Uint32(r.src[r.pos:])
		r.pos += 4
		r.n = 32
	}
	bit := r.word >> 31
	r.word <<= 1
	r.n--
	return bit, true
}
