// Package lz77 implements two flag-byte LZ77 layouts sharing one token
// format: a type byte and a 24-bit little-endian uncompressed length,
// followed by MSB-first flag groups where a set flag introduces a two-byte
// back-reference (length nibble, 12-bit displacement) and a clear flag one
// raw byte. The forward variant streams the input as-is; the backward
// variant runs the same pipeline over the reversed input, so references
// point at data that follows them in the original orientation.
package lz77

import (
	"encoding/binary"
	"fmt"

	"github.com/nitrotools/nitropack/pkg/codec"
	"github.com/nitrotools/nitropack/pkg/lz"
)

const (
	typeForward  = 0x10
	typeBackward = 0xB0

	headerSize = 4
	windowSize = 0x1000
	minMatch   = 3
	maxMatch   = 18     // 4-bit length field + minMatch
	maxInput   = 0xFFFFFF // the length field is 24 bits
)

var window = lz.Window{
	MinLength:       minMatch,
	MaxLength:       maxMatch,
	MaxDisplacement: windowSize,
}

// New returns the forward variant.
func New() codec.Codec {
	c, err := codec.NewBinding("lz77", constants(typeForward),
		lz.Optimal, lz.FixedPricer{LiteralBits: 9, MatchBits: 17},
		encoder{typ: typeForward}, decoder{typ: typeForward})
	if err != nil {
		panic(err)
	}
	return c
}

// NewBackward returns the backward variant.
func NewBackward() codec.Codec {
	c, err := codec.NewBinding("blz77", constants(typeBackward),
		lz.Greedy, lz.FixedPricer{LiteralBits: 9, MatchBits: 17},
		encoder{typ: typeBackward}, decoder{typ: typeBackward})
	if err != nil {
		panic(err)
	}
	return &backward{inner: c}
}

func constants(typ byte) codec.Constants {
	return codec.Constants{
		Magic:        []byte{typ},
		Window:       window,
		MaxInputSize: maxInput,
	}
}

// backward wraps the pipeline binding with the orientation flip.
type backward struct {
	inner *codec.Binding
}

func (b *backward) Name() string { return b.inner.Name() }

func (b *backward) Constants() codec.Constants { return b.inner.Constants() }

func (b *backward) Compress(dst, src []byte) ([]byte, error) {
	rev := make([]byte, len(src))
	for i, c := range src {
		rev[len(src)-1-i] = c
	}
	return b.inner.Compress(dst, rev)
}

func (b *backward) Decompress(dst, src []byte) ([]byte, error) {
	start := len(dst)
	dst, err := b.inner.Decompress(dst, src)
	if err != nil {
		return dst, err
	}
	out := dst[start:]
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return dst, nil
}

type encoder struct {
	typ byte
}

func (e encoder) Encode(dst, src []byte, tokens []lz.Token) ([]byte, error) {
	var h [4]byte
	binary.LittleEndian.PutUint32(h[:], uint32(e.typ)|uint32(len(src))<<8)
	dst = append(dst, h[:]...)

	var (
		flags   byte
		count   int
		payload []byte
	)
	flush := func() {
		if count > 0 {
			dst = append(dst, flags)
			dst = append(dst, payload...)
			flags, count, payload = 0, 0, payload[:0]
		}
	}
	for _, t := range tokens {
		if t.IsMatch() {
			m := t.Match
			if m.Length < minMatch || m.Length > maxMatch || m.Displacement < 1 || m.Displacement > windowSize {
				return dst, fmt.Errorf("lz77: token %d/%d outside window", m.Displacement, m.Length)
			}
			d := m.Displacement - 1
			flags |= 0x80 >> count
			payload = append(payload, byte((m.Length-minMatch)<<4)|byte(d>>8), byte(d))
		} else {
			payload = append(payload, t.Lit)
		}
		count++
		if count == 8 {
			flush()
		}
	}
	flush()
	return dst, nil
}

type decoder struct {
	typ byte
}

func (d decoder) Decode(dst, src []byte) ([]byte, error) {
	if len(src) < headerSize || src[0] != d.typ {
		return dst, fmt.Errorf("lz77: %w", lz.ErrFormatMismatch)
	}
	size := int(binary.LittleEndian.Uint32(src[:4]) >> 8)

	ring := lz.NewRing(windowSize)
	pos := headerSize
	start := len(dst)

	for len(dst)-start < size {
		if pos >= len(src) {
			return dst, fmt.Errorf("lz77: %w: truncated control data", lz.ErrCorruptStream)
		}
		flags := src[pos]
		pos++
		for bit := 0; bit < 8 && len(dst)-start < size; bit++ {
			if flags&0x80 != 0 {
				if pos+2 > len(src) {
					return dst, fmt.Errorf("lz77: %w: truncated back-reference", lz.ErrCorruptStream)
				}
				b1, b2 := src[pos], src[pos+1]
				pos += 2
				length := int(b1>>4) + minMatch
				disp := (int(b1&0x0F)<<8 | int(b2)) + 1
				var err error
				dst, err = ring.Copy(dst, disp, length)
				if err != nil {
					return dst, fmt.Errorf("lz77: %w", err)
				}
			} else {
				if pos >= len(src) {
					return dst, fmt.Errorf("lz77: %w: truncated literal", lz.ErrCorruptStream)
				}
				b := src[pos]
				pos++
				dst = append(dst, b)
				ring.WriteByte(b)
			}
			flags <<= 1
		}
	}
	if len(dst)-start > size {
		return dst, fmt.Errorf("lz77: %w: output overruns declared length", lz.ErrCorruptStream)
	}
	return dst, nil
}
