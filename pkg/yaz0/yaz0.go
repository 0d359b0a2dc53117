// Package yaz0 implements the Nintendo Yaz0 run-length compression scheme:
// a 16-byte header followed by groups of eight MSB-first flag bits, where a
// set flag carries one raw byte and a clear flag a 12-bit displacement with
// a nibble-coded length (lengths of 0x12 and up spill into a third byte).
package yaz0

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/nitrotools/nitropack/pkg/codec"
	"github.com/nitrotools/nitropack/pkg/lz"
)

const (
	headerSize = 16
	windowSize = 0x1000
	minMatch   = 3
	maxMatch   = 0x111 // 0x12 + 0xFF, the three-byte encoding's ceiling
)

var magic = []byte("Yaz0")

var window = lz.Window{
	MinLength:       minMatch,
	MaxLength:       maxMatch,
	MaxDisplacement: windowSize,
}

// New returns the standard big-endian Yaz0 codec.
func New() codec.Codec {
	return build("yaz0", binary.BigEndian)
}

// NewLittleEndian returns the little-endian variant used by some ports. The
// body layout is identical; only the header length field flips.
func NewLittleEndian() codec.Codec {
	return build("yaz0le", binary.LittleEndian)
}

func build(name string, order binary.ByteOrder) codec.Codec {
	c, err := codec.NewBinding(name, codec.Constants{
		Magic:        magic,
		Window:       window,
		MaxInputSize: math.MaxInt32, // the header length field is 32 bits
		BigEndian:    order == binary.BigEndian,
	}, lz.Optimal, pricer{}, encoder{order: order}, decoder{order: order})
	if err != nil {
		panic(err)
	}
	return c
}

// pricer models the Yaz0 bit layout: a literal costs its flag bit plus the
// byte, a short match one flag plus two bytes, a long match one flag plus
// three.
type pricer struct{}

func (pricer) LiteralPrice(lz.Context) int { return 9 }

func (pricer) MatchPrice(m lz.Match, _ lz.Context) int {
	if m.Length >= 0x12 {
		return 25
	}
	return 17
}

type encoder struct {
	order binary.ByteOrder
}

func (e encoder) Encode(dst, src []byte, tokens []lz.Token) ([]byte, error) {
	dst = append(dst, magic...)
	var lenField [4]byte
	e.order.PutUint32(lenField[:], uint32(len(src)))
	dst = append(dst, lenField[:]...)
	dst = append(dst, make([]byte, 8)...) // reserved

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
				return dst, fmt.Errorf("yaz0: token %d/%d outside window", m.Displacement, m.Length)
			}
			d := m.Displacement - 1
			if m.Length >= 0x12 {
				payload = append(payload, byte(d>>8), byte(d), byte(m.Length-0x12))
			} else {
				payload = append(payload, byte((m.Length-2)<<4)|byte(d>>8), byte(d))
			}
		} else {
			flags |= 0x80 >> count
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
	order binary.ByteOrder
}

func (d decoder) Decode(dst, src []byte) ([]byte, error) {
	if len(src) < headerSize || !bytes.Equal(src[:4], magic) {
		return dst, fmt.Errorf("yaz0: %w", lz.ErrFormatMismatch)
	}
	size := int(d.order.Uint32(src[4:8]))

	ring := lz.NewRing(windowSize)
	pos := headerSize
	start := len(dst)

	// Production stops at the declared length, not at input exhaustion; a
	// trailing partial flag group is normal.
	for len(dst)-start < size {
		if pos >= len(src) {
			return dst, fmt.Errorf("yaz0: %w: truncated control data", lz.ErrCorruptStream)
		}
		flags := src[pos]
		pos++
		for bit := 0; bit < 8 && len(dst)-start < size; bit++ {
			if flags&0x80 != 0 {
				if pos >= len(src) {
					return dst, fmt.Errorf("yaz0: %w: truncated literal", lz.ErrCorruptStream)
				}
				b := src[pos]
				pos++
				dst = append(dst, b)
				ring.WriteByte(b)
			} else {
				if pos+2 > len(src) {
					return dst, fmt.Errorf("yaz0: %w: truncated back-reference", lz.ErrCorruptStream)
				}
				b1, b2 := src[pos], src[pos+1]
				pos += 2
				disp := (int(b1&0x0F)<<8 | int(b2)) + 1
				length := int(b1 >> 4)
				if length == 0 {
					// The length byte lives in the compressed stream, not
					// the decoded data.
					if pos >= len(src) {
						return dst, fmt.Errorf("yaz0: %w: truncated length byte", lz.ErrCorruptStream)
					}
					length = int(src[pos]) + 0x12
					pos++
				} else {
					length += 2
				}
				var err error
				dst, err = ring.Copy(dst, disp, length)
				if err != nil {
					return dst, fmt.Errorf("yaz0: %w", err)
				}
			}
			flags <<= 1
		}
	}
	if len(dst)-start > size {
		return dst, fmt.Errorf("yaz0: %w: output overruns declared length", lz.ErrCorruptStream)
	}
	return dst, nil
}
