// Package lzecd implements the ECD container variant: an "ECD1" signature
// and a 32-bit little-endian uncompressed length, then LSB-first flag bytes
// where a set flag carries one raw byte and a clear flag a two-byte
// back-reference with a 10-bit displacement and a 6-bit length.
package lzecd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/nitrotools/nitropack/pkg/codec"
	"github.com/nitrotools/nitropack/pkg/lz"
)

const (
	headerSize = 8
	windowSize = 0x400
	minMatch   = 3
	maxMatch   = 66 // 6-bit length field + minMatch
)

var magic = []byte("ECD1")

var window = lz.Window{
	MinLength:       minMatch,
	MaxLength:       maxMatch,
	MaxDisplacement: windowSize,
}

// New returns the ECD codec.
func New() codec.Codec {
	c, err := codec.NewBinding("lzecd", codec.Constants{
		Magic:        magic,
		Window:       window,
		MaxInputSize: math.MaxInt32,
	}, lz.Greedy, lz.FixedPricer{LiteralBits: 9, MatchBits: 17}, encoder{}, decoder{})
	if err != nil {
		panic(err)
	}
	return c
}

type encoder struct{}

func (encoder) Encode(dst, src []byte, tokens []lz.Token) ([]byte, error) {
	dst = append(dst, magic...)
	var lenField [4]byte
	binary.LittleEndian.PutUint32(lenField[:], uint32(len(src)))
	dst = append(dst, lenField[:]...)

	var (
		flags   byte
		mask    byte = 1
		payload []byte
	)
	flush := func() {
		if mask != 1 {
			dst = append(dst, flags)
			dst = append(dst, payload...)
			flags, mask, payload = 0, 1, payload[:0]
		}
	}
	for _, t := range tokens {
		if t.IsMatch() {
			m := t.Match
			if m.Length < minMatch || m.Length > maxMatch || m.Displacement < 1 || m.Displacement > windowSize {
				return dst, fmt.Errorf("lzecd: token %d/%d outside window", m.Displacement, m.Length)
			}
			d := m.Displacement - 1
			payload = append(payload, byte(d), byte(d>>8)<<6|byte(m.Length-minMatch))
		} else {
			flags |= mask
			payload = append(payload, t.Lit)
		}
		mask <<= 1
		if mask == 0 {
			mask = 1
			dst = append(dst, flags)
			dst = append(dst, payload...)
			flags, payload = 0, payload[:0]
		}
	}
	flush()
	return dst, nil
}

type decoder struct{}

func (decoder) Decode(dst, src []byte) ([]byte, error) {
	if len(src) < headerSize || !bytes.Equal(src[:4], magic) {
		return dst, fmt.Errorf("lzecd: %w", lz.ErrFormatMismatch)
	}
	size := int(binary.LittleEndian.Uint32(src[4:8]))

	ring := lz.NewRing(windowSize)
	pos := headerSize
	start := len(dst)

	for len(dst)-start < size {
		if pos >= len(src) {
			return dst, fmt.Errorf("lzecd: %w: truncated control data", lz.ErrCorruptStream)
		}
		flags := src[pos]
		pos++
		for mask := byte(1); mask != 0 && len(dst)-start < size; mask <<= 1 {
			if flags&mask != 0 {
				if pos >= len(src) {
					return dst, fmt.Errorf("lzecd: %w: truncated literal", lz.ErrCorruptStream)
				}
				b := src[pos]
				pos++
				dst = append(dst, b)
				ring.WriteByte(b)
			} else {
				if pos+2 > len(src) {
					return dst, fmt.Errorf("lzecd: %w: truncated back-reference", lz.ErrCorruptStream)
				}
				b1, b2 := src[pos], src[pos+1]
				pos += 2
				disp := (int(b2>>6)<<8 | int(b1)) + 1
				length := int(b2&0x3F) + minMatch
				var err error
				dst, err = ring.Copy(dst, disp, length)
				if err != nil {
					return dst, fmt.Errorf("lzecd: %w", err)
				}
			}
		}
	}
	if len(dst)-start > size {
		return dst, fmt.Errorf("lzecd: %w: output overruns declared length", lz.ErrCorruptStream)
	}
	return dst, nil
}
