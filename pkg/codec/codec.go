// Package codec defines the codec-binding record that wires one match
// finder configuration, one parser policy, one price calculator and one
// encoder/decoder pair into a named compression format, plus the registry
// the CLI looks formats up in. Bindings hold no session state: many
// concurrent encode or decode calls may share one binding.
package codec

import (
	"fmt"

	"github.com/nitrotools/nitropack/pkg/lz"
)

// Constants are the published per-format invariants an integrator can
// validate against before attempting to encode.
type Constants struct {
	Magic        []byte    // leading signature bytes, nil when the format has none
	Window       lz.Window // match search constraints
	MaxInputSize int       // largest encodable input in bytes, 0 for unbounded
	BigEndian    bool      // byte order of multi-byte header fields
}

// A Codec turns raw bytes into one compressed layout and back. For every
// valid input, Decompress(Compress(src)) must reproduce src exactly.
type Codec interface {
	Name() string
	Constants() Constants

	// Compress appends the encoded form of src to dst.
	Compress(dst, src []byte) ([]byte, error)

	// Decompress appends the decoded form of src to dst.
	Decompress(dst, src []byte) ([]byte, error)
}

// An Encoder serializes a token sequence into its format's byte layout.
type Encoder interface {
	Encode(dst, src []byte, tokens []lz.Token) ([]byte, error)
}

// A Decoder parses its format's byte layout back into raw bytes.
type Decoder interface {
	Decode(dst, src []byte) ([]byte, error)
}

// Binding is the standard Codec built from the lz pipeline. It is immutable
// after construction.
type Binding struct {
	name   string
	consts Constants
	policy lz.Policy
	pricer lz.PriceCalculator
	enc    Encoder
	dec    Decoder
}

// NewBinding validates the configuration and builds a pipeline codec.
// Configuration problems surface here, never during encode or decode calls.
func NewBinding(name string, consts Constants, policy lz.Policy, pricer lz.PriceCalculator, enc Encoder, dec Decoder) (*Binding, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty codec name", lz.ErrInvalidConfig)
	}
	if pricer == nil || enc == nil || dec == nil {
		return nil, fmt.Errorf("%s: %w: binding is missing a component", name, lz.ErrInvalidConfig)
	}
	if err := consts.Window.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Binding{
		name:   name,
		consts: consts,
		policy: policy,
		pricer: pricer,
		enc:    enc,
		dec:    dec,
	}, nil
}

func (b *Binding) Name() string { return b.name }

func (b *Binding) Constants() Constants { return b.consts }

// Compress runs the encode pipeline: match search, token parsing under the
// binding's policy and price model, then format serialization. The input
// size is checked against the format's length-field capacity before any
// output is produced.
func (b *Binding) Compress(dst, src []byte) ([]byte, error) {
	if b.consts.MaxInputSize > 0 && len(src) > b.consts.MaxInputSize {
		return dst, fmt.Errorf("%s: %w: %d bytes, limit %d",
			b.name, lz.ErrInputTooLarge, len(src), b.consts.MaxInputSize)
	}
	finder := lz.NewFinder(src, b.consts.Window)
	tokens := lz.Parse(b.policy, src, finder, b.pricer)
	return b.enc.Encode(dst, src, tokens)
}

func (b *Binding) Decompress(dst, src []byte) ([]byte, error) {
	return b.dec.Decode(dst, src)
}
