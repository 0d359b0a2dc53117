package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nitrotools/nitropack/pkg/lz"
)

// rawEncoder/rawDecoder form the simplest possible layout: literals only,
// copied verbatim. Enough to exercise the binding plumbing.
type rawEncoder struct{}

func (rawEncoder) Encode(dst, src []byte, tokens []lz.Token) ([]byte, error) {
	return append(dst, src...), nil
}

type rawDecoder struct{}

func (rawDecoder) Decode(dst, src []byte) ([]byte, error) {
	return append(dst, src...), nil
}

var rawWindow = lz.Window{MinLength: 3, MaxLength: 18, MaxDisplacement: 0x1000}

func newRawBinding(t *testing.T, name string, consts Constants) *Binding {
	t.Helper()
	b, err := NewBinding(name, consts, lz.Greedy, lz.FixedPricer{LiteralBits: 9, MatchBits: 17}, rawEncoder{}, rawDecoder{})
	require.NoError(t, err)
	return b
}

func TestNewBindingValidation(t *testing.T) {
	good := Constants{Window: rawWindow}
	pricer := lz.FixedPricer{LiteralBits: 9, MatchBits: 17}

	_, err := NewBinding("", good, lz.Greedy, pricer, rawEncoder{}, rawDecoder{})
	require.True(t, errors.Is(err, lz.ErrInvalidConfig))

	_, err = NewBinding("raw", good, lz.Greedy, nil, rawEncoder{}, rawDecoder{})
	require.True(t, errors.Is(err, lz.ErrInvalidConfig))

	_, err = NewBinding("raw", good, lz.Greedy, pricer, nil, rawDecoder{})
	require.True(t, errors.Is(err, lz.ErrInvalidConfig))

	_, err = NewBinding("raw", good, lz.Greedy, pricer, rawEncoder{}, nil)
	require.True(t, errors.Is(err, lz.ErrInvalidConfig))

	bad := Constants{Window: lz.Window{MinLength: 5, MaxLength: 4, MaxDisplacement: 16}}
	_, err = NewBinding("raw", bad, lz.Greedy, pricer, rawEncoder{}, rawDecoder{})
	require.True(t, errors.Is(err, lz.ErrInvalidConfig))
}

func TestBindingRejectsOversizedInput(t *testing.T) {
	b := newRawBinding(t, "raw", Constants{Window: rawWindow, MaxInputSize: 4})

	dst := []byte("keep")
	out, err := b.Compress(dst, []byte("hello"))
	require.True(t, errors.Is(err, lz.ErrInputTooLarge))
	require.Equal(t, dst, out, "no partial output on refusal")

	out, err = b.Compress(nil, []byte("four"))
	require.NoError(t, err)
	require.Equal(t, []byte("four"), out)
}

func TestBindingAppendsToDst(t *testing.T) {
	b := newRawBinding(t, "raw", Constants{Window: rawWindow})

	out, err := b.Compress([]byte("pre"), []byte("fix"))
	require.NoError(t, err)
	require.Equal(t, []byte("prefix"), out)

	out, err = b.Decompress([]byte("pre"), []byte("fix"))
	require.NoError(t, err)
	require.Equal(t, []byte("prefix"), out)
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	a := newRawBinding(t, "a", Constants{Window: rawWindow})
	b := newRawBinding(t, "b", Constants{Window: rawWindow})

	require.NoError(t, reg.Register(a))
	require.NoError(t, reg.Register(b))

	err := reg.Register(newRawBinding(t, "a", Constants{Window: rawWindow}))
	require.True(t, errors.Is(err, lz.ErrInvalidConfig))

	got, ok := reg.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "a", got.Name())

	_, ok = reg.Lookup("missing")
	require.False(t, ok)

	require.Equal(t, []string{"a", "b"}, reg.Names())
}

func TestRegistryNamesIsACopy(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(newRawBinding(t, "a", Constants{Window: rawWindow})))

	names := reg.Names()
	names[0] = "mutated"
	require.Equal(t, []string{"a"}, reg.Names())
}

func TestRegistryDetect(t *testing.T) {
	reg := NewRegistry()
	short := newRawBinding(t, "short", Constants{Magic: []byte("AB"), Window: rawWindow})
	long := newRawBinding(t, "long", Constants{Magic: []byte("ABCD"), Window: rawWindow})
	twin := newRawBinding(t, "twin", Constants{Magic: []byte("AB"), Window: rawWindow})
	blank := newRawBinding(t, "blank", Constants{Window: rawWindow})
	require.NoError(t, reg.Register(short))
	require.NoError(t, reg.Register(long))
	require.NoError(t, reg.Register(twin))
	require.NoError(t, reg.Register(blank))

	c, ok := reg.Detect([]byte("ABCDxxxx"))
	require.True(t, ok)
	require.Equal(t, "long", c.Name(), "longest signature wins")

	c, ok = reg.Detect([]byte("ABxx"))
	require.True(t, ok)
	require.Equal(t, "short", c.Name(), "first registration wins ties")

	_, ok = reg.Detect([]byte("zzzz"))
	require.False(t, ok)

	_, ok = reg.Detect([]byte("A"))
	require.False(t, ok, "truncated data never matches")
}

func TestStreamHelpers(t *testing.T) {
	b := newRawBinding(t, "raw", Constants{Window: rawWindow})
	src := []byte("stream me")

	var packed bytes.Buffer
	var calls int
	progress := Progress(func(done, total int) {
		calls++
		require.Equal(t, len(src), total)
	})
	require.NoError(t, CompressStream(b, bytes.NewReader(src), &packed, progress))
	require.Equal(t, src, packed.Bytes())
	require.Equal(t, 2, calls)

	var unpacked bytes.Buffer
	require.NoError(t, DecompressStream(b, bytes.NewReader(packed.Bytes()), &unpacked, nil))
	require.Equal(t, src, unpacked.Bytes())
}
