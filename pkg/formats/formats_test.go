package formats

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryNames(t *testing.T) {
	require.Equal(t, []string{
		"yaz0", "yaz0le", "lz77", "blz77", "lzecd",
		"huff4", "huff4hi", "huff8", "applelzss",
	}, Default().Names())
}

// Every shipped codec must survive a round trip over a spread of inputs,
// including a second pass to catch any state leaking between calls.
func TestRegistryWideRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	noise := make([]byte, 2000)
	for i := range noise {
		noise[i] = byte(rng.Intn(20))
	}
	inputs := map[string][]byte{
		"single":   {0x00},
		"text":     []byte("all your container formats are belong to us"),
		"long run": bytes.Repeat([]byte{0xFF}, 700),
		"noise":    noise,
	}

	reg := Default()
	for _, name := range reg.Names() {
		c, ok := reg.Lookup(name)
		require.True(t, ok)
		for in, src := range inputs {
			t.Run(name+"/"+in, func(t *testing.T) {
				packed, err := c.Compress(nil, src)
				require.NoError(t, err)
				out, err := c.Decompress(nil, packed)
				require.NoError(t, err)
				require.Equal(t, src, out)

				repacked, err := c.Compress(nil, out)
				require.NoError(t, err)
				require.Equal(t, packed, repacked, "re-encoding must be deterministic")
			})
		}
	}
}

// Short inputs hit the awkward cases: empty, below minimum match length, and
// partially filled flag groups.
func TestRoundTripEveryLengthUpTo32(t *testing.T) {
	pattern := bytes.Repeat([]byte("abcab"), 7)
	reg := Default()
	for _, name := range reg.Names() {
		c, _ := reg.Lookup(name)
		t.Run(name, func(t *testing.T) {
			for n := 0; n <= 32; n++ {
				packed, err := c.Compress(nil, pattern[:n])
				require.NoError(t, err, "length %d", n)
				out, err := c.Decompress(nil, packed)
				require.NoError(t, err, "length %d", n)
				require.Equal(t, pattern[:n], out, "length %d", n)
			}
		})
	}
}

func TestDetectShippedFormats(t *testing.T) {
	reg := Default()
	src := []byte("detect me if you can, detect me if you can")

	for _, name := range []string{"yaz0", "lz77", "blz77", "lzecd", "huff4", "huff8"} {
		t.Run(name, func(t *testing.T) {
			c, ok := reg.Lookup(name)
			require.True(t, ok)
			packed, err := c.Compress(nil, src)
			require.NoError(t, err)

			got, ok := reg.Detect(packed)
			require.True(t, ok)
			require.Equal(t, c.Constants().Magic, got.Constants().Magic)
		})
	}

	_, ok := reg.Detect([]byte{0x00, 0x01, 0x02, 0x03})
	require.False(t, ok)
}
