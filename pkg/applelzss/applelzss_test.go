package applelzss

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"text":     []byte("the firmware of theseus, rebuilt plank by plank"),
		"long run": bytes.Repeat([]byte{0x33}, 400),
		"periodic": bytes.Repeat([]byte("iBoot"), 100),
	}
	c := New()
	for name, src := range inputs {
		t.Run(name, func(t *testing.T) {
			packed, err := c.Compress(nil, src)
			require.NoError(t, err)

			out, err := c.Decompress(nil, packed)
			require.NoError(t, err)
			require.Equal(t, src, out)
		})
	}
}

func TestNoMagic(t *testing.T) {
	require.Empty(t, New().Constants().Magic, "raw LZSS streams carry no signature")
}
