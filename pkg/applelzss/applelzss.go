// Package applelzss exposes the Okumura-style LZSS codec used in Apple
// firmware images, as implemented by github.com/blacktop/lzss, under the
// standard codec interface. It exists to carry streams produced by foreign
// tools through the same registry as the native bindings; it has no framing
// of its own, so it cannot be auto-detected.
package applelzss

import (
	"github.com/blacktop/lzss"

	"github.com/nitrotools/nitropack/pkg/codec"
	"github.com/nitrotools/nitropack/pkg/lz"
)

type appleCodec struct{}

// New returns the applelzss codec.
func New() codec.Codec { return appleCodec{} }

func (appleCodec) Name() string { return "applelzss" }

func (appleCodec) Constants() codec.Constants {
	return codec.Constants{
		Window: lz.Window{MinLength: 3, MaxLength: 18, MaxDisplacement: 4096},
	}
}

func (appleCodec) Compress(dst, src []byte) ([]byte, error) {
	return append(dst, lzss.Compress(src)...), nil
}

func (appleCodec) Decompress(dst, src []byte) ([]byte, error) {
	return append(dst, lzss.Decompress(src)...), nil
}
