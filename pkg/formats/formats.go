// Package formats assembles the default codec registry from every shipped
// binding.
package formats

import (
	"github.com/nitrotools/nitropack/pkg/applelzss"
	"github.com/nitrotools/nitropack/pkg/codec"
	"github.com/nitrotools/nitropack/pkg/huffman"
	"github.com/nitrotools/nitropack/pkg/lz77"
	"github.com/nitrotools/nitropack/pkg/lzecd"
	"github.com/nitrotools/nitropack/pkg/yaz0"
)

// Default builds a registry holding all shipped codecs. Binding constants
// are fixed at compile time, so a registration failure is a bug.
func Default() *codec.Registry {
	r := codec.NewRegistry()
	for _, c := range []codec.Codec{
		yaz0.New(),
		yaz0.NewLittleEndian(),
		lz77.New(),
		lz77.NewBackward(),
		lzecd.New(),
		huffman.New4(),
		huffman.New4HighFirst(),
		huffman.New8(),
		applelzss.New(),
	} {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}
