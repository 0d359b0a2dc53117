package codec

import (
	"bytes"
	"fmt"

	"github.com/nitrotools/nitropack/pkg/lz"
)

// Registry maps format names to codecs. It is assembled once at startup and
// read-only afterwards.
type Registry struct {
	codecs map[string]Codec
	names  []string
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register adds a codec under its own name. Duplicate names are a
// configuration error.
func (r *Registry) Register(c Codec) error {
	name := c.Name()
	if _, dup := r.codecs[name]; dup {
		return fmt.Errorf("%w: codec %q registered twice", lz.ErrInvalidConfig, name)
	}
	r.codecs[name] = c
	r.names = append(r.names, name)
	return nil
}

// Lookup returns the codec registered under name.
func (r *Registry) Lookup(name string) (Codec, bool) {
	c, ok := r.codecs[name]
	return c, ok
}

// Names lists the registered codecs in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Detect returns the codec whose magic signature prefixes data, preferring
// the longest signature when several match; among equal signatures the
// earliest registration wins. Codecs without a published magic cannot be
// detected.
func (r *Registry) Detect(data []byte) (Codec, bool) {
	var best Codec
	bestLen := 0
	for _, name := range r.names {
		c := r.codecs[name]
		magic := c.Constants().Magic
		if len(magic) == 0 || len(magic) <= bestLen {
			continue
		}
		if len(data) >= len(magic) && bytes.Equal(data[:len(magic)], magic) {
			best = c
			bestLen = len(magic)
		}
	}
	return best, best != nil
}
