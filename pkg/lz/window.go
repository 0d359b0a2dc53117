package lz

import "fmt"

// Window describes the search constraints of one format: how short and how
// long a match may be, how far back it may reach, and (for pixel or
// endian-aware codecs) the fixed unit size matches must be aligned to.
type Window struct {
	MinLength       int
	MaxLength       int
	MaxDisplacement int
	UnitSize        int // 0 or 1 searches raw bytes; >1 searches fixed-size units
}

// Validate checks the window constants. It is called once, when a codec
// binding is constructed.
func (w Window) Validate() error {
	if w.MinLength < 2 {
		return fmt.Errorf("%w: minimum match length %d, must be at least 2", ErrInvalidConfig, w.MinLength)
	}
	if w.MaxLength < w.MinLength {
		return fmt.Errorf("%w: maximum match length %d below minimum %d", ErrInvalidConfig, w.MaxLength, w.MinLength)
	}
	if w.MaxDisplacement < 1 {
		return fmt.Errorf("%w: maximum displacement %d, must be at least 1", ErrInvalidConfig, w.MaxDisplacement)
	}
	if w.UnitSize < 0 {
		return fmt.Errorf("%w: unit size %d", ErrInvalidConfig, w.UnitSize)
	}
	if u := w.unit(); u > 1 {
		if w.MinLength%u != 0 || w.MaxLength%u != 0 || w.MaxDisplacement%u != 0 {
			return fmt.Errorf("%w: window %d..%d/%d not aligned to unit size %d",
				ErrInvalidConfig, w.MinLength, w.MaxLength, w.MaxDisplacement, u)
		}
	}
	return nil
}

func (w Window) unit() int {
	if w.UnitSize > 1 {
		return w.UnitSize
	}
	return 1
}
