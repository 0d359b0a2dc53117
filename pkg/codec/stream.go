package codec

import (
	"fmt"
	"io"
)

// Progress receives best-effort (bytes processed, bytes total) notifications
// at coarse intervals. It is never required for correctness and may be nil.
type Progress func(done, total int)

func (p Progress) report(done, total int) {
	if p != nil {
		p(done, total)
	}
}

// CompressStream reads r to exhaustion, compresses it with c and writes the
// result to w. The codec itself performs no I/O; sources and sinks stay the
// caller's concern.
func CompressStream(c Codec, r io.Reader, w io.Writer, progress Progress) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%s: reading input: %w", c.Name(), err)
	}
	progress.report(0, len(src))
	dst, err := c.Compress(nil, src)
	if err != nil {
		return err
	}
	progress.report(len(src), len(src))
	if _, err := w.Write(dst); err != nil {
		return fmt.Errorf("%s: writing output: %w", c.Name(), err)
	}
	return nil
}

// DecompressStream reads r to exhaustion, decodes it with c and writes the
// result to w.
func DecompressStream(c Codec, r io.Reader, w io.Writer, progress Progress) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%s: reading input: %w", c.Name(), err)
	}
	progress.report(0, len(src))
	dst, err := c.Decompress(nil, src)
	if err != nil {
		return err
	}
	progress.report(len(src), len(src))
	if _, err := w.Write(dst); err != nil {
		return fmt.Errorf("%s: writing output: %w", c.Name(), err)
	}
	return nil
}
