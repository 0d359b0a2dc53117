package lz

import "fmt"

const (
	finderHashLen  = 3
	finderHashBits = 15
)

// Finder locates back-references in an input buffer, honoring the window of
// the format being encoded. It indexes the input incrementally with a hash
// chain over 3-byte prefixes, so the search only ever sees data before the
// queried position. A Finder is session-scoped: one per Compress call.
type Finder struct {
	src  []byte
	win  Window
	head []int32
	prev []int32
	next int // first position not yet indexed
}

// NewFinder prepares a match finder over src. The window must already have
// been validated by the codec binding.
func NewFinder(src []byte, win Window) *Finder {
	f := &Finder{
		src:  src,
		win:  win,
		head: make([]int32, 1<<finderHashBits),
		prev: make([]int32, len(src)),
	}
	for i := range f.head {
		f.head[i] = -1
	}
	return f
}

func (f *Finder) hash(pos int) uint32 {
	v := uint32(f.src[pos]) | uint32(f.src[pos+1])<<8 | uint32(f.src[pos+2])<<16
	return (v * 0x1e35a7bd) >> (32 - finderHashBits)
}

// index inserts every position before pos into the hash chain. Indexing is
// monotonic; asking for an earlier position is a no-op.
func (f *Finder) index(pos int) {
	for ; f.next < pos; f.next++ {
		if f.next+finderHashLen > len(f.src) {
			continue
		}
		h := f.hash(f.next)
		f.prev[f.next] = f.head[h]
		f.head[h] = int32(f.next)
	}
}

// AppendMatches appends the candidate matches at pos to dst, ordered by
// decreasing length and, within a length, by smallest displacement. It
// returns dst unchanged when no match of at least the window's minimum
// length starts at pos. A position outside [0, len(src)] is a programming
// error and panics.
func (f *Finder) AppendMatches(dst []Match, pos int) []Match {
	if pos < 0 || pos > len(f.src) {
		panic(fmt.Sprintf("lz: match search at position %d of %d bytes", pos, len(f.src)))
	}
	f.index(pos)

	// Matches that would overrun the input are truncated to what remains.
	limit := pos + f.win.MaxLength
	if limit > len(f.src) {
		limit = len(f.src)
	}
	if limit-pos < f.win.MinLength {
		return dst
	}

	base := len(dst)
	if f.win.MinLength < finderHashLen {
		dst = f.appendScan(dst, pos, limit)
	} else {
		dst = f.appendChained(dst, pos, limit)
	}

	// The walks above keep only strictly longer candidates, nearest first.
	// Reversing the appended run yields longest-first order, and for any
	// length the smallest viable displacement.
	for i, j := base, len(dst)-1; i < j; i, j = i+1, j-1 {
		dst[i], dst[j] = dst[j], dst[i]
	}
	return dst
}

func (f *Finder) appendChained(dst []Match, pos, limit int) []Match {
	if pos+finderHashLen > len(f.src) {
		return dst
	}
	unit := f.win.unit()
	best := 0
	for cand := f.head[f.hash(pos)]; cand >= 0; cand = f.prev[cand] {
		d := pos - int(cand)
		if d <= 0 {
			continue
		}
		if d > f.win.MaxDisplacement {
			break // chain positions only get older from here
		}
		if unit > 1 && d%unit != 0 {
			continue
		}
		n := matchLen(f.src, int(cand), pos, limit)
		if unit > 1 {
			n -= n % unit
		}
		if n >= f.win.MinLength && n > best {
			dst = append(dst, Match{Displacement: d, Length: n})
			best = n
			if pos+n == limit {
				break
			}
		}
	}
	return dst
}

// appendScan is the fallback for windows whose minimum length is below the
// hash width. The windows involved are small enough for a linear sweep.
func (f *Finder) appendScan(dst []Match, pos, limit int) []Match {
	unit := f.win.unit()
	maxDist := f.win.MaxDisplacement
	if maxDist > pos {
		maxDist = pos
	}
	best := 0
	for d := unit; d <= maxDist; d += unit {
		n := matchLen(f.src, pos-d, pos, limit)
		if unit > 1 {
			n -= n % unit
		}
		if n >= f.win.MinLength && n > best {
			dst = append(dst, Match{Displacement: d, Length: n})
			best = n
			if pos+n == limit {
				break
			}
		}
	}
	return dst
}

// matchLen counts how far the run at cand agrees with the run at pos. The
// comparison may run past pos itself; that is the usual self-overlapping
// case and replays correctly through the ring buffer.
func matchLen(src []byte, cand, pos, limit int) int {
	n := 0
	for pos+n < limit && src[cand+n] == src[pos+n] {
		n++
	}
	return n
}
