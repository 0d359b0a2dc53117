package lz

// Context carries the run state a price calculator may charge for: several
// formats price the first token of a literal or match run differently from
// the tokens that continue it.
type Context struct {
	RunLength  int  // same-kind tokens emitted immediately before this one
	FirstInRun bool // true when this token opens a new run
}

// A PriceCalculator estimates the encoded cost of a token for one specific
// format. Implementations are stateless and safe for concurrent and
// redundant calls; the cost-minimizing parser queries them many times per
// position. Costs are in format units, normally bits.
type PriceCalculator interface {
	LiteralPrice(ctx Context) int
	MatchPrice(m Match, ctx Context) int
}

// FixedPricer charges flat per-token costs regardless of context. It fits
// formats whose flag and field widths never vary, such as the plain
// one-flag-bit LZSS layouts.
type FixedPricer struct {
	LiteralBits int
	MatchBits   int
}

func (p FixedPricer) LiteralPrice(Context) int { return p.LiteralBits }

func (p FixedPricer) MatchPrice(Match, Context) int { return p.MatchBits }
