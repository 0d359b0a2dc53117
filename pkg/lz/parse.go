package lz

import "fmt"

// Policy selects which token-selection strategy a codec binding uses. The
// set is closed on purpose: bindings pick a tag at construction instead of
// carrying an interface into the per-byte loops.
type Policy int

const (
	// Greedy commits the longest match at each position, with a one-step
	// lookahead guarded by the price model.
	Greedy Policy = iota

	// Optimal minimizes the total price of the token sequence with a
	// shortest-path search over byte offsets.
	Optimal
)

func (p Policy) String() string {
	switch p {
	case Greedy:
		return "greedy"
	case Optimal:
		return "optimal"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Parse tokenizes src with the given policy. The token sequence covers src
// exactly once, from offset 0 to its end, with no gaps or overlaps.
func Parse(policy Policy, src []byte, f *Finder, pricer PriceCalculator) []Token {
	switch policy {
	case Greedy:
		return ParseGreedy(src, f, pricer)
	case Optimal:
		return ParseOptimal(src, f, pricer)
	}
	panic("lz: unknown parser policy " + policy.String())
}
