package lz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// replay reconstructs the input a token sequence describes, resolving
// matches byte by byte so self-overlapping copies expand correctly.
func replay(t *testing.T, tokens []Token) []byte {
	t.Helper()
	var out []byte
	for _, tok := range tokens {
		if !tok.IsMatch() {
			out = append(out, tok.Lit)
			continue
		}
		m := tok.Match
		require.GreaterOrEqual(t, m.Displacement, 1)
		require.LessOrEqual(t, m.Displacement, len(out))
		for i := 0; i < m.Length; i++ {
			out = append(out, out[len(out)-m.Displacement])
		}
	}
	return out
}

func totalPrice(tokens []Token, pricer PriceCalculator) int {
	sum := 0
	for _, tok := range tokens {
		if tok.IsMatch() {
			sum += pricer.MatchPrice(tok.Match, Context{FirstInRun: true})
		} else {
			sum += pricer.LiteralPrice(Context{FirstInRun: true})
		}
	}
	return sum
}

func parserInputs() map[string][]byte {
	rng := rand.New(rand.NewSource(7))
	noise := make([]byte, 2048)
	for i := range noise {
		noise[i] = byte(rng.Intn(8)) // small alphabet so matches exist
	}
	run := make([]byte, 600)
	for i := range run {
		run[i] = 0xAA
	}
	return map[string][]byte{
		"empty":    nil,
		"single":   {0x42},
		"short":    []byte("ab"),
		"text":     []byte("the quick brown fox jumps over the quick brown dog"),
		"run":      run,
		"periodic": []byte("abcabcabcabcabcabcabcabcabcabc"),
		"noise":    noise,
	}
}

func TestParseCoversInputExactly(t *testing.T) {
	pricer := FixedPricer{LiteralBits: 9, MatchBits: 17}
	for name, src := range parserInputs() {
		for _, policy := range []Policy{Greedy, Optimal} {
			t.Run(policy.String()+"/"+name, func(t *testing.T) {
				tokens := Parse(policy, src, NewFinder(src, testWindow), pricer)
				got := replay(t, tokens)
				if len(src) == 0 {
					require.Empty(t, tokens)
					require.Empty(t, got)
					return
				}
				require.Equal(t, src, got)
			})
		}
	}
}

func TestParseHonorsWindowBounds(t *testing.T) {
	win := Window{MinLength: 3, MaxLength: 10, MaxDisplacement: 32}
	pricer := FixedPricer{LiteralBits: 9, MatchBits: 17}
	for name, src := range parserInputs() {
		for _, policy := range []Policy{Greedy, Optimal} {
			t.Run(policy.String()+"/"+name, func(t *testing.T) {
				tokens := Parse(policy, src, NewFinder(src, win), pricer)
				for _, tok := range tokens {
					if !tok.IsMatch() {
						continue
					}
					require.GreaterOrEqual(t, tok.Match.Length, win.MinLength)
					require.LessOrEqual(t, tok.Match.Length, win.MaxLength)
					require.GreaterOrEqual(t, tok.Match.Displacement, 1)
					require.LessOrEqual(t, tok.Match.Displacement, win.MaxDisplacement)
				}
				require.Equal(t, src, replay(t, tokens), "tokens must rebuild the input")
			})
		}
	}
}

func TestOptimalNeverWorseThanGreedy(t *testing.T) {
	pricer := FixedPricer{LiteralBits: 9, MatchBits: 17}
	for name, src := range parserInputs() {
		t.Run(name, func(t *testing.T) {
			greedy := ParseGreedy(src, NewFinder(src, testWindow), pricer)
			optimal := ParseOptimal(src, NewFinder(src, testWindow), pricer)
			require.LessOrEqual(t, totalPrice(optimal, pricer), totalPrice(greedy, pricer))
		})
	}
}

func TestParseBelowMinimumIsAllLiterals(t *testing.T) {
	src := []byte("ab") // one below MinLength, nothing can match
	for _, policy := range []Policy{Greedy, Optimal} {
		tokens := Parse(policy, src, NewFinder(src, testWindow), FixedPricer{9, 17})
		require.Len(t, tokens, 2)
		for _, tok := range tokens {
			require.False(t, tok.IsMatch())
		}
	}
}

func TestGreedyDemotesUnprofitableMatch(t *testing.T) {
	// With a match header so heavy that three literals are cheaper, the
	// only available 3-byte match must be demoted to literals.
	src := []byte("abcabc")
	tokens := ParseGreedy(src, NewFinder(src, testWindow), FixedPricer{LiteralBits: 8, MatchBits: 100})
	require.Len(t, tokens, 6)
	for _, tok := range tokens {
		require.False(t, tok.IsMatch())
	}
}

func TestOptimalPrefersCheaperTruncation(t *testing.T) {
	// Both parsers see the same matches; the shortest-path search may cut a
	// long match short when a later, longer match more than pays for it.
	// Whatever it picks, the sum must stay minimal for a brute reference on
	// a small input.
	src := []byte("xabcdexabcdyabcdeabcdy")
	pricer := FixedPricer{LiteralBits: 9, MatchBits: 17}
	optimal := ParseOptimal(src, NewFinder(src, testWindow), pricer)
	require.Equal(t, src, replay(t, optimal))
	require.LessOrEqual(t, totalPrice(optimal, pricer), totalPrice(
		ParseGreedy(src, NewFinder(src, testWindow), pricer), pricer))
}

func TestParsePanicsOnUnknownPolicy(t *testing.T) {
	require.Panics(t, func() {
		Parse(Policy(99), []byte("abc"), NewFinder([]byte("abc"), testWindow), FixedPricer{9, 17})
	})
}

func TestPolicyString(t *testing.T) {
	require.Equal(t, "greedy", Greedy.String())
	require.Equal(t, "optimal", Optimal.String())
	require.Equal(t, "policy(7)", Policy(7).String())
}
