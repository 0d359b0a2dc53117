package lz

// ParseOptimal tokenizes src with the globally cheapest token sequence for
// the given price calculator. It is the classic shortest-path formulation:
// nodes are byte offsets 0..len(src), a literal is an edge of weight one
// offset, and every legal truncation of a candidate match is an edge of its
// length. The table is filled forward and the path rebuilt in one backward
// pass, so stack depth never depends on input size. Ties are broken in favor
// of the edge that advances furthest, then the smallest displacement.
func ParseOptimal(src []byte, f *Finder, pricer PriceCalculator) []Token {
	n := len(src)
	if n == 0 {
		return nil
	}

	const inf = int(^uint(0) >> 2)

	type arrival struct {
		from int
		m    Match // Length 0 marks a literal edge
	}
	cost := make([]int, n+1)
	arrive := make([]arrival, n+1)
	for i := 1; i <= n; i++ {
		cost[i] = inf
	}

	// The table carries no run state, so prices are charged as if every
	// token opened a run. All shipped calculators are context-free; see
	// DESIGN.md for the trade-off.
	ctx := Context{FirstInRun: true}

	relax := func(j, c int, a arrival) {
		if c > cost[j] {
			return
		}
		if c == cost[j] {
			cur := arrive[j]
			if j-a.from < j-cur.from {
				return
			}
			if j-a.from == j-cur.from && a.m.Displacement >= cur.m.Displacement {
				return
			}
		}
		cost[j] = c
		arrive[j] = a
	}

	unit := f.win.unit()
	var scratch []Match
	for i := 0; i < n; i++ {
		relax(i+1, cost[i]+pricer.LiteralPrice(ctx), arrival{from: i})

		scratch = f.AppendMatches(scratch[:0], i)
		for _, m := range scratch {
			for l := f.win.MinLength; l <= m.Length; l += unit {
				truncated := Match{Displacement: m.Displacement, Length: l}
				relax(i+l, cost[i]+pricer.MatchPrice(truncated, ctx), arrival{from: i, m: truncated})
			}
		}
	}

	// Backward reconstruction of the cheapest path.
	count := 0
	for j := n; j > 0; j = arrive[j].from {
		count++
	}
	tokens := make([]Token, count)
	for j := n; j > 0; j = arrive[j].from {
		count--
		a := arrive[j]
		if a.m.Length > 0 {
			tokens[count] = Reference(a.m)
		} else {
			tokens[count] = Literal(src[a.from])
		}
	}
	return tokens
}
