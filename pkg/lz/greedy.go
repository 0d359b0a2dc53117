package lz

// ParseGreedy tokenizes src by committing the longest match at each
// position, with two escape hatches driven by the price model: a match whose
// bytes would be cheaper as plain literals is demoted, and a match is
// deferred by one literal when the match starting at the next position pays
// better per byte. The lookahead stops a greedily-long but badly-placed
// match from blocking a longer one starting one byte later.
func ParseGreedy(src []byte, f *Finder, pricer PriceCalculator) []Token {
	var (
		tokens       []Token
		scratch      []Match
		lastWasMatch bool
		runLen       int
	)

	// ctxFor builds the pricing context for the next token of the given
	// kind, based on the run emitted so far.
	ctxFor := func(match bool) Context {
		if runLen > 0 && lastWasMatch == match {
			return Context{RunLength: runLen}
		}
		return Context{FirstInRun: true}
	}

	emit := func(t Token) {
		if runLen > 0 && lastWasMatch == t.IsMatch() {
			runLen++
		} else {
			lastWasMatch = t.IsMatch()
			runLen = 1
		}
		tokens = append(tokens, t)
	}

	pos := 0
	for pos < len(src) {
		scratch = f.AppendMatches(scratch[:0], pos)
		if len(scratch) == 0 {
			emit(Literal(src[pos]))
			pos++
			continue
		}
		m0 := scratch[0]
		matchCost := pricer.MatchPrice(m0, ctxFor(true))

		// Covering the same bytes with literals can beat a short match in
		// formats that charge a heavy match header.
		litCost := 0
		litRun, litFirst := runLen, runLen == 0 || lastWasMatch
		for i := 0; i < m0.Length; i++ {
			if litFirst {
				litCost += pricer.LiteralPrice(Context{FirstInRun: true})
				litFirst = false
				litRun = 1
			} else {
				litCost += pricer.LiteralPrice(Context{RunLength: litRun})
				litRun++
			}
		}
		chooseLit := litCost < matchCost

		if !chooseLit && pos+1 < len(src) {
			scratch = f.AppendMatches(scratch[:0], pos+1)
			if len(scratch) > 0 {
				m1 := scratch[0]
				rate0 := float64(matchCost) / float64(m0.Length)
				lookahead := pricer.LiteralPrice(ctxFor(false)) +
					pricer.MatchPrice(m1, Context{FirstInRun: true})
				rate1 := float64(lookahead) / float64(1+m1.Length)
				if rate1 < rate0 {
					chooseLit = true
				}
			}
		}

		if chooseLit {
			emit(Literal(src[pos]))
			pos++
		} else {
			emit(Reference(m0))
			pos += m0.Length
		}
	}
	return tokens
}
