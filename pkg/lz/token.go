// Package lz implements the generic LZ77 machinery shared by every codec
// binding: match search, token parsing (greedy and cost-minimizing), price
// estimation and the sliding-window replay buffer used on the decode path.
package lz

// Match is a back-reference into previously emitted data.
type Match struct {
	Displacement int // backward distance to the start of the repeated run, >= 1
	Length       int // number of bytes to replay
}

// Token is a single parser decision: one literal byte or one match.
// A token is a match when Match.Length > 0, otherwise Lit holds the byte.
type Token struct {
	Match Match
	Lit   byte
}

// Literal returns a token carrying a single raw byte.
func Literal(b byte) Token {
	return Token{Lit: b}
}

// Reference returns a token carrying a back-reference.
func Reference(m Match) Token {
	return Token{Match: m}
}

// IsMatch reports whether the token is a back-reference.
func (t Token) IsMatch() bool {
	return t.Match.Length > 0
}
