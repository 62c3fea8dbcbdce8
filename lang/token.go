package lang

// TokenKind identifies the lexical shape of a [Token].
type TokenKind int

const (
	// TokenWord is a maximal run of non-space, non-punctuation characters.
	TokenWord TokenKind = iota

	// TokenString is the content of a '...' or "..." quoted string.
	TokenString

	// TokenPunct is a single punctuation character such as '{' or ','.
	TokenPunct
)

// String returns a string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenWord:
		return "word"
	case TokenString:
		return "string"
	case TokenPunct:
		return "punct"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of SNG source.
type Token struct {
	Kind TokenKind
	Text string
}

// Is reports whether t is the punctuation token p.
func (t Token) Is(p string) bool {
	return t.Kind == TokenPunct && t.Text == p
}

// isPunct reports whether r is ASCII punctuation in the sense of C ispunct:
// a printable character that is neither a letter, a digit nor a space.
func isPunct(r rune) bool {
	return r > ' ' && r < 0x7f && !isAlnum(r)
}

func isAlnum(r rune) bool {
	return isDigit(r) || isLower(r) || isUpper(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
