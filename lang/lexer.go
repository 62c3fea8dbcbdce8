package lang

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ardnew/sngc/log"
)

// DefaultMaxTokenLength bounds the length of a single token.
const DefaultMaxTokenLength = 80

// errDoublePush is returned when a token is pushed back while another one
// is still pending.
var errDoublePush = errors.New("token pushed back twice without an intervening read")

// errRawPushed is returned by [Lexer.ReadRaw] while a token is pushed back.
var errRawPushed = errors.New("raw read with a pushed-back token")

// Lexer splits SNG source into tokens.
//
// Only one token of lookahead is kept: [Lexer.Push] returns the token most
// recently delivered by [Lexer.Next] to the input exactly once.
type Lexer struct {
	r      *bufio.Reader
	source string
	line   int
	maxLen int
	last   rune
	tok    Token
	pushed bool
	logger log.Logger
}

// NewLexer returns a Lexer reading from r. The source name is used only for
// diagnostics. A non-positive maxLen selects [DefaultMaxTokenLength].
func NewLexer(r io.Reader, source string, maxLen int, logger log.Logger) *Lexer {
	if maxLen <= 0 {
		maxLen = DefaultMaxTokenLength
	}

	return &Lexer{
		r:      bufio.NewReader(r),
		source: source,
		line:   1,
		maxLen: maxLen,
		logger: logger,
	}
}

// Line returns the current line number.
func (l *Lexer) Line() int { return l.line }

// Position returns the current source position.
func (l *Lexer) Position() Position {
	return Position{Source: l.source, Line: l.line}
}

// Token returns the most recently delivered token.
func (l *Lexer) Token() Token { return l.tok }

// Equals reports whether the most recently delivered token has text s.
func (l *Lexer) Equals(s string) bool { return l.tok.Text == s }

// Push arranges for the most recently delivered token to be returned again by
// the next call to [Lexer.Next].
func (l *Lexer) Push() error {
	if l.pushed {
		return errDoublePush
	}

	l.logger.Trace("push token", slog.String("text", l.tok.Text))

	l.pushed = true

	return nil
}

// Next returns the next token, or [io.EOF] at a clean end of input.
//
// End of input inside a quoted string or a bare word is a lexical error.
func (l *Lexer) Next() (Token, error) {
	if l.pushed {
		l.pushed = false
		l.logger.Trace("saved token", slog.String("text", l.tok.Text))

		return l.tok, nil
	}

	c, err := l.skipSpace()
	if errors.Is(err, io.EOF) {
		l.tok = Token{}

		return Token{}, io.EOF
	} else if err != nil {
		return Token{}, WrapError(KindLex, l.Position(), err)
	}

	var tok Token

	switch {
	case c == '\'' || c == '"':
		tok, err = l.quoted(c)
	case c != '.' && isPunct(c):
		tok = Token{Kind: TokenPunct, Text: string(c)}
	default:
		tok, err = l.word(c)
	}

	if err != nil {
		return Token{}, err
	}

	l.tok = tok
	l.logger.Trace("token",
		slog.String("kind", tok.Kind.String()),
		slog.String("text", tok.Text),
		slog.Int("line", l.line))

	return tok, nil
}

// ReadRaw returns the next input character, bypassing tokenization.
// It returns [io.EOF] at end of input.
func (l *Lexer) ReadRaw() (rune, error) {
	if l.pushed {
		return 0, errRawPushed
	}

	return l.read()
}

// skipSpace discards whitespace and '#' comments and returns the first
// significant character.
func (l *Lexer) skipSpace() (rune, error) {
	for {
		c, err := l.read()
		if err != nil {
			return 0, err
		}

		switch {
		case unicode.IsSpace(c):
			continue

		case c == '#':
			for c != '\n' {
				c, err = l.read()
				if err != nil {
					return 0, err
				}
			}

		default:
			return c, nil
		}
	}
}

func (l *Lexer) quoted(quote rune) (Token, error) {
	var sb strings.Builder

	start := l.Position()

	for n := 0; ; n++ {
		c, err := l.read()
		if errors.Is(err, io.EOF) {
			return Token{}, ErrLex.Errorf(start, "unexpected EOF in string")
		} else if err != nil {
			return Token{}, WrapError(KindLex, l.Position(), err)
		}

		switch {
		case c == quote:
			return Token{Kind: TokenString, Text: sb.String()}, nil
		case c == '\n':
			return Token{}, ErrLex.Errorf(start, "runaway string")
		case n >= l.maxLen:
			return Token{}, ErrLex.Errorf(start, "string token too long")
		}

		sb.WriteRune(c)
	}
}

func (l *Lexer) word(first rune) (Token, error) {
	var sb strings.Builder

	sb.WriteRune(first)

	for n := 1; ; n++ {
		c, err := l.read()
		if errors.Is(err, io.EOF) {
			return Token{}, ErrLex.Errorf(l.Position(), "unexpected EOF in token")
		} else if err != nil {
			return Token{}, WrapError(KindLex, l.Position(), err)
		}

		switch {
		case c == '\n':
			l.unread()

			return Token{Kind: TokenWord, Text: sb.String()}, nil
		case unicode.IsSpace(c):
			return Token{Kind: TokenWord, Text: sb.String()}, nil
		case c != '.' && isPunct(c):
			l.unread()

			return Token{Kind: TokenWord, Text: sb.String()}, nil
		case n >= l.maxLen:
			return Token{}, ErrLex.Errorf(l.Position(), "token too long")
		}

		sb.WriteRune(c)
	}
}

func (l *Lexer) read() (rune, error) {
	c, _, err := l.r.ReadRune()
	if err != nil {
		return 0, err
	}

	if c == '\n' {
		l.line++
	}

	l.last = c

	return c, nil
}

// unread returns the last character read to the input, so a newline that
// ends a word is counted against the following token.
func (l *Lexer) unread() {
	if l.r.UnreadRune() == nil && l.last == '\n' {
		l.line--
	}
}
