package gsyntax

import (
	"strings"

	"github.com/dekarrin/vpagen/vpa/vpaerr"
)

// scan tokenizes the entirety of src, returning tokens in source order
// terminated by a single tEOF token. Identifiers are any run of letters,
// digits, and underscores not starting with a digit; string literals are
// double-quoted with backslash-escaped '"' and '\\'. Runs of space, tab,
// and carriage return are always insignificant, but a newline is load-
// bearing: it is the only thing that tells the parser a rule's source or
// transform item list has ended, since a new rule or header can start with
// the same token kinds (string literal, identifier) a list's later items
// can. The scanner doesn't consume that distinction itself; it just records
// on each token whether a newline was skipped to reach it, for the parser
// to act on.
func scan(src string) ([]token, error) {
	s := &scanner{src: src, line: 1, col: 1}
	var toks []token
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tEOF {
			break
		}
	}
	return toks, nil
}

type scanner struct {
	src  string
	pos  int
	line int
	col  int
}

func (s *scanner) peekByte() (byte, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *scanner) advance() byte {
	b := s.src[s.pos]
	s.pos++
	if b == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return b
}

// skipWhitespace consumes space, tab, carriage return, and newline bytes,
// reporting whether at least one newline was among them.
func (s *scanner) skipWhitespace() (sawNewline bool) {
	for {
		b, ok := s.peekByte()
		if !ok {
			return sawNewline
		}
		if b == '\n' {
			sawNewline = true
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			s.advance()
			continue
		}
		return sawNewline
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func (s *scanner) next() (token, error) {
	newlineBefore := s.skipWhitespace()

	line, col := s.line, s.col
	b, ok := s.peekByte()
	if !ok {
		return token{kind: tEOF, line: line, col: col, newlineBefore: newlineBefore}, nil
	}

	switch {
	case b == ':':
		s.advance()
		return token{kind: tColon, line: line, col: col, newlineBefore: newlineBefore}, nil

	case b == '=':
		s.advance()
		return token{kind: tEquals, line: line, col: col, newlineBefore: newlineBefore}, nil

	case b == '[':
		s.advance()
		return token{kind: tLBracket, line: line, col: col, newlineBefore: newlineBefore}, nil

	case b == ']':
		s.advance()
		return token{kind: tRBracket, line: line, col: col, newlineBefore: newlineBefore}, nil

	case b == '-':
		s.advance()
		b2, ok := s.peekByte()
		if !ok || b2 != '>' {
			return token{}, vpaerr.Syntax(line, col, "expected '->'")
		}
		s.advance()
		return token{kind: tArrow, line: line, col: col, newlineBefore: newlineBefore}, nil

	case b == '"':
		return s.scanString(line, col, newlineBefore)

	case isIdentStart(b):
		return s.scanIdent(line, col, newlineBefore), nil

	default:
		return token{}, vpaerr.Syntax(line, col, "unexpected character %q", rune(b))
	}
}

func (s *scanner) scanIdent(line, col int, newlineBefore bool) token {
	start := s.pos
	for {
		b, ok := s.peekByte()
		if !ok || !isIdentCont(b) {
			break
		}
		s.advance()
	}
	return token{kind: tIdent, text: s.src[start:s.pos], line: line, col: col, newlineBefore: newlineBefore}
}

func (s *scanner) scanString(line, col int, newlineBefore bool) (token, error) {
	s.advance() // opening quote

	var sb strings.Builder
	for {
		b, ok := s.peekByte()
		if !ok {
			return token{}, vpaerr.Syntax(line, col, "unterminated string literal")
		}
		if b == '"' {
			s.advance()
			return token{kind: tString, text: sb.String(), line: line, col: col, newlineBefore: newlineBefore}, nil
		}
		if b == '\\' {
			escLine, escCol := s.line, s.col
			s.advance()
			e, ok := s.peekByte()
			if !ok {
				return token{}, vpaerr.Syntax(escLine, escCol, "unterminated escape sequence")
			}
			switch e {
			case '"':
				sb.WriteByte('"')
				s.advance()
			case '\\':
				sb.WriteByte('\\')
				s.advance()
			default:
				// Only '\"' and '\\' are escapes at this quoting layer; any
				// other backslash (e.g. the '\(' / '\)' a regex alternative
				// uses to escape a literal paren) passes through untouched
				// so the regex engine sees it.
				sb.WriteByte('\\')
			}
			continue
		}
		sb.WriteByte(b)
		s.advance()
	}
}
