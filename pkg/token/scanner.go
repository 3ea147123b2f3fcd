package token

import "strings"

// Scanner walks raw SQL text byte by byte, tracking line/column positions and
// parenthesis depth. It is deliberately forgiving: malformed input never
// produces an error, only tokens that cover the remaining text, since the
// scanner runs before any backend has decided whether the input is valid SQL.
type Scanner struct {
	src   string
	pos   int
	line  int
	col   int
	depth int
}

// NewScanner creates a Scanner over the given source text.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1, col: 1}
}

// Scan tokenizes src, returning all non-comment tokens and all comments in
// source order.
func Scan(src string) ([]Token, []Comment) {
	s := NewScanner(src)
	var (
		tokens   []Token
		comments []Comment
	)
	for {
		tok, comment, ok := s.next()
		if !ok {
			break
		}
		if comment != nil {
			comments = append(comments, *comment)
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, comments
}

func (s *Scanner) position() Position {
	return Position{Line: s.line, Column: s.col, Offset: s.pos}
}

func (s *Scanner) advance(n int) {
	for i := 0; i < n && s.pos < len(s.src); i++ {
		if s.src[s.pos] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
		s.pos++
	}
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.advance(1)
	}
}

// ownLine reports whether only whitespace precedes offset on its line.
func (s *Scanner) ownLine(offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		c := s.src[i]
		if c == '\n' {
			return true
		}
		if !isSpace(c) {
			return false
		}
	}
	return true
}

// next returns either one token or one comment; ok is false at end of input.
func (s *Scanner) next() (Token, *Comment, bool) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return Token{}, nil, false
	}

	start := s.position()
	c := s.src[s.pos]
	rest := s.src[s.pos:]

	switch {
	case strings.HasPrefix(rest, "--"):
		end := strings.IndexByte(rest, '\n')
		if end < 0 {
			end = len(rest)
		}
		return s.emitComment(LineComment, start, end)
	case strings.HasPrefix(rest, "/*"):
		end := strings.Index(rest, "*/")
		if end < 0 {
			end = len(rest)
		} else {
			end += 2
		}
		return s.emitComment(BlockComment, start, end)
	case c == '\'':
		return s.emitToken(String, start, s.scanQuoted('\'')), nil, true
	case c == '"' || c == '`':
		return s.emitToken(QuotedIdent, start, s.scanQuoted(c)), nil, true
	case isDigit(c) || (c == '.' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1])):
		return s.emitToken(Number, start, s.scanNumber()), nil, true
	case isIdentStart(c):
		n := 1
		for s.pos+n < len(s.src) && isIdentPart(s.src[s.pos+n]) {
			n++
		}
		return s.emitToken(Ident, start, n), nil, true
	default:
		n := 1
		for _, op := range [...]string{"!=", "<>", "<=", ">=", "||", "::"} {
			if strings.HasPrefix(rest, op) {
				n = 2
				break
			}
		}
		depth := s.depth
		if c == '(' {
			s.depth++
		} else if c == ')' && s.depth > 0 {
			s.depth--
			depth = s.depth
		}
		tok := s.emitToken(Op, start, n)
		tok.Depth = depth
		return tok, nil, true
	}
}

func (s *Scanner) emitToken(kind Kind, start Position, length int) Token {
	text := s.src[s.pos : s.pos+length]
	s.advance(length)
	return Token{Kind: kind, Text: text, Span: Span{Start: start, End: s.position()}, Depth: s.depth}
}

func (s *Scanner) emitComment(kind CommentKind, start Position, length int) (Token, *Comment, bool) {
	text := s.src[s.pos : s.pos+length]
	own := s.ownLine(s.pos)
	s.advance(length)
	return Token{}, &Comment{
		Kind:    kind,
		Text:    text,
		Span:    Span{Start: start, End: s.position()},
		Depth:   s.depth,
		OwnLine: own,
	}, true
}

// scanQuoted returns the length of a quoted region starting at the current
// position, honoring doubled-quote and backslash escapes. Unterminated
// regions extend to end of input.
func (s *Scanner) scanQuoted(quote byte) int {
	i := s.pos + 1
	for i < len(s.src) {
		switch s.src[i] {
		case '\\':
			i += 2
		case quote:
			if i+1 < len(s.src) && s.src[i+1] == quote {
				i += 2
				continue
			}
			return i + 1 - s.pos
		default:
			i++
		}
	}
	return len(s.src) - s.pos
}

func (s *Scanner) scanNumber() int {
	i := s.pos
	for i < len(s.src) && (isDigit(s.src[i]) || s.src[i] == '.') {
		i++
	}
	if i < len(s.src) && (s.src[i] == 'e' || s.src[i] == 'E') {
		j := i + 1
		if j < len(s.src) && (s.src[j] == '+' || s.src[j] == '-') {
			j++
		}
		if j < len(s.src) && isDigit(s.src[j]) {
			for j < len(s.src) && isDigit(s.src[j]) {
				j++
			}
			i = j
		}
	}
	return i - s.pos
}

// Segment is one top-level statement's slice of the input, semicolon
// excluded. Offset is the byte offset of Text within the original input.
type Segment struct {
	Text   string
	Offset int
}

// HasTokens reports whether the segment contains anything besides whitespace
// and comments.
func (seg Segment) HasTokens() bool {
	tokens, _ := Scan(seg.Text)
	return len(tokens) > 0
}

// SplitStatements splits raw SQL into statement segments at semicolons that
// sit outside strings, quoted identifiers, and comments. Empty segments are
// dropped; a trailing comment-only segment is kept so its comments survive.
func SplitStatements(src string) []Segment {
	s := NewScanner(src)
	var segments []Segment
	segStart := 0
	for {
		tok, comment, ok := s.next()
		if !ok {
			break
		}
		if comment != nil {
			continue
		}
		if tok.Kind == Op && tok.Text == ";" && tok.Depth == 0 {
			if seg := strings.TrimSpace(src[segStart:tok.Span.Start.Offset]); seg != "" {
				segments = append(segments, Segment{Text: seg, Offset: segStart + leadingSpace(src[segStart:])})
			}
			segStart = tok.Span.End.Offset
		}
	}
	if seg := strings.TrimSpace(src[segStart:]); seg != "" {
		segments = append(segments, Segment{Text: seg, Offset: segStart + leadingSpace(src[segStart:])})
	}
	return segments
}

func leadingSpace(s string) int {
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			return i
		}
	}
	return len(s)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '$'
}
