// Package token provides backend-independent lexical analysis of raw SQL
// text. It does not parse; it recovers the trivia every parsing backend either
// elides or drops (comments, identifier quoting, statement boundaries) so the
// rest of the pipeline can restore them by matching source byte ranges.
package token

// Position represents a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span represents a byte range in the source text.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given byte offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Kind classifies a scanned token.
type Kind int

// Token kinds.
const (
	Ident       Kind = iota // bare identifier or keyword-shaped word
	QuotedIdent             // "name" or `name`, delimiters included
	Number                  // numeric literal
	String                  // 'string', delimiters included
	Op                      // operator or punctuation
)

// Token is a single non-comment lexical element with its source span and the
// parenthesis nesting depth it was scanned at.
type Token struct {
	Kind  Kind
	Text  string
	Span  Span
	Depth int
}

// Quote returns the quote character of a QuotedIdent token, or 0.
func (t Token) Quote() byte {
	if t.Kind == QuotedIdent && len(t.Text) > 0 {
		return t.Text[0]
	}
	return 0
}

// Unquote returns the contents of a QuotedIdent token without its delimiters.
func (t Token) Unquote() string {
	if t.Kind == QuotedIdent && len(t.Text) >= 2 {
		return t.Text[1 : len(t.Text)-1]
	}
	return t.Text
}

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // -- comment
	BlockComment                    // /* comment */
)

// Comment represents a SQL comment with its position. Text includes the
// delimiters. OwnLine is true when only whitespace precedes the comment on its
// first line, i.e. the comment leads whatever follows rather than trailing the
// code before it.
type Comment struct {
	Kind    CommentKind
	Text    string
	Span    Span
	Depth   int
	OwnLine bool
}

// IsLineComment returns true if this is a line comment.
func (c Comment) IsLineComment() bool {
	return c.Kind == LineComment
}
