package ir

// Clause names a top-level region of a statement that comments anchor to.
type Clause int

// Clause regions. ClauseBody covers statement kinds that are printed as a
// single block (INSERT, UPDATE, DELETE, CREATE TABLE, raw statements).
const (
	ClauseBody Clause = iota
	ClauseWith
	ClauseSelect
	ClauseFrom
	ClauseJoin
	ClauseWhere
	ClauseGroupBy
	ClauseHaving
	ClauseOrderBy
	ClauseLimit
)

// Anchor ties a comment to a clause region. Index distinguishes repeated
// regions (the nth join).
type Anchor struct {
	Clause Clause
	Index  int
}

// Comment is a source comment recovered by byte-range matching and
// re-attached to the nearest enclosing clause. Leading comments print on
// their own line before the clause; trailing comments print after it.
// Line/Column are the original position, kept for best-effort placement.
type Comment struct {
	Text    string
	Block   bool
	Anchor  Anchor
	Leading bool
	Line    int
	Column  int
}
