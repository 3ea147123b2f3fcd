package backend

import (
	"strings"

	"github.com/sqleaner/sqleaner/pkg/ir"
	"github.com/sqleaner/sqleaner/pkg/token"
)

// Source trivia restoration. Backends differ in how much lexical detail they
// keep: the crdb parser lower-cases unquoted identifiers and the vitess
// parser strips identifier quoting entirely. Rather than trusting each
// backend, the winning tree is repaired against a fresh token scan of the raw
// text, matching identifiers by their case-folded spelling.

// restoreIdentifiers rewrites every unquoted identifier in the tree to its
// original source spelling and quoting. Identifiers whose folded spelling is
// ambiguous in the source (the same word written two ways) are left as the
// backend reported them.
func restoreIdentifiers(stmt ir.Statement, sql string) {
	toks, _ := token.Scan(sql)

	// folded spelling -> original source form
	spellings := map[string]string{}
	quoted := map[string]token.Token{}
	ambiguous := map[string]bool{}

	for _, t := range toks {
		switch t.Kind {
		case token.Ident:
			// Keyword-shaped spellings stay in the map: restoration only
			// runs at identifier nodes, so a user column named First or
			// Last must get its case back even though FIRST and LAST are
			// reserved words elsewhere.
			folded := strings.ToLower(t.Text)
			if prev, ok := spellings[folded]; ok && prev != t.Text {
				ambiguous[folded] = true
			}
			spellings[folded] = t.Text
			if _, ok := quoted[folded]; ok {
				ambiguous[folded] = true
			}
		case token.QuotedIdent:
			folded := strings.ToLower(t.Unquote())
			if prev, ok := quoted[folded]; ok && prev.Text != t.Text {
				ambiguous[folded] = true
			}
			quoted[folded] = t
			if _, ok := spellings[folded]; ok {
				ambiguous[folded] = true
			}
		}
	}

	walkIdents(stmt, func(id *ir.Ident) {
		if id.Quoted {
			return
		}
		folded := strings.ToLower(id.Name)
		if ambiguous[folded] {
			return
		}
		if t, ok := quoted[folded]; ok {
			id.Name = t.Unquote()
			id.Quoted = true
			id.Quote = t.Quote()
			return
		}
		if orig, ok := spellings[folded]; ok {
			id.Name = orig
		}
	})
}

// walkIdents visits every identifier in the tree with a mutable pointer.
func walkIdents(stmt ir.Statement, fn func(*ir.Ident)) {
	switch n := stmt.(type) {
	case *ir.SelectStmt:
		walkSelectIdents(n, fn)
	case *ir.InsertStmt:
		walkTableNameIdents(&n.Table, fn)
		for i := range n.Columns {
			fn(&n.Columns[i])
		}
		for _, row := range n.Rows {
			for _, e := range row {
				walkExprIdents(e, fn)
			}
		}
		if n.Query != nil {
			walkSelectIdents(n.Query, fn)
		}
	case *ir.UpdateStmt:
		walkTableNameIdents(&n.Table, fn)
		for i := range n.Assignments {
			walkExprIdents(n.Assignments[i].Column, fn)
			walkExprIdents(n.Assignments[i].Value, fn)
		}
		walkExprIdents(n.Where, fn)
	case *ir.DeleteStmt:
		walkTableNameIdents(&n.Table, fn)
		walkExprIdents(n.Where, fn)
	case *ir.CreateTableStmt:
		walkTableNameIdents(&n.Name, fn)
		for i := range n.Columns {
			fn(&n.Columns[i].Name)
			walkExprIdents(n.Columns[i].Default, fn)
		}
		for i := range n.PrimaryKey {
			fn(&n.PrimaryKey[i])
		}
	}
}

func walkSelectIdents(sel *ir.SelectStmt, fn func(*ir.Ident)) {
	if sel == nil {
		return
	}
	if sel.With != nil {
		for _, cte := range sel.With.CTEs {
			fn(&cte.Name)
			walkSelectIdents(cte.Query, fn)
		}
	}
	for i := range sel.Items {
		walkExprIdents(sel.Items[i].Expr, fn)
		if sel.Items[i].Alias != nil {
			fn(sel.Items[i].Alias)
		}
	}
	if sel.From != nil {
		for _, t := range sel.From.Tables {
			walkTableRefIdents(t, fn)
		}
	}
	for _, j := range sel.Joins {
		walkTableRefIdents(j.Target, fn)
		walkExprIdents(j.On, fn)
		for i := range j.Using {
			fn(&j.Using[i])
		}
	}
	walkExprIdents(sel.Where, fn)
	for _, e := range sel.GroupBy {
		walkExprIdents(e, fn)
	}
	walkExprIdents(sel.Having, fn)
	for i := range sel.OrderBy {
		walkExprIdents(sel.OrderBy[i].Expr, fn)
	}
	walkExprIdents(sel.Limit, fn)
	walkExprIdents(sel.Offset, fn)
}

func walkTableRefIdents(ref ir.TableRef, fn func(*ir.Ident)) {
	switch t := ref.(type) {
	case *ir.TableName:
		walkTableNameIdents(t, fn)
	case *ir.SubqueryRef:
		walkSelectIdents(t.Query, fn)
		if t.Alias != nil {
			fn(t.Alias)
		}
	}
}

func walkTableNameIdents(t *ir.TableName, fn func(*ir.Ident)) {
	if t.Qualifier != nil {
		fn(t.Qualifier)
	}
	fn(&t.Name)
	if t.Alias != nil {
		fn(t.Alias)
	}
}

func walkExprIdents(e ir.Expr, fn func(*ir.Ident)) {
	switch n := e.(type) {
	case nil:
	case *ir.ColumnRef:
		if n.Qualifier != nil {
			fn(n.Qualifier)
		}
		fn(&n.Name)
	case *ir.Star:
		if n.Qualifier != nil {
			fn(n.Qualifier)
		}
	case *ir.FuncCall:
		fn(&n.Name)
		for _, arg := range n.Args {
			walkExprIdents(arg, fn)
		}
		if n.Over != nil {
			for _, p := range n.Over.PartitionBy {
				walkExprIdents(p, fn)
			}
			for i := range n.Over.OrderBy {
				walkExprIdents(n.Over.OrderBy[i].Expr, fn)
			}
			if n.Over.Frame != nil {
				walkExprIdents(n.Over.Frame.Start.Offset, fn)
				if n.Over.Frame.End != nil {
					walkExprIdents(n.Over.Frame.End.Offset, fn)
				}
			}
		}
	case *ir.BinaryExpr:
		walkExprIdents(n.Left, fn)
		walkExprIdents(n.Right, fn)
	case *ir.UnaryExpr:
		walkExprIdents(n.Expr, fn)
	case *ir.BetweenExpr:
		walkExprIdents(n.Expr, fn)
		walkExprIdents(n.Low, fn)
		walkExprIdents(n.High, fn)
	case *ir.CaseExpr:
		walkExprIdents(n.Operand, fn)
		for i := range n.Whens {
			walkExprIdents(n.Whens[i].Cond, fn)
			walkExprIdents(n.Whens[i].Result, fn)
		}
		walkExprIdents(n.Else, fn)
	case *ir.SubqueryExpr:
		walkSelectIdents(n.Query, fn)
	case *ir.ListExpr:
		for _, item := range n.Items {
			walkExprIdents(item, fn)
		}
	case *ir.CastExpr:
		walkExprIdents(n.Expr, fn)
	case *ir.ExtractExpr:
		walkExprIdents(n.Expr, fn)
	}
}

// clauseRegion is a half-open byte range of one depth-0 clause.
type clauseRegion struct {
	clause ir.Clause
	index  int
	start  int
	end    int
}

// attachComments re-anchors source comments to the statement's top-level
// clause regions. A comment on its own line leads the clause that starts at
// or after it; a comment sharing a line with code trails the clause it sits
// in. Comments inside parentheses anchor to the enclosing depth-0 clause.
func attachComments(stmt ir.Statement, sql string) {
	_, comments := token.Scan(sql)
	if len(comments) == 0 {
		return
	}

	regions := clauseRegions(stmt, sql)
	info := stmt.Info()

	for _, c := range comments {
		anchor, leading := anchorFor(c, regions)
		info.Comments = append(info.Comments, ir.Comment{
			Text:    c.Text,
			Block:   c.Kind == token.BlockComment,
			Anchor:  anchor,
			Leading: leading,
			Line:    c.Span.Start.Line,
			Column:  c.Span.Start.Column,
		})
	}
}

func anchorFor(c token.Comment, regions []clauseRegion) (ir.Anchor, bool) {
	offset := c.Span.Start.Offset
	if len(regions) == 0 {
		return ir.Anchor{Clause: ir.ClauseBody}, c.OwnLine
	}

	// Own-line comments lead the first clause starting at or after them.
	if c.OwnLine {
		for _, r := range regions {
			if r.start >= offset {
				return ir.Anchor{Clause: r.clause, Index: r.index}, true
			}
		}
		// Nothing follows; trail the last clause.
		last := regions[len(regions)-1]
		return ir.Anchor{Clause: last.clause, Index: last.index}, false
	}

	// Trailing comments attach to the clause whose region contains them.
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].start <= offset {
			return ir.Anchor{Clause: regions[i].clause, Index: regions[i].index}, false
		}
	}
	first := regions[0]
	return ir.Anchor{Clause: first.clause, Index: first.index}, true
}

// clauseRegions scans the raw text for depth-0 clause keywords. Only SELECT
// statements have multiple regions; every other statement kind is a single
// body region.
func clauseRegions(stmt ir.Statement, sql string) []clauseRegion {
	if _, ok := stmt.(*ir.SelectStmt); !ok {
		return []clauseRegion{{clause: ir.ClauseBody, start: 0, end: len(sql)}}
	}

	toks, _ := token.Scan(sql)
	var regions []clauseRegion
	joinIndex := 0

	open := func(clause ir.Clause, start int) {
		if n := len(regions); n > 0 {
			regions[n-1].end = start
		}
		index := 0
		if clause == ir.ClauseJoin {
			index = joinIndex
			joinIndex++
		}
		regions = append(regions, clauseRegion{clause: clause, index: index, start: start, end: len(sql)})
	}

	for i, t := range toks {
		if t.Depth != 0 || t.Kind != token.Ident {
			continue
		}
		start := t.Span.Start.Offset
		switch strings.ToUpper(t.Text) {
		case "WITH":
			if len(regions) == 0 {
				open(ir.ClauseWith, start)
			}
		case "SELECT":
			open(ir.ClauseSelect, start)
		case "FROM":
			open(ir.ClauseFrom, start)
		case "JOIN":
			// The region begins at the join's first modifier keyword.
			for j := i - 1; j >= 0; j-- {
				prev := toks[j]
				if prev.Depth != 0 || prev.Kind != token.Ident || !joinModifier(prev.Text) {
					break
				}
				start = prev.Span.Start.Offset
			}
			open(ir.ClauseJoin, start)
		case "WHERE":
			open(ir.ClauseWhere, start)
		case "GROUP":
			open(ir.ClauseGroupBy, start)
		case "HAVING":
			open(ir.ClauseHaving, start)
		case "ORDER":
			open(ir.ClauseOrderBy, start)
		case "LIMIT":
			open(ir.ClauseLimit, start)
		}
	}

	if len(regions) == 0 {
		regions = append(regions, clauseRegion{clause: ir.ClauseBody, start: 0, end: len(sql)})
	}
	return regions
}

func joinModifier(word string) bool {
	switch strings.ToUpper(word) {
	case "INNER", "LEFT", "RIGHT", "FULL", "CROSS", "OUTER":
		return true
	}
	return false
}
