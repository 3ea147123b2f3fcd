package format

import (
	"strings"

	"github.com/sqleaner/sqleaner/pkg/ir"
)

// commentSet indexes a statement's recovered comments by clause anchor so
// each clause block can re-emit its own.
type commentSet map[ir.Anchor][]ir.Comment

func newCommentSet(stmt ir.Statement) commentSet {
	comments := stmt.Info().Comments
	if len(comments) == 0 {
		return nil
	}
	cs := commentSet{}
	for _, c := range comments {
		cs[c.Anchor] = append(cs[c.Anchor], c)
	}
	return cs
}

// weave surrounds a clause block with its comments: leading comments on their
// own lines above the block, trailing comments appended to the block's last
// line.
func (cs commentSet) weave(anchor ir.Anchor, indent string, block []string) []string {
	comments := cs[anchor]
	if len(comments) == 0 || len(block) == 0 {
		return block
	}
	var out []string
	for _, c := range comments {
		if c.Leading {
			out = append(out, indent+c.Text)
		}
	}
	out = append(out, block...)
	for _, c := range comments {
		if !c.Leading {
			out[len(out)-1] += " " + c.Text
		}
	}
	return out
}

// selectLines renders a SELECT statement as indented lines. Nested selects
// (CTE bodies, FROM subqueries) recurse with a deeper level and no comment
// set; comments only anchor to top-level clauses.
func (f *Formatter) selectLines(sel *ir.SelectStmt, level int, cs commentSet) []string {
	ind := f.indent(level)
	var lines []string

	if sel.With != nil {
		lines = append(lines, cs.weave(ir.Anchor{Clause: ir.ClauseWith}, ind, f.withLines(sel.With, level))...)
	}

	lines = append(lines, cs.weave(ir.Anchor{Clause: ir.ClauseSelect}, ind, f.selectListLines(sel, level))...)

	if sel.From != nil {
		lines = append(lines, cs.weave(ir.Anchor{Clause: ir.ClauseFrom}, ind, f.fromLines(sel.From, level))...)
	}
	for i, join := range sel.Joins {
		anchor := ir.Anchor{Clause: ir.ClauseJoin, Index: i}
		lines = append(lines, cs.weave(anchor, ind, f.joinLines(join, level))...)
	}
	if sel.Where != nil {
		block := f.predicateLines(f.keyword("WHERE"), sel.Where, level)
		lines = append(lines, cs.weave(ir.Anchor{Clause: ir.ClauseWhere}, ind, block)...)
	}
	if len(sel.GroupBy) > 0 {
		exprs := make([]string, len(sel.GroupBy))
		for i, e := range sel.GroupBy {
			exprs[i] = f.expr(e)
		}
		block := []string{ind + f.keyword("GROUP BY") + " " + strings.Join(exprs, ", ")}
		lines = append(lines, cs.weave(ir.Anchor{Clause: ir.ClauseGroupBy}, ind, block)...)
	}
	if sel.Having != nil {
		block := f.predicateLines(f.keyword("HAVING"), sel.Having, level)
		lines = append(lines, cs.weave(ir.Anchor{Clause: ir.ClauseHaving}, ind, block)...)
	}
	if len(sel.OrderBy) > 0 {
		items := make([]string, len(sel.OrderBy))
		for i := range sel.OrderBy {
			items[i] = f.orderItem(sel.OrderBy[i])
		}
		block := []string{ind + f.keyword("ORDER BY") + " " + strings.Join(items, ", ")}
		lines = append(lines, cs.weave(ir.Anchor{Clause: ir.ClauseOrderBy}, ind, block)...)
	}
	if sel.Limit != nil {
		line := ind + f.keyword("LIMIT") + " " + f.expr(sel.Limit)
		if sel.Offset != nil {
			line += " " + f.keyword("OFFSET") + " " + f.expr(sel.Offset)
		}
		lines = append(lines, cs.weave(ir.Anchor{Clause: ir.ClauseLimit}, ind, []string{line})...)
	}

	return lines
}

// withLines renders the CTE list. The first CTE opens on the WITH line;
// every further CTE starts on its own line at the same margin, separated by
// a closing parenthesis and comma.
func (f *Formatter) withLines(with *ir.WithClause, level int) []string {
	ind := f.indent(level)
	var lines []string
	for i, cte := range with.CTEs {
		header := ind + f.identifier(cte.Name) + " " + f.keyword("AS") + " ("
		if i == 0 {
			header = ind + f.keyword("WITH") + " " + f.identifier(cte.Name) + " " + f.keyword("AS") + " ("
		}
		lines = append(lines, header)
		lines = append(lines, f.selectLines(cte.Query, level+1, nil)...)
		if i < len(with.CTEs)-1 {
			lines = append(lines, ind+"),")
		} else {
			lines = append(lines, ind+")")
		}
	}
	return lines
}

// selectListLines renders SELECT plus its item list. A single item stays on
// the SELECT line; multiple items break one per line with a leading comma.
func (f *Formatter) selectListLines(sel *ir.SelectStmt, level int) []string {
	head := f.indent(level) + f.keyword("SELECT")
	if sel.Distinct {
		head += " " + f.keyword("DISTINCT")
	}

	items := make([]string, len(sel.Items))
	for i := range sel.Items {
		items[i] = f.selectItem(sel.Items[i])
	}

	if len(items) == 1 {
		return []string{head + " " + items[0]}
	}

	lines := []string{head}
	itemInd := f.indent(level + 1)
	for i, item := range items {
		if i == 0 {
			lines = append(lines, itemInd+item)
		} else {
			lines = append(lines, itemInd+", "+item)
		}
	}
	return lines
}

func (f *Formatter) selectItem(item ir.SelectItem) string {
	s := f.expr(item.Expr)
	if item.Alias != nil {
		s += " " + f.keyword("AS") + " " + f.identifier(*item.Alias)
	}
	return s
}

// fromLines renders the FROM clause. A lone subquery source breaks across
// lines; everything else prints inline.
func (f *Formatter) fromLines(from *ir.FromClause, level int) []string {
	ind := f.indent(level)

	if len(from.Tables) == 1 {
		if sub, ok := from.Tables[0].(*ir.SubqueryRef); ok {
			lines := []string{ind + f.keyword("FROM") + " ("}
			lines = append(lines, f.selectLines(sub.Query, level+1, nil)...)
			closing := ind + ")"
			if sub.Alias != nil {
				closing += " " + f.keyword("AS") + " " + f.identifier(*sub.Alias)
			}
			return append(lines, closing)
		}
	}

	refs := make([]string, len(from.Tables))
	for i, t := range from.Tables {
		refs[i] = f.tableRef(t)
	}
	return []string{ind + f.keyword("FROM") + " " + strings.Join(refs, ", ")}
}

// joinLines renders one JOIN. The ON predicate stays on the join line while
// it is simple; boolean predicates move ON to its own indent level.
func (f *Formatter) joinLines(join *ir.Join, level int) []string {
	ind := f.indent(level)
	head := ind + f.joinKeyword(join)

	var target []string
	if sub, ok := join.Target.(*ir.SubqueryRef); ok {
		target = append(target, head+" (")
		target = append(target, f.selectLines(sub.Query, level+1, nil)...)
		closing := ind + ")"
		if sub.Alias != nil {
			closing += " " + f.keyword("AS") + " " + f.identifier(*sub.Alias)
		}
		target = append(target, closing)
	} else {
		target = append(target, head+" "+f.tableRef(join.Target))
	}

	if len(join.Using) > 0 {
		names := make([]string, len(join.Using))
		for i := range join.Using {
			names[i] = f.identifier(join.Using[i])
		}
		target[len(target)-1] += " " + f.keyword("USING") + " (" + strings.Join(names, ", ") + ")"
		return target
	}
	if join.On == nil {
		return target
	}

	if isBooleanExpr(join.On) {
		on := f.predicateLines(f.keyword("ON"), join.On, level+1)
		return append(target, on...)
	}
	target[len(target)-1] += " " + f.keyword("ON") + " " + f.expr(join.On)
	return target
}

func (f *Formatter) joinKeyword(join *ir.Join) string {
	var kw string
	switch join.Kind {
	case ir.JoinInner:
		kw = "INNER "
	case ir.JoinLeft:
		kw = "LEFT "
	case ir.JoinRight:
		kw = "RIGHT "
	case ir.JoinFull:
		kw = "FULL "
	case ir.JoinCross:
		kw = "CROSS "
	}
	if join.Outer {
		kw += "OUTER "
	}
	return f.keyword(kw + "JOIN")
}

// predicateLines renders a WHERE/HAVING/ON condition. Chains of the
// top-level boolean operator break one condition per line with the operator
// leading each continuation.
func (f *Formatter) predicateLines(kw string, e ir.Expr, level int) []string {
	ind := f.indent(level)

	terms, op := booleanChain(e)
	if len(terms) == 1 {
		return []string{ind + kw + " " + f.expr(e)}
	}

	rendered := make([]string, len(terms))
	for i, term := range terms {
		rendered[i] = f.operand(term, opPrec(op))
	}
	lines := []string{ind + kw + " " + rendered[0]}
	contInd := f.indent(level + 1)
	for _, term := range rendered[1:] {
		lines = append(lines, contInd+op+" "+term)
	}
	return lines
}

// booleanChain flattens a left-nested chain of one boolean operator into its
// operands, in source order.
func booleanChain(e ir.Expr) ([]ir.Expr, string) {
	b, ok := e.(*ir.BinaryExpr)
	if !ok || (b.Op != "AND" && b.Op != "OR") {
		return []ir.Expr{e}, ""
	}
	var collect func(ir.Expr) []ir.Expr
	collect = func(e ir.Expr) []ir.Expr {
		if n, ok := e.(*ir.BinaryExpr); ok && n.Op == b.Op {
			return append(collect(n.Left), n.Right)
		}
		return []ir.Expr{e}
	}
	return collect(e), b.Op
}

func isBooleanExpr(e ir.Expr) bool {
	b, ok := e.(*ir.BinaryExpr)
	return ok && (b.Op == "AND" || b.Op == "OR")
}

func (f *Formatter) tableRef(ref ir.TableRef) string {
	switch t := ref.(type) {
	case *ir.TableName:
		s := f.identifier(t.Name)
		if t.Qualifier != nil {
			s = f.identifier(*t.Qualifier) + "." + s
		}
		if t.Alias != nil {
			s += " " + f.keyword("AS") + " " + f.identifier(*t.Alias)
		}
		return s
	case *ir.SubqueryRef:
		s := "(" + f.inlineSelect(t.Query) + ")"
		if t.Alias != nil {
			s += " " + f.keyword("AS") + " " + f.identifier(*t.Alias)
		}
		return s
	default:
		return ""
	}
}

func (f *Formatter) orderItem(item ir.OrderItem) string {
	s := f.expr(item.Expr)
	switch item.Direction {
	case ir.OrderAsc:
		s += " " + f.keyword("ASC")
	case ir.OrderDesc:
		s += " " + f.keyword("DESC")
	}
	switch item.Nulls {
	case ir.NullsFirst:
		s += " " + f.keyword("NULLS FIRST")
	case ir.NullsLast:
		s += " " + f.keyword("NULLS LAST")
	}
	return s
}

// inlineSelect renders a nested SELECT on one line, for scalar subqueries
// and subqueries embedded in inline contexts.
func (f *Formatter) inlineSelect(sel *ir.SelectStmt) string {
	var parts []string

	if sel.With != nil {
		ctes := make([]string, len(sel.With.CTEs))
		for i, cte := range sel.With.CTEs {
			ctes[i] = f.identifier(cte.Name) + " " + f.keyword("AS") + " (" + f.inlineSelect(cte.Query) + ")"
		}
		parts = append(parts, f.keyword("WITH")+" "+strings.Join(ctes, ", "))
	}

	head := f.keyword("SELECT")
	if sel.Distinct {
		head += " " + f.keyword("DISTINCT")
	}
	items := make([]string, len(sel.Items))
	for i := range sel.Items {
		items[i] = f.selectItem(sel.Items[i])
	}
	parts = append(parts, head+" "+strings.Join(items, ", "))

	if sel.From != nil {
		refs := make([]string, len(sel.From.Tables))
		for i, t := range sel.From.Tables {
			refs[i] = f.tableRef(t)
		}
		parts = append(parts, f.keyword("FROM")+" "+strings.Join(refs, ", "))
	}
	for _, join := range sel.Joins {
		part := f.joinKeyword(join) + " " + f.tableRef(join.Target)
		if len(join.Using) > 0 {
			names := make([]string, len(join.Using))
			for i := range join.Using {
				names[i] = f.identifier(join.Using[i])
			}
			part += " " + f.keyword("USING") + " (" + strings.Join(names, ", ") + ")"
		} else if join.On != nil {
			part += " " + f.keyword("ON") + " " + f.expr(join.On)
		}
		parts = append(parts, part)
	}
	if sel.Where != nil {
		parts = append(parts, f.keyword("WHERE")+" "+f.expr(sel.Where))
	}
	if len(sel.GroupBy) > 0 {
		exprs := make([]string, len(sel.GroupBy))
		for i, e := range sel.GroupBy {
			exprs[i] = f.expr(e)
		}
		parts = append(parts, f.keyword("GROUP BY")+" "+strings.Join(exprs, ", "))
	}
	if sel.Having != nil {
		parts = append(parts, f.keyword("HAVING")+" "+f.expr(sel.Having))
	}
	if len(sel.OrderBy) > 0 {
		items := make([]string, len(sel.OrderBy))
		for i := range sel.OrderBy {
			items[i] = f.orderItem(sel.OrderBy[i])
		}
		parts = append(parts, f.keyword("ORDER BY")+" "+strings.Join(items, ", "))
	}
	if sel.Limit != nil {
		part := f.keyword("LIMIT") + " " + f.expr(sel.Limit)
		if sel.Offset != nil {
			part += " " + f.keyword("OFFSET") + " " + f.expr(sel.Offset)
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, " ")
}
