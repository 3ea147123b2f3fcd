package backend

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/cockroachdb-parser/pkg/sql/parser"
	"github.com/cockroachdb/cockroachdb-parser/pkg/sql/sem/tree"
	"github.com/sqleaner/sqleaner/pkg/ir"
)

// crdbBackend adapts the CockroachDB Postgres-dialect parser.
type crdbBackend struct{}

// CRDB returns the CockroachDB parser backend.
func CRDB() Backend { return crdbBackend{} }

func (crdbBackend) Name() string { return "crdb" }

func (b crdbBackend) Translate(sql string) (ir.Statement, error) {
	parsed, err := parser.Parse(sql)
	if err != nil {
		return nil, &ParseError{Backend: b.Name(), Message: err.Error()}
	}
	if len(parsed) != 1 {
		return nil, &ParseError{Backend: b.Name(), Message: fmt.Sprintf("expected one statement, found %d", len(parsed))}
	}
	return b.normalize(parsed[0].AST, sql)
}

func (b crdbBackend) fail(format string, args ...interface{}) error {
	return &NormalizationError{Backend: b.Name(), Detail: fmt.Sprintf(format, args...)}
}

func (b crdbBackend) normalize(stmt tree.Statement, sql string) (ir.Statement, error) {
	switch n := stmt.(type) {
	case *tree.Select:
		return b.selectStmt(n)
	case *tree.Insert:
		return b.insertStmt(n)
	case *tree.Update:
		return b.updateStmt(n)
	case *tree.Delete:
		return b.deleteStmt(n)
	case *tree.CreateTable:
		// This parser loses column type spellings and option order, so
		// DDL is never printed structurally from it.
		return nil, b.fail("CREATE TABLE not translated")
	default:
		// Accepted but unmodeled statement kinds pass through verbatim.
		return &ir.RawStmt{Text: strings.TrimSpace(sql)}, nil
	}
}

func (b crdbBackend) selectStmt(sel *tree.Select) (*ir.SelectStmt, error) {
	out := &ir.SelectStmt{}

	if sel.With != nil {
		with, err := b.withClause(sel.With)
		if err != nil {
			return nil, err
		}
		out.With = with
	}

	clause, ok := sel.Select.(*tree.SelectClause)
	if !ok {
		return nil, b.fail("unsupported select body %T", sel.Select)
	}
	if err := b.selectClause(clause, out); err != nil {
		return nil, err
	}

	for _, o := range sel.OrderBy {
		item, err := b.orderItem(o)
		if err != nil {
			return nil, err
		}
		out.OrderBy = append(out.OrderBy, item)
	}
	if sel.Limit != nil {
		var err error
		if sel.Limit.Count != nil {
			if out.Limit, err = b.expr(sel.Limit.Count); err != nil {
				return nil, err
			}
		}
		if sel.Limit.Offset != nil {
			if out.Offset, err = b.expr(sel.Limit.Offset); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func (b crdbBackend) withClause(w *tree.With) (*ir.WithClause, error) {
	if w.Recursive {
		return nil, b.fail("recursive WITH not translated")
	}
	out := &ir.WithClause{}
	for i, cte := range w.CTEList {
		sub, ok := cte.Stmt.(*tree.Select)
		if !ok {
			return nil, b.fail("unsupported CTE body %T", cte.Stmt)
		}
		query, err := b.selectStmt(sub)
		if err != nil {
			return nil, err
		}
		if len(cte.Name.Cols) > 0 {
			return nil, b.fail("CTE column lists not translated")
		}
		out.CTEs = append(out.CTEs, &ir.CTE{
			Name:  ir.Name(string(cte.Name.Alias)),
			Pos:   i,
			Query: query,
		})
	}
	return out, nil
}

func (b crdbBackend) selectClause(clause *tree.SelectClause, out *ir.SelectStmt) error {
	out.Distinct = clause.Distinct
	if len(clause.DistinctOn) > 0 {
		return b.fail("DISTINCT ON not translated")
	}

	for _, se := range clause.Exprs {
		e, err := b.expr(se.Expr)
		if err != nil {
			return err
		}
		item := ir.SelectItem{Expr: e}
		if se.As != "" {
			alias := ir.Name(string(se.As))
			item.Alias = &alias
		}
		out.Items = append(out.Items, item)
	}

	if len(clause.From.Tables) > 0 {
		out.From = &ir.FromClause{}
		for _, t := range clause.From.Tables {
			if err := b.fromTable(t, out); err != nil {
				return err
			}
		}
	}

	var err error
	if clause.Where != nil {
		if out.Where, err = b.expr(clause.Where.Expr); err != nil {
			return err
		}
	}
	for _, g := range clause.GroupBy {
		e, err := b.expr(g)
		if err != nil {
			return err
		}
		out.GroupBy = append(out.GroupBy, e)
	}
	if clause.Having != nil {
		if out.Having, err = b.expr(clause.Having.Expr); err != nil {
			return err
		}
	}
	if len(clause.Window) > 0 {
		return b.fail("named WINDOW clauses not translated")
	}
	return nil
}

// fromTable flattens one FROM entry. Joins parse as a left-nested tree with
// the first source at the bottom left; the IR keeps sources and joins as
// flat lists.
func (b crdbBackend) fromTable(t tree.TableExpr, out *ir.SelectStmt) error {
	switch n := t.(type) {
	case *tree.JoinTableExpr:
		if err := b.fromTable(n.Left, out); err != nil {
			return err
		}
		join, err := b.join(n)
		if err != nil {
			return err
		}
		out.Joins = append(out.Joins, join)
		return nil
	default:
		ref, err := b.tableRef(t)
		if err != nil {
			return err
		}
		out.From.Tables = append(out.From.Tables, ref)
		return nil
	}
}

func (b crdbBackend) join(n *tree.JoinTableExpr) (*ir.Join, error) {
	join := &ir.Join{}
	switch n.JoinType {
	case "":
		join.Kind = ir.JoinPlain
	case tree.AstInner:
		join.Kind = ir.JoinInner
	case tree.AstLeft:
		join.Kind = ir.JoinLeft
	case tree.AstRight:
		join.Kind = ir.JoinRight
	case tree.AstFull:
		join.Kind = ir.JoinFull
	case tree.AstCross:
		join.Kind = ir.JoinCross
	default:
		return nil, b.fail("unsupported join type %q", n.JoinType)
	}

	target, err := b.tableRef(n.Right)
	if err != nil {
		return nil, err
	}
	join.Target = target

	switch cond := n.Cond.(type) {
	case nil:
	case *tree.OnJoinCond:
		if join.On, err = b.expr(cond.Expr); err != nil {
			return nil, err
		}
	case *tree.UsingJoinCond:
		for _, col := range cond.Cols {
			join.Using = append(join.Using, ir.Name(string(col)))
		}
	default:
		return nil, b.fail("unsupported join condition %T", n.Cond)
	}
	return join, nil
}

func (b crdbBackend) tableRef(t tree.TableExpr) (ir.TableRef, error) {
	switch n := t.(type) {
	case *tree.AliasedTableExpr:
		if n.IndexFlags != nil || n.Ordinality {
			return nil, b.fail("table hints not translated")
		}
		ref, err := b.tableRef(n.Expr)
		if err != nil {
			return nil, err
		}
		if n.As.Alias != "" {
			alias := ir.Name(string(n.As.Alias))
			switch r := ref.(type) {
			case *ir.TableName:
				r.Alias = &alias
			case *ir.SubqueryRef:
				r.Alias = &alias
			}
		}
		return ref, nil
	case *tree.TableName:
		name := &ir.TableName{Name: ir.Name(string(n.ObjectName))}
		if n.ExplicitSchema {
			q := ir.Name(string(n.SchemaName))
			name.Qualifier = &q
		}
		if n.ExplicitCatalog {
			return nil, b.fail("catalog-qualified names not translated")
		}
		return name, nil
	case *tree.UnresolvedObjectName:
		name := &ir.TableName{Name: ir.Name(n.Parts[0])}
		if n.NumParts > 2 {
			return nil, b.fail("catalog-qualified names not translated")
		}
		if n.NumParts == 2 {
			q := ir.Name(n.Parts[1])
			name.Qualifier = &q
		}
		return name, nil
	case *tree.Subquery:
		query, err := b.subquery(n)
		if err != nil {
			return nil, err
		}
		return &ir.SubqueryRef{Query: query}, nil
	case *tree.ParenTableExpr:
		return b.tableRef(n.Expr)
	default:
		return nil, b.fail("unsupported table expression %T", t)
	}
}

func (b crdbBackend) subquery(sub *tree.Subquery) (*ir.SelectStmt, error) {
	switch sel := sub.Select.(type) {
	case *tree.ParenSelect:
		return b.selectStmt(sel.Select)
	case *tree.SelectClause:
		out := &ir.SelectStmt{}
		if err := b.selectClause(sel, out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, b.fail("unsupported subquery body %T", sub.Select)
	}
}

func (b crdbBackend) orderItem(o *tree.Order) (ir.OrderItem, error) {
	item := ir.OrderItem{}
	if o.OrderType != tree.OrderByColumn {
		return item, b.fail("ORDER BY INDEX not translated")
	}
	e, err := b.expr(o.Expr)
	if err != nil {
		return item, err
	}
	item.Expr = e
	switch o.Direction {
	case tree.Ascending:
		item.Direction = ir.OrderAsc
	case tree.Descending:
		item.Direction = ir.OrderDesc
	}
	switch o.NullsOrder {
	case tree.NullsFirst:
		item.Nulls = ir.NullsFirst
	case tree.NullsLast:
		item.Nulls = ir.NullsLast
	}
	return item, nil
}

func (b crdbBackend) insertStmt(ins *tree.Insert) (ir.Statement, error) {
	if _, ok := ins.Returning.(*tree.NoReturningClause); !ok {
		return nil, b.fail("RETURNING not translated")
	}
	if ins.OnConflict != nil {
		return nil, b.fail("ON CONFLICT not translated")
	}

	table, err := b.statementTable(ins.Table)
	if err != nil {
		return nil, err
	}
	out := &ir.InsertStmt{Table: *table}
	for _, col := range ins.Columns {
		out.Columns = append(out.Columns, ir.Name(string(col)))
	}

	if ins.Rows == nil || ins.Rows.Select == nil {
		return nil, b.fail("DEFAULT VALUES not translated")
	}
	switch rows := ins.Rows.Select.(type) {
	case *tree.ValuesClause:
		for _, row := range rows.Rows {
			var values []ir.Expr
			for _, e := range row {
				v, err := b.expr(e)
				if err != nil {
					return nil, err
				}
				values = append(values, v)
			}
			out.Rows = append(out.Rows, values)
		}
	default:
		query, err := b.selectStmt(ins.Rows)
		if err != nil {
			return nil, err
		}
		out.Query = query
	}
	return out, nil
}

func (b crdbBackend) updateStmt(upd *tree.Update) (ir.Statement, error) {
	if _, ok := upd.Returning.(*tree.NoReturningClause); !ok {
		return nil, b.fail("RETURNING not translated")
	}
	table, err := b.statementTable(upd.Table)
	if err != nil {
		return nil, err
	}
	out := &ir.UpdateStmt{Table: *table}
	for _, ue := range upd.Exprs {
		if ue.Tuple || len(ue.Names) != 1 {
			return nil, b.fail("tuple assignments not translated")
		}
		value, err := b.expr(ue.Expr)
		if err != nil {
			return nil, err
		}
		out.Assignments = append(out.Assignments, ir.Assignment{
			Column: &ir.ColumnRef{Name: ir.Name(string(ue.Names[0]))},
			Value:  value,
		})
	}
	if upd.Where != nil {
		if out.Where, err = b.expr(upd.Where.Expr); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (b crdbBackend) deleteStmt(del *tree.Delete) (ir.Statement, error) {
	if _, ok := del.Returning.(*tree.NoReturningClause); !ok {
		return nil, b.fail("RETURNING not translated")
	}
	table, err := b.statementTable(del.Table)
	if err != nil {
		return nil, err
	}
	out := &ir.DeleteStmt{Table: *table}
	if del.Where != nil {
		if out.Where, err = b.expr(del.Where.Expr); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// statementTable resolves the target of an INSERT/UPDATE/DELETE to a plain
// table name.
func (b crdbBackend) statementTable(t tree.TableExpr) (*ir.TableName, error) {
	ref, err := b.tableRef(t)
	if err != nil {
		return nil, err
	}
	name, ok := ref.(*ir.TableName)
	if !ok {
		return nil, b.fail("statement target is not a table name")
	}
	return name, nil
}

// ---------- expressions ----------

func (b crdbBackend) expr(e tree.Expr) (ir.Expr, error) {
	switch n := e.(type) {
	case *tree.AndExpr:
		return b.binary("AND", n.Left, n.Right)
	case *tree.OrExpr:
		return b.binary("OR", n.Left, n.Right)
	case *tree.NotExpr:
		inner, err := b.expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Op: "NOT", Expr: inner}, nil
	case *tree.ComparisonExpr:
		return b.comparison(n)
	case *tree.RangeCond:
		return b.rangeCond(n)
	case *tree.IsNullExpr:
		inner, err := b.expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ir.BinaryExpr{Op: "IS", Left: inner, Right: nullLiteral()}, nil
	case *tree.IsNotNullExpr:
		inner, err := b.expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ir.BinaryExpr{Op: "IS NOT", Left: inner, Right: nullLiteral()}, nil
	case *tree.BinaryExpr:
		return b.binary(n.Operator.String(), n.Left, n.Right)
	case *tree.UnaryExpr:
		inner, err := b.expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Op: n.Operator.String(), Expr: inner}, nil
	case *tree.ParenExpr:
		return b.expr(n.Expr)
	case *tree.Tuple:
		list := &ir.ListExpr{}
		for _, el := range n.Exprs {
			v, err := b.expr(el)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, v)
		}
		return list, nil
	case *tree.FuncExpr:
		return b.funcExpr(n)
	case *tree.CaseExpr:
		return b.caseExpr(n)
	case *tree.CastExpr:
		inner, err := b.expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ir.CastExpr{Expr: inner, Type: n.Type.SQLString()}, nil
	case *tree.Subquery:
		query, err := b.subquery(n)
		if err != nil {
			return nil, err
		}
		return &ir.SubqueryExpr{Query: query, Exists: n.Exists}, nil
	case *tree.UnresolvedName:
		return b.name(n)
	case tree.UnqualifiedStar:
		return &ir.Star{}, nil
	case *tree.NumVal:
		return &ir.Literal{Kind: ir.LiteralNumber, Text: n.OrigString()}, nil
	case *tree.StrVal:
		return &ir.Literal{Kind: ir.LiteralString, Text: "'" + strings.ReplaceAll(n.RawString(), "'", "''") + "'"}, nil
	case *tree.DBool:
		if bool(*n) {
			return &ir.Literal{Kind: ir.LiteralBool, Text: "TRUE"}, nil
		}
		return &ir.Literal{Kind: ir.LiteralBool, Text: "FALSE"}, nil
	default:
		if e == tree.DNull {
			return nullLiteral(), nil
		}
		return nil, b.fail("unsupported expression %T", e)
	}
}

func nullLiteral() *ir.Literal {
	return &ir.Literal{Kind: ir.LiteralNull, Text: "NULL"}
}

func (b crdbBackend) binary(op string, left, right tree.Expr) (ir.Expr, error) {
	l, err := b.expr(left)
	if err != nil {
		return nil, err
	}
	r, err := b.expr(right)
	if err != nil {
		return nil, err
	}
	return &ir.BinaryExpr{Op: op, Left: l, Right: r}, nil
}

func (b crdbBackend) comparison(n *tree.ComparisonExpr) (ir.Expr, error) {
	op := n.Operator.String()

	// IS [NOT] NULL parses as IS [NOT] DISTINCT FROM NULL.
	if n.Right == tree.DNull {
		switch op {
		case "IS NOT DISTINCT FROM":
			left, err := b.expr(n.Left)
			if err != nil {
				return nil, err
			}
			return &ir.BinaryExpr{Op: "IS", Left: left, Right: nullLiteral()}, nil
		case "IS DISTINCT FROM":
			left, err := b.expr(n.Left)
			if err != nil {
				return nil, err
			}
			return &ir.BinaryExpr{Op: "IS NOT", Left: left, Right: nullLiteral()}, nil
		}
	}

	switch op {
	case "=", "<", ">", "<=", ">=", "LIKE", "NOT LIKE", "IN", "NOT IN":
	case "!=", "<>":
		op = "!="
	default:
		return nil, b.fail("unsupported comparison %q", op)
	}
	return b.binary(op, n.Left, n.Right)
}

func (b crdbBackend) rangeCond(n *tree.RangeCond) (ir.Expr, error) {
	expr, err := b.expr(n.Left)
	if err != nil {
		return nil, err
	}
	low, err := b.expr(n.From)
	if err != nil {
		return nil, err
	}
	high, err := b.expr(n.To)
	if err != nil {
		return nil, err
	}
	return &ir.BetweenExpr{Not: n.Not, Expr: expr, Low: low, High: high}, nil
}

func (b crdbBackend) name(n *tree.UnresolvedName) (ir.Expr, error) {
	if n.NumParts > 2 {
		return nil, b.fail("deeply qualified name %q", n.String())
	}
	if n.Star {
		star := &ir.Star{}
		if n.NumParts == 2 {
			q := ir.Name(n.Parts[1])
			star.Qualifier = &q
		}
		return star, nil
	}
	col := &ir.ColumnRef{Name: ir.Name(n.Parts[0])}
	if n.NumParts == 2 {
		q := ir.Name(n.Parts[1])
		col.Qualifier = &q
	}
	return col, nil
}

func (b crdbBackend) funcExpr(n *tree.FuncExpr) (ir.Expr, error) {
	if n.Filter != nil {
		return nil, b.fail("FILTER not translated")
	}
	out := &ir.FuncCall{
		Name:     ir.Name(n.Func.String()),
		Distinct: n.Type == tree.DistinctFuncType,
	}
	for _, arg := range n.Exprs {
		if _, ok := arg.(tree.UnqualifiedStar); ok {
			out.Star = true
			continue
		}
		e, err := b.expr(arg)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, e)
	}
	if n.WindowDef != nil {
		over, err := b.windowDef(n.WindowDef)
		if err != nil {
			return nil, err
		}
		out.Over = over
	}
	return out, nil
}

func (b crdbBackend) windowDef(def *tree.WindowDef) (*ir.WindowSpec, error) {
	if def.RefName != "" {
		return nil, b.fail("window references not translated")
	}
	if def.Frame != nil {
		// Frame bound offsets round-trip poorly here; let another backend
		// or the raw path handle them.
		return nil, b.fail("window frames not translated")
	}
	over := &ir.WindowSpec{}
	for _, p := range def.Partitions {
		e, err := b.expr(p)
		if err != nil {
			return nil, err
		}
		over.PartitionBy = append(over.PartitionBy, e)
	}
	for _, o := range def.OrderBy {
		item, err := b.orderItem(o)
		if err != nil {
			return nil, err
		}
		over.OrderBy = append(over.OrderBy, item)
	}
	return over, nil
}

func (b crdbBackend) caseExpr(n *tree.CaseExpr) (ir.Expr, error) {
	out := &ir.CaseExpr{}
	var err error
	if n.Expr != nil {
		if out.Operand, err = b.expr(n.Expr); err != nil {
			return nil, err
		}
	}
	for _, w := range n.Whens {
		cond, err := b.expr(w.Cond)
		if err != nil {
			return nil, err
		}
		result, err := b.expr(w.Val)
		if err != nil {
			return nil, err
		}
		out.Whens = append(out.Whens, ir.When{Cond: cond, Result: result})
	}
	if n.Else != nil {
		if out.Else, err = b.expr(n.Else); err != nil {
			return nil, err
		}
	}
	return out, nil
}
