package backend

import (
	"fmt"
	"strings"

	"github.com/sqleaner/sqleaner/pkg/ir"
	"github.com/xwb1989/sqlparser"
)

// vitessBackend adapts the vitess MySQL-dialect parser. It runs last: the
// parser drops identifier quoting and has no CTE or window support, so it
// only catches MySQL-specific syntax the other backends reject.
type vitessBackend struct{}

// Vitess returns the vitess parser backend.
func Vitess() Backend { return vitessBackend{} }

func (vitessBackend) Name() string { return "vitess" }

func (b vitessBackend) Translate(sql string) (ir.Statement, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, &ParseError{Backend: b.Name(), Message: err.Error()}
	}
	return b.normalize(stmt, sql)
}

func (b vitessBackend) fail(format string, args ...interface{}) error {
	return &NormalizationError{Backend: b.Name(), Detail: fmt.Sprintf(format, args...)}
}

func (b vitessBackend) normalize(stmt sqlparser.Statement, sql string) (ir.Statement, error) {
	switch n := stmt.(type) {
	case *sqlparser.Select:
		return b.selectStmt(n)
	case *sqlparser.Insert:
		return b.insertStmt(n)
	case *sqlparser.Update:
		return b.updateStmt(n)
	case *sqlparser.Delete:
		return b.deleteStmt(n)
	case *sqlparser.Union:
		return nil, b.fail("UNION not translated")
	case *sqlparser.DDL:
		// Column types and options come back lossy; DDL is never printed
		// structurally from this parser.
		return nil, b.fail("DDL not translated")
	default:
		return &ir.RawStmt{Text: strings.TrimSpace(sql)}, nil
	}
}

func (b vitessBackend) selectStmt(sel *sqlparser.Select) (*ir.SelectStmt, error) {
	out := &ir.SelectStmt{Distinct: sel.Distinct != ""}

	for _, se := range sel.SelectExprs {
		item, err := b.selectItem(se)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, item)
	}

	if len(sel.From) > 0 {
		out.From = &ir.FromClause{}
		for _, t := range sel.From {
			if err := b.fromTable(t, out); err != nil {
				return nil, err
			}
		}
	}

	var err error
	if sel.Where != nil {
		if out.Where, err = b.expr(sel.Where.Expr); err != nil {
			return nil, err
		}
	}
	for _, g := range sel.GroupBy {
		e, err := b.expr(g)
		if err != nil {
			return nil, err
		}
		out.GroupBy = append(out.GroupBy, e)
	}
	if sel.Having != nil {
		if out.Having, err = b.expr(sel.Having.Expr); err != nil {
			return nil, err
		}
	}
	for _, o := range sel.OrderBy {
		item, err := b.orderItem(o)
		if err != nil {
			return nil, err
		}
		out.OrderBy = append(out.OrderBy, item)
	}
	if sel.Limit != nil {
		if out.Limit, err = b.expr(sel.Limit.Rowcount); err != nil {
			return nil, err
		}
		if sel.Limit.Offset != nil {
			if out.Offset, err = b.expr(sel.Limit.Offset); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func (b vitessBackend) selectItem(se sqlparser.SelectExpr) (ir.SelectItem, error) {
	item := ir.SelectItem{}
	switch n := se.(type) {
	case *sqlparser.StarExpr:
		star := &ir.Star{}
		if !n.TableName.Name.IsEmpty() {
			q := ir.Name(n.TableName.Name.String())
			star.Qualifier = &q
		}
		item.Expr = star
	case *sqlparser.AliasedExpr:
		e, err := b.expr(n.Expr)
		if err != nil {
			return item, err
		}
		item.Expr = e
		if !n.As.IsEmpty() {
			alias := ir.Name(n.As.String())
			item.Alias = &alias
		}
	default:
		return item, b.fail("unsupported select expression %T", se)
	}
	return item, nil
}

func (b vitessBackend) fromTable(t sqlparser.TableExpr, out *ir.SelectStmt) error {
	switch n := t.(type) {
	case *sqlparser.JoinTableExpr:
		if err := b.fromTable(n.LeftExpr, out); err != nil {
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

func (b vitessBackend) join(n *sqlparser.JoinTableExpr) (*ir.Join, error) {
	join := &ir.Join{}
	switch n.Join {
	case sqlparser.JoinStr:
		// The grammar reduces CROSS JOIN to a plain join string.
		join.Kind = ir.JoinPlain
	case sqlparser.LeftJoinStr:
		join.Kind = ir.JoinLeft
	case sqlparser.RightJoinStr:
		join.Kind = ir.JoinRight
	default:
		return nil, b.fail("unsupported join %q", n.Join)
	}

	target, err := b.tableRef(n.RightExpr)
	if err != nil {
		return nil, err
	}
	join.Target = target

	if n.Condition.On != nil {
		if join.On, err = b.expr(n.Condition.On); err != nil {
			return nil, err
		}
	}
	for _, col := range n.Condition.Using {
		join.Using = append(join.Using, ir.Name(col.String()))
	}
	return join, nil
}

func (b vitessBackend) tableRef(t sqlparser.TableExpr) (ir.TableRef, error) {
	switch n := t.(type) {
	case *sqlparser.AliasedTableExpr:
		ref, err := b.simpleTableRef(n.Expr)
		if err != nil {
			return nil, err
		}
		if !n.As.IsEmpty() {
			alias := ir.Name(n.As.String())
			switch r := ref.(type) {
			case *ir.TableName:
				r.Alias = &alias
			case *ir.SubqueryRef:
				r.Alias = &alias
			}
		}
		return ref, nil
	case *sqlparser.ParenTableExpr:
		if len(n.Exprs) != 1 {
			return nil, b.fail("parenthesized table lists not translated")
		}
		return b.tableRef(n.Exprs[0])
	default:
		return nil, b.fail("unsupported table expression %T", t)
	}
}

func (b vitessBackend) simpleTableRef(t sqlparser.SimpleTableExpr) (ir.TableRef, error) {
	switch n := t.(type) {
	case sqlparser.TableName:
		name := &ir.TableName{Name: ir.Name(n.Name.String())}
		if !n.Qualifier.IsEmpty() {
			q := ir.Name(n.Qualifier.String())
			name.Qualifier = &q
		}
		return name, nil
	case *sqlparser.Subquery:
		query, err := b.subquery(n)
		if err != nil {
			return nil, err
		}
		return &ir.SubqueryRef{Query: query}, nil
	default:
		return nil, b.fail("unsupported table expression %T", t)
	}
}

func (b vitessBackend) subquery(sub *sqlparser.Subquery) (*ir.SelectStmt, error) {
	sel, ok := sub.Select.(*sqlparser.Select)
	if !ok {
		return nil, b.fail("unsupported subquery body %T", sub.Select)
	}
	return b.selectStmt(sel)
}

func (b vitessBackend) orderItem(o *sqlparser.Order) (ir.OrderItem, error) {
	item := ir.OrderItem{}
	e, err := b.expr(o.Expr)
	if err != nil {
		return item, err
	}
	item.Expr = e
	switch o.Direction {
	case sqlparser.AscScr:
		item.Direction = ir.OrderAsc
	case sqlparser.DescScr:
		item.Direction = ir.OrderDesc
	}
	return item, nil
}

func (b vitessBackend) insertStmt(ins *sqlparser.Insert) (ir.Statement, error) {
	if ins.Action != sqlparser.InsertStr {
		return nil, b.fail("%s not translated", strings.ToUpper(ins.Action))
	}
	if ins.OnDup != nil {
		return nil, b.fail("ON DUPLICATE KEY not translated")
	}

	out := &ir.InsertStmt{Table: ir.TableName{Name: ir.Name(ins.Table.Name.String())}}
	if !ins.Table.Qualifier.IsEmpty() {
		q := ir.Name(ins.Table.Qualifier.String())
		out.Table.Qualifier = &q
	}
	for _, col := range ins.Columns {
		out.Columns = append(out.Columns, ir.Name(col.String()))
	}

	switch rows := ins.Rows.(type) {
	case sqlparser.Values:
		for _, row := range rows {
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
	case *sqlparser.Select:
		query, err := b.selectStmt(rows)
		if err != nil {
			return nil, err
		}
		out.Query = query
	default:
		return nil, b.fail("unsupported insert source %T", ins.Rows)
	}
	return out, nil
}

func (b vitessBackend) updateStmt(upd *sqlparser.Update) (ir.Statement, error) {
	table, err := b.singleTable(upd.TableExprs)
	if err != nil {
		return nil, err
	}
	if len(upd.OrderBy) > 0 || upd.Limit != nil {
		return nil, b.fail("UPDATE with ORDER BY or LIMIT not translated")
	}

	out := &ir.UpdateStmt{Table: *table}
	for _, ue := range upd.Exprs {
		value, err := b.expr(ue.Expr)
		if err != nil {
			return nil, err
		}
		col, err := b.colName(ue.Name)
		if err != nil {
			return nil, err
		}
		out.Assignments = append(out.Assignments, ir.Assignment{Column: col, Value: value})
	}
	if upd.Where != nil {
		if out.Where, err = b.expr(upd.Where.Expr); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (b vitessBackend) deleteStmt(del *sqlparser.Delete) (ir.Statement, error) {
	if len(del.Targets) > 0 {
		return nil, b.fail("multi-table DELETE not translated")
	}
	if len(del.OrderBy) > 0 || del.Limit != nil {
		return nil, b.fail("DELETE with ORDER BY or LIMIT not translated")
	}
	table, err := b.singleTable(del.TableExprs)
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

// singleTable resolves a statement target list to one unaliased table name.
func (b vitessBackend) singleTable(exprs sqlparser.TableExprs) (*ir.TableName, error) {
	if len(exprs) != 1 {
		return nil, b.fail("multi-table statements not translated")
	}
	ref, err := b.tableRef(exprs[0])
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

func (b vitessBackend) expr(e sqlparser.Expr) (ir.Expr, error) {
	switch n := e.(type) {
	case *sqlparser.AndExpr:
		return b.binary("AND", n.Left, n.Right)
	case *sqlparser.OrExpr:
		return b.binary("OR", n.Left, n.Right)
	case *sqlparser.NotExpr:
		inner, err := b.expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Op: "NOT", Expr: inner}, nil
	case *sqlparser.ParenExpr:
		return b.expr(n.Expr)
	case *sqlparser.ComparisonExpr:
		return b.comparison(n)
	case *sqlparser.RangeCond:
		return b.rangeCond(n)
	case *sqlparser.IsExpr:
		return b.isExpr(n)
	case *sqlparser.BinaryExpr:
		return b.binary(n.Operator, n.Left, n.Right)
	case *sqlparser.UnaryExpr:
		inner, err := b.expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Op: strings.TrimSpace(n.Operator), Expr: inner}, nil
	case *sqlparser.SQLVal:
		return b.sqlVal(n)
	case *sqlparser.NullVal:
		return nullLiteral(), nil
	case sqlparser.BoolVal:
		if n {
			return &ir.Literal{Kind: ir.LiteralBool, Text: "TRUE"}, nil
		}
		return &ir.Literal{Kind: ir.LiteralBool, Text: "FALSE"}, nil
	case *sqlparser.ColName:
		return b.colName(n)
	case sqlparser.ValTuple:
		list := &ir.ListExpr{}
		for _, el := range n {
			v, err := b.expr(el)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, v)
		}
		return list, nil
	case *sqlparser.Subquery:
		query, err := b.subquery(n)
		if err != nil {
			return nil, err
		}
		return &ir.SubqueryExpr{Query: query}, nil
	case *sqlparser.ExistsExpr:
		query, err := b.subquery(n.Subquery)
		if err != nil {
			return nil, err
		}
		return &ir.SubqueryExpr{Query: query, Exists: true}, nil
	case *sqlparser.FuncExpr:
		return b.funcExpr(n)
	case *sqlparser.CaseExpr:
		return b.caseExpr(n)
	case *sqlparser.ConvertExpr:
		inner, err := b.expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ir.CastExpr{Expr: inner, Type: strings.ToUpper(n.Type.Type)}, nil
	case *sqlparser.IntervalExpr:
		return nil, b.fail("INTERVAL not translated")
	default:
		return nil, b.fail("unsupported expression %T", e)
	}
}

func (b vitessBackend) binary(op string, left, right sqlparser.Expr) (ir.Expr, error) {
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

func (b vitessBackend) comparison(n *sqlparser.ComparisonExpr) (ir.Expr, error) {
	var op string
	switch n.Operator {
	case sqlparser.EqualStr:
		op = "="
	case sqlparser.NotEqualStr:
		op = "!="
	case sqlparser.LessThanStr:
		op = "<"
	case sqlparser.GreaterThanStr:
		op = ">"
	case sqlparser.LessEqualStr:
		op = "<="
	case sqlparser.GreaterEqualStr:
		op = ">="
	case sqlparser.InStr:
		op = "IN"
	case sqlparser.NotInStr:
		op = "NOT IN"
	case sqlparser.LikeStr:
		op = "LIKE"
	case sqlparser.NotLikeStr:
		op = "NOT LIKE"
	default:
		return nil, b.fail("unsupported comparison %q", n.Operator)
	}
	return b.binary(op, n.Left, n.Right)
}

func (b vitessBackend) rangeCond(n *sqlparser.RangeCond) (ir.Expr, error) {
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
	return &ir.BetweenExpr{
		Not:  n.Operator == sqlparser.NotBetweenStr,
		Expr: expr,
		Low:  low,
		High: high,
	}, nil
}

func (b vitessBackend) isExpr(n *sqlparser.IsExpr) (ir.Expr, error) {
	inner, err := b.expr(n.Expr)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case sqlparser.IsNullStr:
		return &ir.BinaryExpr{Op: "IS", Left: inner, Right: nullLiteral()}, nil
	case sqlparser.IsNotNullStr:
		return &ir.BinaryExpr{Op: "IS NOT", Left: inner, Right: nullLiteral()}, nil
	default:
		return nil, b.fail("unsupported IS operator %q", n.Operator)
	}
}

func (b vitessBackend) sqlVal(n *sqlparser.SQLVal) (ir.Expr, error) {
	switch n.Type {
	case sqlparser.StrVal:
		return &ir.Literal{Kind: ir.LiteralString, Text: "'" + strings.ReplaceAll(string(n.Val), "'", "''") + "'"}, nil
	case sqlparser.IntVal, sqlparser.FloatVal:
		return &ir.Literal{Kind: ir.LiteralNumber, Text: string(n.Val)}, nil
	default:
		return nil, b.fail("unsupported literal type %d", n.Type)
	}
}

func (b vitessBackend) colName(n *sqlparser.ColName) (*ir.ColumnRef, error) {
	col := &ir.ColumnRef{Name: ir.Name(n.Name.String())}
	if !n.Qualifier.Name.IsEmpty() {
		if !n.Qualifier.Qualifier.IsEmpty() {
			return nil, b.fail("deeply qualified column names not translated")
		}
		q := ir.Name(n.Qualifier.Name.String())
		col.Qualifier = &q
	}
	return col, nil
}

func (b vitessBackend) funcExpr(n *sqlparser.FuncExpr) (ir.Expr, error) {
	if !n.Qualifier.IsEmpty() {
		return nil, b.fail("qualified function names not translated")
	}
	out := &ir.FuncCall{Name: ir.Name(n.Name.String()), Distinct: n.Distinct}
	for _, arg := range n.Exprs {
		switch a := arg.(type) {
		case *sqlparser.StarExpr:
			out.Star = true
		case *sqlparser.AliasedExpr:
			e, err := b.expr(a.Expr)
			if err != nil {
				return nil, err
			}
			out.Args = append(out.Args, e)
		default:
			return nil, b.fail("unsupported function argument %T", arg)
		}
	}
	return out, nil
}

func (b vitessBackend) caseExpr(n *sqlparser.CaseExpr) (ir.Expr, error) {
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
