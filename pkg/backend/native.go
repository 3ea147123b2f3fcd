package backend

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
	"github.com/sqleaner/sqleaner/pkg/ir"
	"github.com/sqleaner/sqleaner/pkg/parser"
)

// nativeBackend wraps the participle grammar in pkg/parser.
type nativeBackend struct{}

// Native returns the native grammar backend.
func Native() Backend { return nativeBackend{} }

func (nativeBackend) Name() string { return "native" }

func (b nativeBackend) Translate(sql string) (ir.Statement, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		pe := &ParseError{Backend: b.Name(), Message: err.Error()}
		var perr participle.Error
		if errors.As(err, &perr) {
			pos := perr.Position()
			pe.Message = perr.Message()
			pe.Line = pos.Line
			pe.Column = pos.Column
		}
		return nil, pe
	}
	return b.normalize(stmt)
}

func (b nativeBackend) fail(detail string) error {
	return &NormalizationError{Backend: b.Name(), Detail: detail}
}

func (b nativeBackend) normalize(stmt *parser.Statement) (ir.Statement, error) {
	switch {
	case stmt.Select != nil:
		return b.selectStmt(stmt.Select)
	case stmt.Insert != nil:
		return b.insertStmt(stmt.Insert)
	case stmt.Update != nil:
		return b.updateStmt(stmt.Update)
	case stmt.Delete != nil:
		return b.deleteStmt(stmt.Delete)
	case stmt.CreateTable != nil:
		return b.createTableStmt(stmt.CreateTable)
	default:
		return nil, b.fail("empty statement")
	}
}

// nativeIdent converts a captured identifier token, quotes included for
// quoted forms, into an IR identifier.
func nativeIdent(text string) ir.Ident {
	if len(text) >= 2 && (text[0] == '`' || text[0] == '"') && text[len(text)-1] == text[0] {
		return ir.Ident{Name: text[1 : len(text)-1], Quoted: true, Quote: text[0]}
	}
	return ir.Ident{Name: text}
}

func nativeIdentPtr(text *string) *ir.Ident {
	if text == nil {
		return nil
	}
	id := nativeIdent(*text)
	return &id
}

func (b nativeBackend) selectStmt(sel *parser.SelectStatement) (*ir.SelectStmt, error) {
	out := &ir.SelectStmt{Distinct: sel.Distinct}

	if sel.With != nil {
		out.With = &ir.WithClause{}
		for i, cte := range sel.With.CTEs {
			query, err := b.selectStmt(cte.Query)
			if err != nil {
				return nil, err
			}
			out.With.CTEs = append(out.With.CTEs, &ir.CTE{
				Name:  nativeIdent(cte.Name),
				Pos:   i,
				Query: query,
			})
		}
	}

	for _, col := range sel.Columns {
		item, err := b.selectItem(col)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, item)
	}

	if sel.From != nil {
		out.From = &ir.FromClause{}
		for _, t := range sel.From.Tables {
			ref, err := b.tableRef(&t)
			if err != nil {
				return nil, err
			}
			out.From.Tables = append(out.From.Tables, ref)
		}
		for _, j := range sel.From.Joins {
			join, err := b.join(&j)
			if err != nil {
				return nil, err
			}
			out.Joins = append(out.Joins, join)
		}
	}

	var err error
	if sel.Where != nil {
		if out.Where, err = b.expr(&sel.Where.Condition); err != nil {
			return nil, err
		}
	}
	if sel.GroupBy != nil {
		for i := range sel.GroupBy.Columns {
			e, err := b.expr(&sel.GroupBy.Columns[i])
			if err != nil {
				return nil, err
			}
			out.GroupBy = append(out.GroupBy, e)
		}
	}
	if sel.Having != nil {
		if out.Having, err = b.expr(&sel.Having.Condition); err != nil {
			return nil, err
		}
	}
	if sel.OrderBy != nil {
		for i := range sel.OrderBy.Columns {
			item, err := b.orderItem(&sel.OrderBy.Columns[i])
			if err != nil {
				return nil, err
			}
			out.OrderBy = append(out.OrderBy, item)
		}
	}
	if sel.Limit != nil {
		if out.Limit, err = b.expr(&sel.Limit.Count); err != nil {
			return nil, err
		}
		if sel.Limit.Offset != nil {
			if out.Offset, err = b.expr(&sel.Limit.Offset.Value); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func (b nativeBackend) selectItem(col parser.SelectColumn) (ir.SelectItem, error) {
	item := ir.SelectItem{Alias: nativeIdentPtr(col.Alias)}
	switch {
	case col.Star:
		item.Expr = &ir.Star{}
	case col.QualifiedStar != nil:
		q := nativeIdent(col.QualifiedStar.Qualifier)
		item.Expr = &ir.Star{Qualifier: &q}
	case col.Expression != nil:
		e, err := b.expr(col.Expression)
		if err != nil {
			return item, err
		}
		item.Expr = e
	default:
		return item, b.fail("empty select item")
	}
	return item, nil
}

func (b nativeBackend) tableRef(ref *parser.TableRef) (ir.TableRef, error) {
	switch {
	case ref.TableName != nil:
		t := ref.TableName
		return &ir.TableName{
			Qualifier: nativeIdentPtr(t.Qualifier),
			Name:      nativeIdent(t.Table),
			Alias:     nativeIdentPtr(t.Alias),
		}, nil
	case ref.Subquery != nil:
		query, err := b.selectStmt(&ref.Subquery.Subquery)
		if err != nil {
			return nil, err
		}
		return &ir.SubqueryRef{Query: query, Alias: nativeIdentPtr(ref.Subquery.Alias)}, nil
	default:
		return nil, b.fail("empty table reference")
	}
}

func (b nativeBackend) join(j *parser.JoinClause) (*ir.Join, error) {
	join := &ir.Join{Kind: ir.JoinPlain, Outer: j.Outer}
	if j.Kind != nil {
		switch *j.Kind {
		case "INNER":
			join.Kind = ir.JoinInner
		case "LEFT":
			join.Kind = ir.JoinLeft
		case "RIGHT":
			join.Kind = ir.JoinRight
		case "FULL":
			join.Kind = ir.JoinFull
		case "CROSS":
			join.Kind = ir.JoinCross
		}
	}
	target, err := b.tableRef(&j.Target)
	if err != nil {
		return nil, err
	}
	join.Target = target
	if j.Condition != nil {
		if j.Condition.On != nil {
			if join.On, err = b.expr(j.Condition.On); err != nil {
				return nil, err
			}
		}
		for _, col := range j.Condition.Using {
			join.Using = append(join.Using, nativeIdent(col))
		}
	}
	return join, nil
}

func (b nativeBackend) orderItem(col *parser.OrderByColumn) (ir.OrderItem, error) {
	item := ir.OrderItem{}
	e, err := b.expr(&col.Expression)
	if err != nil {
		return item, err
	}
	item.Expr = e
	if col.Direction != nil {
		if *col.Direction == "DESC" {
			item.Direction = ir.OrderDesc
		} else {
			item.Direction = ir.OrderAsc
		}
	}
	if col.Nulls != nil {
		if *col.Nulls == "FIRST" {
			item.Nulls = ir.NullsFirst
		} else {
			item.Nulls = ir.NullsLast
		}
	}
	return item, nil
}

func (b nativeBackend) insertStmt(ins *parser.InsertStatement) (ir.Statement, error) {
	out := &ir.InsertStmt{
		Table: ir.TableName{Qualifier: nativeIdentPtr(ins.Qualifier), Name: nativeIdent(ins.Table)},
	}
	for _, col := range ins.Columns {
		out.Columns = append(out.Columns, nativeIdent(col))
	}
	for _, row := range ins.Rows {
		var values []ir.Expr
		for i := range row.Values {
			e, err := b.expr(&row.Values[i])
			if err != nil {
				return nil, err
			}
			values = append(values, e)
		}
		out.Rows = append(out.Rows, values)
	}
	if ins.Query != nil {
		query, err := b.selectStmt(ins.Query)
		if err != nil {
			return nil, err
		}
		out.Query = query
	}
	return out, nil
}

func (b nativeBackend) updateStmt(upd *parser.UpdateStatement) (ir.Statement, error) {
	out := &ir.UpdateStmt{
		Table: ir.TableName{Qualifier: nativeIdentPtr(upd.Qualifier), Name: nativeIdent(upd.Table)},
	}
	for i := range upd.Assignments {
		a := &upd.Assignments[i]
		value, err := b.expr(&a.Value)
		if err != nil {
			return nil, err
		}
		out.Assignments = append(out.Assignments, ir.Assignment{
			Column: &ir.ColumnRef{Qualifier: nativeIdentPtr(a.Column.Qualifier), Name: nativeIdent(a.Column.Name)},
			Value:  value,
		})
	}
	if upd.Where != nil {
		where, err := b.expr(&upd.Where.Condition)
		if err != nil {
			return nil, err
		}
		out.Where = where
	}
	return out, nil
}

func (b nativeBackend) deleteStmt(del *parser.DeleteStatement) (ir.Statement, error) {
	out := &ir.DeleteStmt{
		Table: ir.TableName{Qualifier: nativeIdentPtr(del.Qualifier), Name: nativeIdent(del.Table)},
	}
	if del.Where != nil {
		where, err := b.expr(&del.Where.Condition)
		if err != nil {
			return nil, err
		}
		out.Where = where
	}
	return out, nil
}

func (b nativeBackend) createTableStmt(ct *parser.CreateTableStatement) (ir.Statement, error) {
	out := &ir.CreateTableStmt{
		Name:        ir.TableName{Qualifier: nativeIdentPtr(ct.Qualifier), Name: nativeIdent(ct.Name)},
		IfNotExists: ct.IfNotExists,
	}
	for _, def := range ct.Defs {
		switch {
		case def.PrimaryKey != nil:
			for _, col := range def.PrimaryKey.Columns {
				out.PrimaryKey = append(out.PrimaryKey, nativeIdent(col))
			}
		case def.Column != nil:
			col := ir.ColumnDef{
				Name: nativeIdent(def.Column.Name),
				Type: renderDataType(&def.Column.Type),
			}
			for _, opt := range def.Column.Options {
				switch {
				case opt.NotNull:
					col.NotNull = true
				case opt.PrimaryKey:
					col.PrimaryKey = true
				case opt.Unique:
					col.Unique = true
				case opt.Default != nil:
					e, err := b.expr(&opt.Default.Value)
					if err != nil {
						return nil, err
					}
					col.Default = e
				}
			}
			out.Columns = append(out.Columns, col)
		}
	}
	return out, nil
}

func renderDataType(dt *parser.DataType) string {
	if len(dt.Args) == 0 {
		return dt.Name
	}
	return dt.Name + "(" + strings.Join(dt.Args, ", ") + ")"
}

// ---------- expressions ----------

func (b nativeBackend) expr(e *parser.Expression) (ir.Expr, error) {
	if e.Case != nil {
		return b.caseExpr(e.Case)
	}
	if e.Or != nil {
		return b.orExpr(e.Or)
	}
	return nil, b.fail("empty expression")
}

func (b nativeBackend) caseExpr(c *parser.CaseExpression) (ir.Expr, error) {
	out := &ir.CaseExpr{}
	var err error
	if c.Operand != nil {
		if out.Operand, err = b.expr(c.Operand); err != nil {
			return nil, err
		}
	}
	for i := range c.Whens {
		cond, err := b.expr(&c.Whens[i].Cond)
		if err != nil {
			return nil, err
		}
		result, err := b.expr(&c.Whens[i].Result)
		if err != nil {
			return nil, err
		}
		out.Whens = append(out.Whens, ir.When{Cond: cond, Result: result})
	}
	if c.Else != nil {
		if out.Else, err = b.expr(c.Else); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (b nativeBackend) orExpr(o *parser.OrExpression) (ir.Expr, error) {
	left, err := b.andExpr(o.And)
	if err != nil {
		return nil, err
	}
	for _, rest := range o.Rest {
		right, err := b.andExpr(rest.And)
		if err != nil {
			return nil, err
		}
		left = &ir.BinaryExpr{Op: "OR", Left: left, Right: right}
	}
	return left, nil
}

func (b nativeBackend) andExpr(a *parser.AndExpression) (ir.Expr, error) {
	left, err := b.notExpr(a.Not)
	if err != nil {
		return nil, err
	}
	for _, rest := range a.Rest {
		right, err := b.notExpr(rest.Not)
		if err != nil {
			return nil, err
		}
		left = &ir.BinaryExpr{Op: "AND", Left: left, Right: right}
	}
	return left, nil
}

func (b nativeBackend) notExpr(n *parser.NotExpression) (ir.Expr, error) {
	inner, err := b.comparison(n.Comparison)
	if err != nil {
		return nil, err
	}
	if n.Not {
		return &ir.UnaryExpr{Op: "NOT", Expr: inner}, nil
	}
	return inner, nil
}

func (b nativeBackend) comparison(c *parser.ComparisonExpression) (ir.Expr, error) {
	left, err := b.addition(c.Addition)
	if err != nil {
		return nil, err
	}
	if c.Rest != nil {
		switch {
		case c.Rest.SimpleOp != nil:
			right, err := b.addition(c.Rest.SimpleOp.Addition)
			if err != nil {
				return nil, err
			}
			left = &ir.BinaryExpr{Op: simpleOp(c.Rest.SimpleOp.Op), Left: left, Right: right}
		case c.Rest.InOp != nil:
			right, err := b.inExpr(c.Rest.InOp.Expr)
			if err != nil {
				return nil, err
			}
			op := "IN"
			if c.Rest.InOp.Not {
				op = "NOT IN"
			}
			left = &ir.BinaryExpr{Op: op, Left: left, Right: right}
		case c.Rest.BetweenOp != nil:
			low, err := b.addition(&c.Rest.BetweenOp.Low)
			if err != nil {
				return nil, err
			}
			high, err := b.addition(&c.Rest.BetweenOp.High)
			if err != nil {
				return nil, err
			}
			left = &ir.BetweenExpr{Not: c.Rest.BetweenOp.Not, Expr: left, Low: low, High: high}
		}
	}
	if c.IsNull != nil {
		op := "IS"
		if c.IsNull.Not {
			op = "IS NOT"
		}
		left = &ir.BinaryExpr{Op: op, Left: left, Right: &ir.Literal{Kind: ir.LiteralNull, Text: "NULL"}}
	}
	return left, nil
}

func simpleOp(op *parser.SimpleComparisonOp) string {
	switch {
	case op.Eq:
		return "="
	case op.NotEq:
		return "!="
	case op.LtEq:
		return "<="
	case op.GtEq:
		return ">="
	case op.Lt:
		return "<"
	case op.Gt:
		return ">"
	case op.NotLike:
		return "NOT LIKE"
	case op.Like:
		return "LIKE"
	}
	return "="
}

func (b nativeBackend) inExpr(in *parser.InExpression) (ir.Expr, error) {
	if in.Subquery != nil {
		query, err := b.selectStmt(&in.Subquery.Query)
		if err != nil {
			return nil, err
		}
		return &ir.SubqueryExpr{Query: query}, nil
	}
	list := &ir.ListExpr{}
	for i := range in.List {
		e, err := b.expr(&in.List[i])
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, e)
	}
	return list, nil
}

func (b nativeBackend) addition(a *parser.AdditionExpression) (ir.Expr, error) {
	left, err := b.multiplication(a.Multiplication)
	if err != nil {
		return nil, err
	}
	for _, rest := range a.Rest {
		right, err := b.multiplication(rest.Multiplication)
		if err != nil {
			return nil, err
		}
		left = &ir.BinaryExpr{Op: rest.Op, Left: left, Right: right}
	}
	return left, nil
}

func (b nativeBackend) multiplication(m *parser.MultiplicationExpression) (ir.Expr, error) {
	left, err := b.unary(m.Unary)
	if err != nil {
		return nil, err
	}
	for _, rest := range m.Rest {
		right, err := b.unary(rest.Unary)
		if err != nil {
			return nil, err
		}
		left = &ir.BinaryExpr{Op: rest.Op, Left: left, Right: right}
	}
	return left, nil
}

func (b nativeBackend) unary(u *parser.UnaryExpression) (ir.Expr, error) {
	inner, err := b.primary(u.Primary)
	if err != nil {
		return nil, err
	}
	if u.Op != "" {
		return &ir.UnaryExpr{Op: u.Op, Expr: inner}, nil
	}
	return inner, nil
}

func (b nativeBackend) primary(p *parser.PrimaryExpression) (ir.Expr, error) {
	switch {
	case p.Literal != nil:
		return nativeLiteral(p.Literal), nil
	case p.Interval != nil:
		return nativeInterval(p.Interval), nil
	case p.Extract != nil:
		inner, err := b.expr(&p.Extract.Expr)
		if err != nil {
			return nil, err
		}
		return &ir.ExtractExpr{Part: strings.ToUpper(p.Extract.Part), Expr: inner}, nil
	case p.Cast != nil:
		inner, err := b.expr(&p.Cast.Expression)
		if err != nil {
			return nil, err
		}
		return &ir.CastExpr{Expr: inner, Type: renderDataType(&p.Cast.Type)}, nil
	case p.Function != nil:
		return b.funcCall(p.Function)
	case p.Subquery != nil:
		query, err := b.selectStmt(&p.Subquery.Query)
		if err != nil {
			return nil, err
		}
		return &ir.SubqueryExpr{Query: query, Exists: p.Subquery.Exists}, nil
	case p.Identifier != nil:
		return &ir.ColumnRef{
			Qualifier: nativeIdentPtr(p.Identifier.Qualifier),
			Name:      nativeIdent(p.Identifier.Name),
		}, nil
	case p.Parentheses != nil:
		return b.expr(&p.Parentheses.Expression)
	case p.Tuple != nil:
		list := &ir.ListExpr{}
		for i := range p.Tuple.Elements {
			e, err := b.expr(&p.Tuple.Elements[i])
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, e)
		}
		return list, nil
	default:
		return nil, b.fail("empty primary expression")
	}
}

func nativeLiteral(lit *parser.Literal) ir.Expr {
	switch {
	case lit.StringValue != nil:
		return &ir.Literal{Kind: ir.LiteralString, Text: *lit.StringValue}
	case lit.Number != nil:
		return &ir.Literal{Kind: ir.LiteralNumber, Text: *lit.Number}
	case lit.Boolean != nil:
		return &ir.Literal{Kind: ir.LiteralBool, Text: strings.ToUpper(*lit.Boolean)}
	default:
		return &ir.Literal{Kind: ir.LiteralNull, Text: "NULL"}
	}
}

func nativeInterval(iv *parser.IntervalExpr) ir.Expr {
	if iv.Str != nil {
		return &ir.UnaryExpr{Op: "INTERVAL", Expr: &ir.Literal{Kind: ir.LiteralString, Text: *iv.Str}}
	}
	text := ""
	if iv.Num != nil {
		text = *iv.Num
	}
	if iv.Unit != nil {
		text += " " + strings.ToUpper(*iv.Unit)
	}
	return &ir.UnaryExpr{Op: "INTERVAL", Expr: &ir.Literal{Kind: ir.LiteralNumber, Text: text}}
}

func (b nativeBackend) funcCall(fn *parser.FunctionCall) (ir.Expr, error) {
	out := &ir.FuncCall{Name: nativeIdent(fn.Name), Distinct: fn.Distinct}
	for i := range fn.Args {
		arg := &fn.Args[i]
		if arg.Star {
			out.Star = true
			continue
		}
		e, err := b.expr(arg.Expression)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, e)
	}
	if fn.Over != nil {
		over := &ir.WindowSpec{}
		for i := range fn.Over.PartitionBy {
			e, err := b.expr(&fn.Over.PartitionBy[i])
			if err != nil {
				return nil, err
			}
			over.PartitionBy = append(over.PartitionBy, e)
		}
		for i := range fn.Over.OrderBy {
			item, err := b.orderItem(&fn.Over.OrderBy[i])
			if err != nil {
				return nil, err
			}
			over.OrderBy = append(over.OrderBy, item)
		}
		if fn.Over.Frame != nil {
			frame, err := b.windowFrame(fn.Over.Frame)
			if err != nil {
				return nil, err
			}
			over.Frame = frame
		}
		out.Over = over
	}
	return out, nil
}

func (b nativeBackend) windowFrame(wf *parser.WindowFrame) (*ir.WindowFrame, error) {
	start, err := b.frameBound(&wf.Start)
	if err != nil {
		return nil, err
	}
	frame := &ir.WindowFrame{Unit: wf.Unit, Start: start}
	if wf.End != nil {
		end, err := b.frameBound(wf.End)
		if err != nil {
			return nil, err
		}
		frame.End = &end
	}
	return frame, nil
}

func (b nativeBackend) frameBound(fb *parser.FrameBound) (ir.FrameBound, error) {
	var bound ir.FrameBound
	following := fb.Direction != nil && *fb.Direction == "FOLLOWING"
	switch {
	case fb.Unbounded:
		if following {
			bound.Kind = ir.BoundUnboundedFollowing
		} else {
			bound.Kind = ir.BoundUnboundedPreceding
		}
	case fb.Current:
		bound.Kind = ir.BoundCurrentRow
	case fb.Offset != nil:
		e, err := b.expr(fb.Offset)
		if err != nil {
			return bound, err
		}
		bound.Offset = e
		if following {
			bound.Kind = ir.BoundOffsetFollowing
		} else {
			bound.Kind = ir.BoundOffsetPreceding
		}
	}
	return bound, nil
}
