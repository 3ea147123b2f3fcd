package format

import (
	"strings"

	"github.com/sqleaner/sqleaner/pkg/ir"
)

// Operator precedence levels, lowest first. Parenthesization is derived from
// these rather than preserved from the source, so redundant input parentheses
// disappear and required ones always reappear.
const (
	precOr = iota + 1
	precAnd
	precNot
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precPrimary
)

func opPrec(op string) int {
	switch op {
	case "OR":
		return precOr
	case "AND":
		return precAnd
	case "+", "-", "||":
		return precAdditive
	case "*", "/", "%":
		return precMultiplicative
	default:
		// Comparisons, LIKE, IN, IS.
		return precComparison
	}
}

// associative reports whether chained applications of op can drop their
// grouping without changing meaning.
func associative(op string) bool {
	switch op {
	case "AND", "OR", "+", "*", "||":
		return true
	}
	return false
}

func exprPrec(e ir.Expr) int {
	switch n := e.(type) {
	case *ir.BinaryExpr:
		return opPrec(n.Op)
	case *ir.UnaryExpr:
		if n.Op == "NOT" {
			return precNot
		}
		return precUnary
	case *ir.BetweenExpr:
		return precComparison
	default:
		return precPrimary
	}
}

// expr renders an expression with no outer context.
func (f *Formatter) expr(e ir.Expr) string {
	return f.operand(e, 0)
}

// operand renders an expression appearing under an operator of the given
// precedence, adding parentheses when the child binds more loosely.
func (f *Formatter) operand(e ir.Expr, parent int) string {
	s := f.render(e)
	if exprPrec(e) < parent {
		return "(" + s + ")"
	}
	return s
}

func (f *Formatter) render(e ir.Expr) string {
	switch n := e.(type) {
	case *ir.Literal:
		return n.Text
	case *ir.ColumnRef:
		s := f.identifier(n.Name)
		if n.Qualifier != nil {
			s = f.identifier(*n.Qualifier) + "." + s
		}
		return s
	case *ir.Star:
		if n.Qualifier != nil {
			return f.identifier(*n.Qualifier) + ".*"
		}
		return "*"
	case *ir.FuncCall:
		return f.funcCall(n)
	case *ir.BinaryExpr:
		return f.binary(n)
	case *ir.UnaryExpr:
		return f.unary(n)
	case *ir.BetweenExpr:
		return f.between(n)
	case *ir.CaseExpr:
		return f.caseExpr(n)
	case *ir.SubqueryExpr:
		if n.Exists {
			return f.keyword("EXISTS") + " (" + f.inlineSelect(n.Query) + ")"
		}
		return "(" + f.inlineSelect(n.Query) + ")"
	case *ir.ListExpr:
		items := make([]string, len(n.Items))
		for i, item := range n.Items {
			items[i] = f.expr(item)
		}
		return "(" + strings.Join(items, ", ") + ")"
	case *ir.CastExpr:
		return f.keyword("CAST") + "(" + f.expr(n.Expr) + " " + f.keyword("AS") + " " + strings.ToUpper(n.Type) + ")"
	case *ir.ExtractExpr:
		return f.keyword("EXTRACT") + "(" + f.keyword(n.Part) + " " + f.keyword("FROM") + " " + f.expr(n.Expr) + ")"
	default:
		return ""
	}
}

func (f *Formatter) binary(n *ir.BinaryExpr) string {
	p := opPrec(n.Op)
	left := f.operand(n.Left, p)

	rp := exprPrec(n.Right)
	right := f.render(n.Right)
	if rp < p || (rp == p && !associative(n.Op)) {
		right = "(" + right + ")"
	}
	return left + " " + n.Op + " " + right
}

func (f *Formatter) unary(n *ir.UnaryExpr) string {
	switch n.Op {
	case "NOT":
		return f.keyword("NOT") + " " + f.operand(n.Expr, precNot)
	case "INTERVAL":
		return f.keyword("INTERVAL") + " " + f.expr(n.Expr)
	default:
		return n.Op + f.operand(n.Expr, precUnary)
	}
}

func (f *Formatter) between(n *ir.BetweenExpr) string {
	kw := f.keyword("BETWEEN")
	if n.Not {
		kw = f.keyword("NOT BETWEEN")
	}
	return f.operand(n.Expr, precComparison) + " " + kw + " " +
		f.operand(n.Low, precAdditive) + " " + f.keyword("AND") + " " + f.operand(n.High, precAdditive)
}

func (f *Formatter) caseExpr(n *ir.CaseExpr) string {
	var parts []string
	parts = append(parts, f.keyword("CASE"))
	if n.Operand != nil {
		parts = append(parts, f.expr(n.Operand))
	}
	for _, w := range n.Whens {
		parts = append(parts, f.keyword("WHEN"), f.expr(w.Cond), f.keyword("THEN"), f.expr(w.Result))
	}
	if n.Else != nil {
		parts = append(parts, f.keyword("ELSE"), f.expr(n.Else))
	}
	parts = append(parts, f.keyword("END"))
	return strings.Join(parts, " ")
}

func (f *Formatter) funcCall(n *ir.FuncCall) string {
	var args []string
	if n.Star {
		args = append(args, "*")
	}
	for _, arg := range n.Args {
		args = append(args, f.expr(arg))
	}

	s := f.functionName(n.Name) + "("
	if n.Distinct {
		s += f.keyword("DISTINCT") + " "
	}
	s += strings.Join(args, ", ") + ")"

	if n.Over != nil {
		s += " " + f.keyword("OVER") + " (" + f.windowSpec(n.Over) + ")"
	}
	return s
}

func (f *Formatter) windowSpec(w *ir.WindowSpec) string {
	var parts []string
	if len(w.PartitionBy) > 0 {
		exprs := make([]string, len(w.PartitionBy))
		for i, e := range w.PartitionBy {
			exprs[i] = f.expr(e)
		}
		parts = append(parts, f.keyword("PARTITION BY")+" "+strings.Join(exprs, ", "))
	}
	if len(w.OrderBy) > 0 {
		items := make([]string, len(w.OrderBy))
		for i := range w.OrderBy {
			items[i] = f.orderItem(w.OrderBy[i])
		}
		parts = append(parts, f.keyword("ORDER BY")+" "+strings.Join(items, ", "))
	}
	if w.Frame != nil {
		parts = append(parts, f.windowFrame(w.Frame))
	}
	return strings.Join(parts, " ")
}

func (f *Formatter) windowFrame(frame *ir.WindowFrame) string {
	unit := f.keyword(frame.Unit)
	if frame.End == nil {
		return unit + " " + f.frameBound(frame.Start)
	}
	return unit + " " + f.keyword("BETWEEN") + " " + f.frameBound(frame.Start) +
		" " + f.keyword("AND") + " " + f.frameBound(*frame.End)
}

func (f *Formatter) frameBound(b ir.FrameBound) string {
	switch b.Kind {
	case ir.BoundUnboundedPreceding:
		return f.keyword("UNBOUNDED PRECEDING")
	case ir.BoundUnboundedFollowing:
		return f.keyword("UNBOUNDED FOLLOWING")
	case ir.BoundCurrentRow:
		return f.keyword("CURRENT ROW")
	case ir.BoundOffsetPreceding:
		return f.expr(b.Offset) + " " + f.keyword("PRECEDING")
	case ir.BoundOffsetFollowing:
		return f.expr(b.Offset) + " " + f.keyword("FOLLOWING")
	}
	return ""
}
