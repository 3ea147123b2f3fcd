// Package format renders canonical statement trees as styled SQL text.
//
// The layout rules are fixed policy, not configuration: reserved keywords are
// upper-cased, quoted identifiers are reproduced verbatim, multi-item SELECT
// lists break one item per line with leading commas, CTEs open at the left
// margin, and every statement is terminated with a semicolon on its own line.
// Printing is a pure function of the tree — two structurally equal trees
// always produce byte-identical output, which is what makes formatting
// idempotent and diffs stable.
//
// Example usage:
//
//	stmt := &ir.SelectStmt{
//		Items: []ir.SelectItem{{Expr: &ir.ColumnRef{Name: ir.Name("id")}}},
//		From:  &ir.FromClause{Tables: []ir.TableRef{&ir.TableName{Name: ir.Name("users")}}},
//	}
//
//	var buf bytes.Buffer
//	format.Format(&buf, nil, stmt)
//	fmt.Print(buf.String())
//
// Output:
//
//	SELECT id
//	FROM users
//	;
package format

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sqleaner/sqleaner/pkg/ir"
	"github.com/sqleaner/sqleaner/pkg/token"
)

// FormatterOptions controls the variable parts of formatting. The layout
// rules themselves are fixed.
type FormatterOptions struct {
	// IndentSize specifies the number of spaces for each indent level
	IndentSize int
}

// Defaults returns standard formatting options
func Defaults() *FormatterOptions {
	return &FormatterOptions{
		IndentSize: 4,
	}
}

// Formatter renders canonical trees with configurable options
type Formatter struct {
	options *FormatterOptions
}

// New creates a new Formatter with the specified options
func New(options *FormatterOptions) *Formatter {
	if options == nil {
		options = Defaults()
	}
	return &Formatter{options: options}
}

// Format renders the given statements to w, each terminated by a semicolon on
// its own line, with a single trailing newline at the end of the output.
func Format(w io.Writer, options *FormatterOptions, stmts ...ir.Statement) error {
	f := New(options)
	for _, stmt := range stmts {
		if _, err := io.WriteString(w, f.Statement(stmt)+"\n;\n"); err != nil {
			return errors.Wrap(err, "writing formatted statement")
		}
	}
	return nil
}

// Statement renders one statement without its terminating semicolon.
func (f *Formatter) Statement(stmt ir.Statement) string {
	var lines []string
	switch n := stmt.(type) {
	case *ir.SelectStmt:
		lines = f.selectLines(n, 0, newCommentSet(stmt))
	case *ir.InsertStmt:
		lines = f.insertLines(n)
	case *ir.UpdateStmt:
		lines = f.updateLines(n)
	case *ir.DeleteStmt:
		lines = f.deleteLines(n)
	case *ir.CreateTableStmt:
		lines = f.createTableLines(n)
	case *ir.RawStmt:
		lines = strings.Split(strings.TrimSpace(n.Text), "\n")
	default:
		return ""
	}
	if _, ok := stmt.(*ir.SelectStmt); !ok {
		lines = weaveBodyComments(stmt, lines)
	}
	return strings.Join(lines, "\n")
}

// keyword renders a reserved word in canonical case
func (f *Formatter) keyword(kw string) string {
	return strings.ToUpper(kw)
}

// indent returns the specified number of indent levels as spaces
func (f *Formatter) indent(level int) string {
	return strings.Repeat(" ", level*f.options.IndentSize)
}

// identifier renders an identifier, restoring original quoting. Unquoted
// identifiers are never case-normalized, even when they collide with a
// reserved word.
func (f *Formatter) identifier(id ir.Ident) string {
	if id.Quoted {
		q := string(id.Quote)
		return q + id.Name + q
	}
	return id.Name
}

// functionName renders a function name, upper-casing well-known builtins so
// max(a) and MAX(a) print identically.
func (f *Formatter) functionName(id ir.Ident) string {
	if !id.Quoted && token.IsBuiltinFunction(id.Name) {
		return strings.ToUpper(id.Name)
	}
	return f.identifier(id)
}

// weaveBodyComments re-emits comments around a single-block statement:
// leading comments above it, trailing comments appended to its last line.
func weaveBodyComments(stmt ir.Statement, lines []string) []string {
	comments := stmt.Info().Comments
	if len(comments) == 0 || len(lines) == 0 {
		return lines
	}
	var out []string
	for _, c := range comments {
		if c.Leading {
			out = append(out, c.Text)
		}
	}
	out = append(out, lines...)
	for _, c := range comments {
		if !c.Leading {
			out[len(out)-1] += " " + c.Text
		}
	}
	return out
}
