package format

import (
	"strings"

	"github.com/sqleaner/sqleaner/pkg/ir"
)

func (f *Formatter) tableName(t ir.TableName) string {
	s := f.identifier(t.Name)
	if t.Qualifier != nil {
		s = f.identifier(*t.Qualifier) + "." + s
	}
	return s
}

// insertLines renders INSERT ... VALUES with one row per line in leading
// comma style, and INSERT ... SELECT with the query laid out below the
// target line.
func (f *Formatter) insertLines(ins *ir.InsertStmt) []string {
	head := f.keyword("INSERT INTO") + " " + f.tableName(ins.Table)
	if len(ins.Columns) > 0 {
		cols := make([]string, len(ins.Columns))
		for i := range ins.Columns {
			cols[i] = f.identifier(ins.Columns[i])
		}
		head += " (" + strings.Join(cols, ", ") + ")"
	}
	lines := []string{head}

	if ins.Query != nil {
		return append(lines, f.selectLines(ins.Query, 0, nil)...)
	}

	lines = append(lines, f.keyword("VALUES"))
	ind := f.indent(1)
	for i, row := range ins.Rows {
		values := make([]string, len(row))
		for j, e := range row {
			values[j] = f.expr(e)
		}
		line := "(" + strings.Join(values, ", ") + ")"
		if i == 0 {
			lines = append(lines, ind+line)
		} else {
			lines = append(lines, ind+", "+line)
		}
	}
	return lines
}

// updateLines renders UPDATE with one assignment per line in leading comma
// style; a single assignment stays on the SET line.
func (f *Formatter) updateLines(upd *ir.UpdateStmt) []string {
	lines := []string{f.keyword("UPDATE") + " " + f.tableName(upd.Table)}

	assigns := make([]string, len(upd.Assignments))
	for i, a := range upd.Assignments {
		assigns[i] = f.render(a.Column) + " = " + f.expr(a.Value)
	}
	if len(assigns) == 1 {
		lines = append(lines, f.keyword("SET")+" "+assigns[0])
	} else {
		lines = append(lines, f.keyword("SET"))
		ind := f.indent(1)
		for i, a := range assigns {
			if i == 0 {
				lines = append(lines, ind+a)
			} else {
				lines = append(lines, ind+", "+a)
			}
		}
	}

	if upd.Where != nil {
		lines = append(lines, f.predicateLines(f.keyword("WHERE"), upd.Where, 0)...)
	}
	return lines
}

func (f *Formatter) deleteLines(del *ir.DeleteStmt) []string {
	lines := []string{f.keyword("DELETE FROM") + " " + f.tableName(del.Table)}
	if del.Where != nil {
		lines = append(lines, f.predicateLines(f.keyword("WHERE"), del.Where, 0)...)
	}
	return lines
}

// createTableLines renders CREATE TABLE with one column definition per line
// and trailing commas, the usual DDL shape.
func (f *Formatter) createTableLines(ct *ir.CreateTableStmt) []string {
	head := f.keyword("CREATE TABLE") + " "
	if ct.IfNotExists {
		head += f.keyword("IF NOT EXISTS") + " "
	}
	head += f.tableName(ct.Name) + " ("
	lines := []string{head}

	ind := f.indent(1)
	var defs []string
	for _, col := range ct.Columns {
		defs = append(defs, ind+f.columnDef(col))
	}
	if len(ct.PrimaryKey) > 0 {
		cols := make([]string, len(ct.PrimaryKey))
		for i := range ct.PrimaryKey {
			cols[i] = f.identifier(ct.PrimaryKey[i])
		}
		defs = append(defs, ind+f.keyword("PRIMARY KEY")+" ("+strings.Join(cols, ", ")+")")
	}
	for i, def := range defs {
		if i < len(defs)-1 {
			def += ","
		}
		lines = append(lines, def)
	}

	return append(lines, ")")
}

func (f *Formatter) columnDef(col ir.ColumnDef) string {
	s := f.identifier(col.Name) + " " + strings.ToUpper(col.Type)
	if col.NotNull {
		s += " " + f.keyword("NOT NULL")
	}
	if col.Default != nil {
		s += " " + f.keyword("DEFAULT") + " " + f.expr(col.Default)
	}
	if col.PrimaryKey {
		s += " " + f.keyword("PRIMARY KEY")
	}
	if col.Unique {
		s += " " + f.keyword("UNIQUE")
	}
	return s
}
