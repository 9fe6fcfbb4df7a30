package format

import (
	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/token"
)

func (p *Printer) formatSelectStmt(stmt *ast.SelectStmt) {
	if stmt == nil {
		return
	}

	if stmt.With != nil {
		p.formatWithClause(stmt.With)
	}

	if stmt.Body != nil {
		p.formatSelectBody(stmt.Body)
	}
}

func (p *Printer) formatWithClause(with *ast.WithClause) {
	p.kw(token.WITH)
	if with.Recursive {
		p.space()
		p.kw(token.RECURSIVE)
	}
	p.writeln()

	p.indent()
	p.formatList(len(with.CTEs), func(i int) {
		cte := with.CTEs[i]
		p.write(cte.Name)
		if len(cte.Columns) > 0 {
			p.write(" (")
			p.formatList(len(cte.Columns), func(j int) { p.write(cte.Columns[j]) }, ", ", false)
			p.write(")")
		}
		p.space()
		p.kw(token.AS)
		p.write(" (")
		p.writeln()

		p.indent()
		p.formatSelectStmt(cte.Select)
		p.dedent()

		p.write(")")
	}, ",", true)
	p.writeln()
	p.dedent()
}

func (p *Printer) formatSelectBody(body *ast.SelectBody) {
	if body == nil {
		return
	}

	p.formatSelectCore(body.Left)

	if body.Op != ast.SetOpNone {
		switch body.Op {
		case ast.SetOpUnion:
			if body.All {
				p.kw(token.UNION, token.ALL)
			} else {
				p.kw(token.UNION)
			}
		case ast.SetOpIntersect:
			p.kw(token.INTERSECT)
		case ast.SetOpExcept:
			p.kw(token.EXCEPT)
		}

		p.writeln()
		p.formatSelectBody(body.Right)
	}
}

func (p *Printer) formatSelectCore(sc *ast.SelectCore) {
	if sc == nil {
		return
	}

	p.kw(token.SELECT)
	if sc.Distinct {
		p.space()
		p.kw(token.DISTINCT)
	}
	p.writeln()

	p.indent()
	p.formatList(len(sc.Columns), func(i int) { p.formatSelectItem(sc.Columns[i]) }, ",", true)
	p.writeln()
	p.dedent()

	if sc.From != nil {
		p.kw(token.FROM)
		p.space()
		p.formatFromClause(sc.From)
		p.writeln()
	}

	if sc.Where != nil {
		p.kw(token.WHERE)
		p.writeln()
		p.indent()
		p.formatExpr(sc.Where)
		p.dedent()
		p.writeln()
	}

	if len(sc.GroupBy) > 0 {
		p.kw(token.GROUP, token.BY)
		p.writeln()
		p.indent()
		p.formatList(len(sc.GroupBy), func(i int) { p.formatExpr(sc.GroupBy[i]) }, ",", true)
		p.dedent()
		p.writeln()
	}

	if sc.Having != nil {
		p.kw(token.HAVING)
		p.writeln()
		p.indent()
		p.formatExpr(sc.Having)
		p.dedent()
		p.writeln()
	}

	if len(sc.OrderBy) > 0 {
		p.kw(token.ORDER, token.BY)
		p.writeln()
		p.indent()
		p.formatList(len(sc.OrderBy), func(i int) { p.formatOrderByItem(sc.OrderBy[i]) }, ",", true)
		p.dedent()
		p.writeln()
	}

	if sc.Limit != nil {
		p.kw(token.LIMIT)
		p.space()
		p.formatExpr(sc.Limit)
		p.writeln()
	}

	if sc.Offset != nil {
		p.kw(token.OFFSET)
		p.space()
		p.formatExpr(sc.Offset)
		p.writeln()
	}
}

func (p *Printer) formatSelectItem(item ast.SelectItem) {
	if item.Star {
		p.write("*")
		return
	}
	if item.TableStar != "" {
		p.write(item.TableStar)
		p.write(".*")
		return
	}

	p.formatExpr(item.Expr)
	if item.Alias != "" {
		p.space()
		p.kw(token.AS)
		p.space()
		p.write(item.Alias)
	}
}

func (p *Printer) formatFromClause(from *ast.FromClause) {
	if from == nil {
		return
	}

	p.formatTableRef(from.Source)

	for _, join := range from.Joins {
		p.writeln()
		p.formatJoin(join)
	}
}

func (p *Printer) formatTableRef(ref ast.TableRef) {
	switch t := ref.(type) {
	case *ast.TableName:
		p.formatTableName(t)
	case *ast.DerivedTable:
		p.formatDerivedTable(t)
	}
}

func (p *Printer) formatTableName(t *ast.TableName) {
	if t.Catalog != "" {
		p.write(t.Catalog)
		p.write(".")
	}
	if t.Schema != "" {
		p.write(t.Schema)
		p.write(".")
	}
	p.ident(t.Name, t.Quoted)
	if t.Alias != "" {
		p.space()
		p.write(t.Alias)
	}
}

func (p *Printer) formatDerivedTable(t *ast.DerivedTable) {
	p.write("(")
	p.writeln()
	p.indent()
	p.formatSelectStmt(t.Select)
	p.dedent()
	p.write(")")
	if t.Alias != "" {
		p.space()
		p.write(t.Alias)
	}
}

func (p *Printer) formatJoin(join *ast.Join) {
	if join == nil {
		return
	}

	if join.Natural {
		p.kw(token.NATURAL)
		p.space()
	}

	switch join.Type {
	case ast.JoinInner:
		// Plain "JOIN" for inner (most common, cleaner output)
		p.kw(token.JOIN)
	case ast.JoinComma:
		p.write(",")
	default:
		p.Keyword(string(join.Type))
		p.space()
		p.kw(token.JOIN)
	}
	p.space()

	p.formatTableRef(join.Right)

	if len(join.Using) > 0 {
		p.writeln()
		p.indent()
		p.kw(token.USING)
		p.write(" (")
		p.formatList(len(join.Using), func(i int) { p.write(join.Using[i]) }, ", ", false)
		p.write(")")
		p.dedent()
	} else if join.Condition != nil {
		p.writeln()
		p.indent()
		p.kw(token.ON)
		p.space()
		p.formatExpr(join.Condition)
		p.dedent()
	}
}

func (p *Printer) formatOrderByItem(item ast.OrderByItem) {
	p.formatExpr(item.Expr)
	if item.Desc {
		p.space()
		p.kw(token.DESC)
	}
	if item.NullsFirst != nil {
		p.space()
		p.kw(token.NULLS)
		p.space()
		if *item.NullsFirst {
			p.kw(token.FIRST)
		} else {
			p.kw(token.LAST)
		}
	}
}
