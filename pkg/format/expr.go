package format

import (
	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/token"
)

const complexityThreshold = 5

func (p *Printer) formatExpr(e ast.Expr) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *ast.Literal:
		p.formatLiteral(expr)
	case *ast.ColumnRef:
		p.formatColumnRef(expr)
	case *ast.BinaryExpr:
		p.formatBinaryExpr(expr)
	case *ast.UnaryExpr:
		p.formatUnaryExpr(expr)
	case *ast.FuncCall:
		p.formatFuncCall(expr)
	case *ast.DateTimeExpr:
		p.formatTypedFunc("DATETIME", expr.Args)
	case *ast.GenerateArrayExpr:
		p.formatTypedFunc("GENERATE_ARRAY", expr.Args)
	case *ast.IntervalExpr:
		p.formatIntervalExpr(expr)
	case *ast.CaseExpr:
		p.formatCaseExpr(expr)
	case *ast.CastExpr:
		p.formatCastExpr(expr)
	case *ast.InExpr:
		p.formatInExpr(expr)
	case *ast.BetweenExpr:
		p.formatBetweenExpr(expr)
	case *ast.IsNullExpr:
		p.formatIsNullExpr(expr)
	case *ast.LikeExpr:
		p.formatLikeExpr(expr)
	case *ast.ParenExpr:
		p.formatParenExpr(expr)
	case *ast.SubqueryExpr:
		p.formatSubqueryExpr(expr)
	case *ast.ExistsExpr:
		p.formatExistsExpr(expr)
	}
}

// formatTypedFunc renders a typed function node through the dialect's
// registered renderer. A dialect with no renderer for the node cannot
// express it, which is a render error rather than silent passthrough.
func (p *Printer) formatTypedFunc(name string, args []ast.Expr) {
	r, ok := p.dialect.FuncRenderer(name)
	if !ok {
		p.fail(&RenderError{Dialect: p.dialect.Name, Construct: name})
		return
	}
	if err := r(p, args); err != nil {
		p.fail(&RenderError{Dialect: p.dialect.Name, Construct: name, Reason: err.Error()})
	}
}

func (p *Printer) exprComplexity(e ast.Expr) int {
	if e == nil {
		return 0
	}

	switch expr := e.(type) {
	case *ast.Literal, *ast.ColumnRef:
		return 1
	case *ast.BinaryExpr:
		return 1 + p.exprComplexity(expr.Left) + p.exprComplexity(expr.Right)
	case *ast.UnaryExpr:
		return 1 + p.exprComplexity(expr.Expr)
	case *ast.FuncCall:
		score := 2
		for _, arg := range expr.Args {
			score += p.exprComplexity(arg)
		}
		return score
	case *ast.ParenExpr:
		return p.exprComplexity(expr.Expr)
	case *ast.CaseExpr:
		score := 2
		for _, w := range expr.Whens {
			score += p.exprComplexity(w.Condition) + p.exprComplexity(w.Result)
		}
		return score
	default:
		return 1
	}
}

func isLogicalOp(op token.Type) bool {
	return op == token.AND || op == token.OR
}

func (p *Printer) formatLiteral(lit *ast.Literal) {
	switch lit.Type {
	case ast.LiteralString:
		p.write("'")
		p.write(lit.Value)
		p.write("'")
	case ast.LiteralBool:
		if lit.Value == "TRUE" || lit.Value == "true" {
			p.kw(token.TRUE)
		} else {
			p.kw(token.FALSE)
		}
	case ast.LiteralNull:
		p.kw(token.NULL)
	default:
		p.write(lit.Value)
	}
}

func (p *Printer) formatColumnRef(col *ast.ColumnRef) {
	if col.Table != "" {
		p.write(col.Table)
		p.write(".")
	}
	p.write(col.Column)
}

func (p *Printer) formatBinaryExpr(expr *ast.BinaryExpr) {
	shouldBreak := p.exprComplexity(expr) > complexityThreshold && isLogicalOp(expr.Op)

	p.formatExpr(expr.Left)

	if shouldBreak {
		p.writeln()
		p.kw(expr.Op)
		p.space()
	} else {
		p.space()
		p.kw(expr.Op)
		p.space()
	}

	p.formatExpr(expr.Right)
}

func (p *Printer) formatUnaryExpr(expr *ast.UnaryExpr) {
	p.kw(expr.Op)
	if expr.Op == token.NOT {
		p.space()
	}
	p.formatExpr(expr.Expr)
}

func (p *Printer) formatFuncCall(fn *ast.FuncCall) {
	p.write(fn.Name)
	p.write("(")

	if fn.Distinct {
		p.kw(token.DISTINCT)
		p.space()
	}

	if fn.Star {
		p.write("*")
	} else {
		p.formatList(len(fn.Args), func(i int) { p.formatExpr(fn.Args[i]) }, ", ", false)
	}

	p.write(")")

	if fn.Window != nil {
		p.space()
		p.formatWindowSpec(fn.Window)
	}
}

// formatIntervalExpr spells the value the way the dialect expects:
// BigQuery takes INTERVAL 1 DAY, ANSI dialects INTERVAL '1' DAY.
func (p *Printer) formatIntervalExpr(iv *ast.IntervalExpr) {
	p.kw(token.INTERVAL)
	p.space()
	if lit, ok := iv.Value.(*ast.Literal); ok && lit.Type == ast.LiteralNumber && !p.dialect.BareIntervalValue {
		p.write("'")
		p.write(lit.Value)
		p.write("'")
	} else {
		p.formatExpr(iv.Value)
	}
	if iv.Unit != "" {
		p.space()
		p.write(iv.Unit)
	}
}

func (p *Printer) formatWindowSpec(w *ast.WindowSpec) {
	p.kw(token.OVER)
	p.write(" (")

	if len(w.PartitionBy) > 0 {
		p.kw(token.PARTITION, token.BY)
		p.space()
		p.formatList(len(w.PartitionBy), func(i int) { p.formatExpr(w.PartitionBy[i]) }, ", ", false)
	}

	if len(w.OrderBy) > 0 {
		if len(w.PartitionBy) > 0 {
			p.space()
		}
		p.kw(token.ORDER, token.BY)
		p.space()
		p.formatList(len(w.OrderBy), func(i int) { p.formatOrderByItem(w.OrderBy[i]) }, ", ", false)
	}

	if w.Frame != nil {
		p.space()
		p.formatFrameSpec(w.Frame)
	}

	p.write(")")
}

func (p *Printer) formatFrameSpec(f *ast.FrameSpec) {
	p.Keyword(string(f.Type))
	p.space()
	if f.End != nil {
		p.kw(token.BETWEEN)
		p.space()
		p.formatFrameBound(f.Start)
		p.space()
		p.kw(token.AND)
		p.space()
		p.formatFrameBound(f.End)
	} else {
		p.formatFrameBound(f.Start)
	}
}

func (p *Printer) formatFrameBound(b *ast.FrameBound) {
	if b == nil {
		return
	}
	switch b.Type {
	case ast.FrameExprPreceding:
		p.formatExpr(b.Offset)
		p.space()
		p.kw(token.PRECEDING)
	case ast.FrameExprFollowing:
		p.formatExpr(b.Offset)
		p.space()
		p.kw(token.FOLLOWING)
	default:
		p.Keyword(string(b.Type))
	}
}

func (p *Printer) formatCaseExpr(c *ast.CaseExpr) {
	p.kw(token.CASE)
	if c.Operand != nil {
		p.space()
		p.formatExpr(c.Operand)
	}
	p.writeln()
	p.indent()

	for _, w := range c.Whens {
		p.kw(token.WHEN)
		p.space()
		p.formatExpr(w.Condition)
		p.space()
		p.kw(token.THEN)
		p.space()
		p.formatExpr(w.Result)
		p.writeln()
	}

	if c.Else != nil {
		p.kw(token.ELSE)
		p.space()
		p.formatExpr(c.Else)
		p.writeln()
	}

	p.dedent()
	p.kw(token.END)
}

func (p *Printer) formatCastExpr(c *ast.CastExpr) {
	p.kw(token.CAST)
	p.write("(")
	p.formatExpr(c.Expr)
	p.space()
	p.kw(token.AS)
	p.space()
	p.Keyword(c.TypeName)
	p.write(")")
}

func (p *Printer) formatInExpr(in *ast.InExpr) {
	p.formatExpr(in.Expr)
	p.space()
	if in.Not {
		p.kw(token.NOT)
		p.space()
	}
	p.kw(token.IN)
	p.write(" (")

	if in.Query != nil {
		p.writeln()
		p.indent()
		p.formatSelectStmt(in.Query)
		p.dedent()
	} else {
		p.formatList(len(in.Values), func(i int) { p.formatExpr(in.Values[i]) }, ", ", false)
	}

	p.write(")")
}

func (p *Printer) formatBetweenExpr(b *ast.BetweenExpr) {
	p.formatExpr(b.Expr)
	p.space()
	if b.Not {
		p.kw(token.NOT)
		p.space()
	}
	p.kw(token.BETWEEN)
	p.space()
	p.formatExpr(b.Low)
	p.space()
	p.kw(token.AND)
	p.space()
	p.formatExpr(b.High)
}

func (p *Printer) formatIsNullExpr(e *ast.IsNullExpr) {
	p.formatExpr(e.Expr)
	p.space()
	p.kw(token.IS)
	p.space()
	if e.Not {
		p.kw(token.NOT)
		p.space()
	}
	p.kw(token.NULL)
}

func (p *Printer) formatLikeExpr(e *ast.LikeExpr) {
	p.formatExpr(e.Expr)
	p.space()
	if e.Not {
		p.kw(token.NOT)
		p.space()
	}
	p.kw(token.LIKE)
	p.space()
	p.formatExpr(e.Pattern)
}

func (p *Printer) formatParenExpr(e *ast.ParenExpr) {
	p.write("(")
	p.formatExpr(e.Expr)
	p.write(")")
}

func (p *Printer) formatSubqueryExpr(e *ast.SubqueryExpr) {
	p.write("(")
	p.writeln()
	p.indent()
	p.formatSelectStmt(e.Select)
	p.dedent()
	p.write(")")
}

func (p *Printer) formatExistsExpr(e *ast.ExistsExpr) {
	if e.Not {
		p.kw(token.NOT)
		p.space()
	}
	p.kw(token.EXISTS)
	p.write(" (")
	p.writeln()
	p.indent()
	p.formatSelectStmt(e.Select)
	p.dedent()
	p.write(")")
}
