package ast

// Tables returns every TableName reachable from the statement, in source
// order, descending into CTEs, set operations, joins, derived tables and
// subquery expressions.
func Tables(stmt Statement) []*TableName {
	var out []*TableName
	switch s := stmt.(type) {
	case *SelectStmt:
		collectSelectTables(s, &out)
	}
	return out
}

func collectSelectTables(sel *SelectStmt, out *[]*TableName) {
	if sel == nil {
		return
	}
	if sel.With != nil {
		for _, cte := range sel.With.CTEs {
			collectSelectTables(cte.Select, out)
		}
	}
	collectBodyTables(sel.Body, out)
}

func collectBodyTables(body *SelectBody, out *[]*TableName) {
	if body == nil {
		return
	}
	collectCoreTables(body.Left, out)
	collectBodyTables(body.Right, out)
}

func collectCoreTables(core *SelectCore, out *[]*TableName) {
	if core == nil {
		return
	}
	for _, item := range core.Columns {
		collectExprTables(item.Expr, out)
	}
	if core.From != nil {
		collectTableRef(core.From.Source, out)
		for _, j := range core.From.Joins {
			collectTableRef(j.Right, out)
			collectExprTables(j.Condition, out)
		}
	}
	collectExprTables(core.Where, out)
	for _, e := range core.GroupBy {
		collectExprTables(e, out)
	}
	collectExprTables(core.Having, out)
	for _, o := range core.OrderBy {
		collectExprTables(o.Expr, out)
	}
	collectExprTables(core.Limit, out)
	collectExprTables(core.Offset, out)
}

func collectTableRef(ref TableRef, out *[]*TableName) {
	switch r := ref.(type) {
	case *TableName:
		*out = append(*out, r)
	case *DerivedTable:
		collectSelectTables(r.Select, out)
	}
}

func collectExprTables(expr Expr, out *[]*TableName) {
	switch e := expr.(type) {
	case nil:
	case *BinaryExpr:
		collectExprTables(e.Left, out)
		collectExprTables(e.Right, out)
	case *UnaryExpr:
		collectExprTables(e.Expr, out)
	case *FuncCall:
		for _, a := range e.Args {
			collectExprTables(a, out)
		}
	case *DateTimeExpr:
		for _, a := range e.Args {
			collectExprTables(a, out)
		}
	case *GenerateArrayExpr:
		for _, a := range e.Args {
			collectExprTables(a, out)
		}
	case *IntervalExpr:
		collectExprTables(e.Value, out)
	case *CaseExpr:
		collectExprTables(e.Operand, out)
		for _, w := range e.Whens {
			collectExprTables(w.Condition, out)
			collectExprTables(w.Result, out)
		}
		collectExprTables(e.Else, out)
	case *CastExpr:
		collectExprTables(e.Expr, out)
	case *InExpr:
		collectExprTables(e.Expr, out)
		for _, v := range e.Values {
			collectExprTables(v, out)
		}
		collectSelectTables(e.Query, out)
	case *BetweenExpr:
		collectExprTables(e.Expr, out)
		collectExprTables(e.Low, out)
		collectExprTables(e.High, out)
	case *IsNullExpr:
		collectExprTables(e.Expr, out)
	case *LikeExpr:
		collectExprTables(e.Expr, out)
		collectExprTables(e.Pattern, out)
	case *ParenExpr:
		collectExprTables(e.Expr, out)
	case *SubqueryExpr:
		collectSelectTables(e.Select, out)
	case *ExistsExpr:
		collectSelectTables(e.Select, out)
	}
}

// RewriteExprs applies fn to every expression reachable from the statement,
// bottom-up, replacing each expression with fn's return value in place.
// Parent links stay intact because the replacement is written back into the
// owning slot. fn must return a non-nil expression for non-nil input.
func RewriteExprs(stmt Statement, fn func(Expr) Expr) {
	switch s := stmt.(type) {
	case *SelectStmt:
		rewriteSelect(s, fn)
	}
}

func rewriteSelect(sel *SelectStmt, fn func(Expr) Expr) {
	if sel == nil {
		return
	}
	if sel.With != nil {
		for _, cte := range sel.With.CTEs {
			rewriteSelect(cte.Select, fn)
		}
	}
	rewriteBody(sel.Body, fn)
}

func rewriteBody(body *SelectBody, fn func(Expr) Expr) {
	if body == nil {
		return
	}
	rewriteCore(body.Left, fn)
	rewriteBody(body.Right, fn)
}

func rewriteCore(core *SelectCore, fn func(Expr) Expr) {
	if core == nil {
		return
	}
	for i := range core.Columns {
		core.Columns[i].Expr = rewriteExpr(core.Columns[i].Expr, fn)
	}
	if core.From != nil {
		rewriteTableRef(core.From.Source, fn)
		for _, j := range core.From.Joins {
			rewriteTableRef(j.Right, fn)
			j.Condition = rewriteExpr(j.Condition, fn)
		}
	}
	core.Where = rewriteExpr(core.Where, fn)
	for i := range core.GroupBy {
		core.GroupBy[i] = rewriteExpr(core.GroupBy[i], fn)
	}
	core.Having = rewriteExpr(core.Having, fn)
	for i := range core.OrderBy {
		core.OrderBy[i].Expr = rewriteExpr(core.OrderBy[i].Expr, fn)
	}
	core.Limit = rewriteExpr(core.Limit, fn)
	core.Offset = rewriteExpr(core.Offset, fn)
}

func rewriteTableRef(ref TableRef, fn func(Expr) Expr) {
	if d, ok := ref.(*DerivedTable); ok {
		rewriteSelect(d.Select, fn)
	}
}

func rewriteExpr(expr Expr, fn func(Expr) Expr) Expr {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *BinaryExpr:
		e.Left = rewriteExpr(e.Left, fn)
		e.Right = rewriteExpr(e.Right, fn)
	case *UnaryExpr:
		e.Expr = rewriteExpr(e.Expr, fn)
	case *FuncCall:
		for i := range e.Args {
			e.Args[i] = rewriteExpr(e.Args[i], fn)
		}
		if e.Window != nil {
			for i := range e.Window.PartitionBy {
				e.Window.PartitionBy[i] = rewriteExpr(e.Window.PartitionBy[i], fn)
			}
			for i := range e.Window.OrderBy {
				e.Window.OrderBy[i].Expr = rewriteExpr(e.Window.OrderBy[i].Expr, fn)
			}
		}
	case *DateTimeExpr:
		for i := range e.Args {
			e.Args[i] = rewriteExpr(e.Args[i], fn)
		}
	case *GenerateArrayExpr:
		for i := range e.Args {
			e.Args[i] = rewriteExpr(e.Args[i], fn)
		}
	case *IntervalExpr:
		e.Value = rewriteExpr(e.Value, fn)
	case *CaseExpr:
		e.Operand = rewriteExpr(e.Operand, fn)
		for i := range e.Whens {
			e.Whens[i].Condition = rewriteExpr(e.Whens[i].Condition, fn)
			e.Whens[i].Result = rewriteExpr(e.Whens[i].Result, fn)
		}
		e.Else = rewriteExpr(e.Else, fn)
	case *CastExpr:
		e.Expr = rewriteExpr(e.Expr, fn)
	case *InExpr:
		e.Expr = rewriteExpr(e.Expr, fn)
		for i := range e.Values {
			e.Values[i] = rewriteExpr(e.Values[i], fn)
		}
		rewriteSelect(e.Query, fn)
	case *BetweenExpr:
		e.Expr = rewriteExpr(e.Expr, fn)
		e.Low = rewriteExpr(e.Low, fn)
		e.High = rewriteExpr(e.High, fn)
	case *IsNullExpr:
		e.Expr = rewriteExpr(e.Expr, fn)
	case *LikeExpr:
		e.Expr = rewriteExpr(e.Expr, fn)
		e.Pattern = rewriteExpr(e.Pattern, fn)
	case *ParenExpr:
		e.Expr = rewriteExpr(e.Expr, fn)
	case *SubqueryExpr:
		rewriteSelect(e.Select, fn)
	case *ExistsExpr:
		rewriteSelect(e.Select, fn)
	}
	return fn(expr)
}
