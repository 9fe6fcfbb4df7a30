package transpile

import "github.com/medset-labs/sqlporter/pkg/ast"

// defaultSubstitutions maps BigQuery callee names to constructors for
// their typed nodes. The parser leaves these calls generic because the
// names collide with type keywords in other dialects; the typed nodes give
// the destination renderer something it can translate.
func defaultSubstitutions() map[string]substitution {
	return map[string]substitution{
		"DATETIME": func(args []ast.Expr) ast.Expr {
			return &ast.DateTimeExpr{Args: args}
		},
		"GENERATE_ARRAY": func(args []ast.Expr) ast.Expr {
			return &ast.GenerateArrayExpr{Args: args}
		},
	}
}

// resolveFunctions replaces generic function calls with their typed
// equivalents. The rewrite only applies when the source dialect is
// BigQuery; the same names are ordinary functions elsewhere. The argument
// list moves to the new node unchanged, in order. Calls whose names have
// no substitution pass through untouched.
func (t *Transpiler) resolveFunctions(stmt ast.Statement) {
	if t.source.Name != "bigquery" {
		return
	}

	ast.RewriteExprs(stmt, func(e ast.Expr) ast.Expr {
		call, ok := e.(*ast.FuncCall)
		if !ok {
			return e
		}
		sub, ok := t.funcs[call.Name]
		if !ok {
			return e
		}
		return sub(call.Args)
	})
}
