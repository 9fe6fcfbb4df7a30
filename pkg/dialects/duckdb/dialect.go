// Package duckdb provides the DuckDB destination dialect. DuckDB has
// native forms for both substituted functions, so the renderers are thin.
package duckdb

import (
	"fmt"

	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/dialect"
)

func init() {
	DuckDB.RegisterFunc("DATETIME", renderDateTime)
	DuckDB.RegisterFunc("GENERATE_ARRAY", renderGenerateArray)
	dialect.Register(DuckDB)
}

// DuckDB is the DuckDB dialect.
var DuckDB = &dialect.Dialect{
	Name:       "duckdb",
	IdentQuote: '"',
}

func renderDateTime(p dialect.Printer, args []ast.Expr) error {
	switch len(args) {
	case 1:
		p.Keyword("CAST")
		p.Write("(")
		p.FormatExpr(args[0])
		p.Write(" ")
		p.Keyword("AS TIMESTAMP")
		p.Write(")")
	case 2:
		p.FormatExpr(args[0])
		p.Write(" ")
		p.Keyword("AT TIME ZONE")
		p.Write(" ")
		p.FormatExpr(args[1])
	case 6:
		p.Write("MAKE_TIMESTAMP(")
		for i, a := range args {
			if i > 0 {
				p.Write(", ")
			}
			p.FormatExpr(a)
		}
		p.Write(")")
	default:
		return fmt.Errorf("DATETIME expects 1, 2 or 6 arguments, got %d", len(args))
	}
	return nil
}

func renderGenerateArray(p dialect.Printer, args []ast.Expr) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("GENERATE_ARRAY expects 2 or 3 arguments, got %d", len(args))
	}
	p.Write("GENERATE_SERIES(")
	for i, a := range args {
		if i > 0 {
			p.Write(", ")
		}
		p.FormatExpr(a)
	}
	p.Write(")")
	return nil
}
