// Package postgres provides the PostgreSQL destination dialect.
// This package is pure Go with no database driver dependencies; it only
// describes how PostgreSQL spells identifiers and the function forms the
// transpiler substitutes in.
package postgres

import (
	"fmt"

	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/dialect"
)

func init() {
	Postgres.RegisterFunc("DATETIME", renderDateTime)
	Postgres.RegisterFunc("GENERATE_ARRAY", renderGenerateArray)
	dialect.Register(Postgres)
}

// Postgres is the PostgreSQL dialect.
var Postgres = &dialect.Dialect{
	Name:       "postgres",
	IdentQuote: '"',
}

// renderDateTime maps BigQuery's DATETIME constructor onto Postgres
// timestamp expressions:
//
//	DATETIME(x)          -> CAST(x AS TIMESTAMP)
//	DATETIME(x, zone)    -> CAST(x AS TIMESTAMP) AT TIME ZONE zone
//	DATETIME(y, mo, d, h, mi, s) -> MAKE_TIMESTAMP(y, mo, d, h, mi, s)
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
		p.Keyword("CAST")
		p.Write("(")
		p.FormatExpr(args[0])
		p.Write(" ")
		p.Keyword("AS TIMESTAMP")
		p.Write(") ")
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

// renderGenerateArray maps GENERATE_ARRAY(start, stop[, step]) onto an
// array-valued subquery over GENERATE_SERIES, which is the closest
// Postgres form with the same inclusive bounds.
func renderGenerateArray(p dialect.Printer, args []ast.Expr) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("GENERATE_ARRAY expects 2 or 3 arguments, got %d", len(args))
	}
	p.Keyword("ARRAY")
	p.Write("(")
	p.Keyword("SELECT")
	p.Write(" * ")
	p.Keyword("FROM")
	p.Write(" GENERATE_SERIES(")
	for i, a := range args {
		if i > 0 {
			p.Write(", ")
		}
		p.FormatExpr(a)
	}
	p.Write("))")
	return nil
}
