// Package bigquery provides the BigQuery source dialect: backtick-quoted
// identifiers, unquoted hyphenated project names, and bare INTERVAL values.
// The typed function nodes render back to their native spellings so a
// bigquery-to-bigquery round trip is lossless.
package bigquery

import (
	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/dialect"
)

func init() {
	BigQuery.RegisterFunc("DATETIME", nativeCall("DATETIME"))
	BigQuery.RegisterFunc("GENERATE_ARRAY", nativeCall("GENERATE_ARRAY"))
	dialect.Register(BigQuery)
}

// BigQuery is the BigQuery dialect.
var BigQuery = &dialect.Dialect{
	Name:              "bigquery",
	IdentQuote:        '`',
	AllowHyphenIdent:  true,
	BareIntervalValue: true,
}

func nativeCall(name string) dialect.FuncRenderer {
	return func(p dialect.Printer, args []ast.Expr) error {
		p.Write(name)
		p.Write("(")
		for i, a := range args {
			if i > 0 {
				p.Write(", ")
			}
			p.FormatExpr(a)
		}
		p.Write(")")
		return nil
	}
}
