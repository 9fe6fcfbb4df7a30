// Package dialect defines per-dialect SQL behavior: identifier quoting,
// lexing quirks, and renderers for function nodes the target engine has no
// native spelling for. Dialect implementations live in pkg/dialects/* and
// register themselves in init().
package dialect

import (
	"sort"

	"github.com/medset-labs/sqlporter/pkg/ast"
)

// Printer is the rendering surface a FuncRenderer writes to. It is
// implemented by the formatter; keeping it as an interface here avoids an
// import cycle between dialect and format.
type Printer interface {
	// Write appends raw text.
	Write(s string)
	// Keyword appends a keyword in the printer's configured casing.
	Keyword(kw string)
	// FormatExpr renders a full expression through the normal walk.
	FormatExpr(e ast.Expr)
}

// FuncRenderer renders one typed function node for a specific dialect.
// It returns an error when the argument shape cannot be expressed.
type FuncRenderer func(p Printer, args []ast.Expr) error

// Dialect describes one SQL dialect.
type Dialect struct {
	// Name is the registry key, lowercase (e.g. "bigquery").
	Name string

	// IdentQuote is the identifier quote character ('`' for BigQuery,
	// '"' for Postgres and DuckDB).
	IdentQuote byte

	// AllowHyphenIdent permits unquoted hyphenated identifiers in table
	// qualifier position, as BigQuery does for project names.
	AllowHyphenIdent bool

	// BareIntervalValue renders INTERVAL values unquoted (BigQuery's
	// INTERVAL 1 DAY rather than the ANSI INTERVAL '1' DAY).
	BareIntervalValue bool

	funcs map[string]FuncRenderer
}

// RegisterFunc installs a renderer for the named typed function. Names are
// matched case-insensitively via their canonical uppercase form.
func (d *Dialect) RegisterFunc(name string, r FuncRenderer) {
	if d.funcs == nil {
		d.funcs = make(map[string]FuncRenderer)
	}
	d.funcs[name] = r
}

// FuncRenderer returns the renderer registered under name, if any.
func (d *Dialect) FuncRenderer(name string) (FuncRenderer, bool) {
	r, ok := d.funcs[name]
	return r, ok
}

// Funcs returns the names of all registered renderers, sorted.
func (d *Dialect) Funcs() []string {
	names := make([]string, 0, len(d.funcs))
	for name := range d.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// QuoteIdent wraps name in the dialect's identifier quotes.
func (d *Dialect) QuoteIdent(name string) string {
	q := string(d.IdentQuote)
	return q + name + q
}
