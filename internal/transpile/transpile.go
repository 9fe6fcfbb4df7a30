// Package transpile rewrites SQL written for one dialect so it runs on
// another. The pipeline is parse, normalize table catalogs, resolve
// dialect-specific function calls, then render for the destination.
package transpile

import (
	"fmt"

	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/dialect"
	"github.com/medset-labs/sqlporter/pkg/format"
	"github.com/medset-labs/sqlporter/pkg/parser"

	_ "github.com/medset-labs/sqlporter/pkg/dialects/bigquery"
	_ "github.com/medset-labs/sqlporter/pkg/dialects/duckdb"
	_ "github.com/medset-labs/sqlporter/pkg/dialects/postgres"
)

// DefaultCatalog is the project qualifier stripped from table references
// when no other marker is configured.
const DefaultCatalog = "physionet-data"

// Transpiler converts SQL between two fixed dialects. It is immutable
// after construction and safe for concurrent use.
type Transpiler struct {
	source  *dialect.Dialect
	dest    *dialect.Dialect
	catalog string
	funcs   map[string]substitution
}

// Option configures a Transpiler.
type Option func(*Transpiler)

// WithCatalog sets the catalog marker to strip from table references.
// An empty marker disables catalog normalization.
func WithCatalog(marker string) Option {
	return func(t *Transpiler) {
		t.catalog = marker
	}
}

// WithSubstitution adds or replaces a function substitution. The named
// generic call is rebuilt through fn, which receives the original argument
// list and returns the typed replacement node.
func WithSubstitution(name string, fn func(args []ast.Expr) ast.Expr) Option {
	return func(t *Transpiler) {
		t.funcs[name] = fn
	}
}

type substitution func(args []ast.Expr) ast.Expr

// New creates a Transpiler for the given source and destination dialect
// names. Unknown names are rejected here rather than at first use.
func New(source, dest string, opts ...Option) (*Transpiler, error) {
	src, ok := dialect.Get(source)
	if !ok {
		return nil, fmt.Errorf("unknown source dialect %q (registered: %v)", source, dialect.List())
	}
	dst, ok := dialect.Get(dest)
	if !ok {
		return nil, fmt.Errorf("unknown destination dialect %q (registered: %v)", dest, dialect.List())
	}

	t := &Transpiler{
		source:  src,
		dest:    dst,
		catalog: DefaultCatalog,
		funcs:   defaultSubstitutions(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Source returns the source dialect name.
func (t *Transpiler) Source() string { return t.source.Name }

// Dest returns the destination dialect name.
func (t *Transpiler) Dest() string { return t.dest.Name }

// Query transpiles a single SQL query. The conversion is all or nothing:
// a parse or render failure yields an error and no output.
func (t *Transpiler) Query(sql string) (string, error) {
	stmt, err := parser.ParseWithDialect(sql, t.source)
	if err != nil {
		return "", err
	}

	t.normalizeCatalogs(stmt)
	t.resolveFunctions(stmt)

	return format.Format(stmt, t.dest)
}

// Query transpiles one query with the package defaults: BigQuery source,
// Postgres destination, and the physionet-data catalog marker.
func Query(sql string) (string, error) {
	t, err := New("bigquery", "postgres")
	if err != nil {
		return "", err
	}
	return t.Query(sql)
}
