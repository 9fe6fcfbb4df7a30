package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medset-labs/sqlporter/pkg/ast"
)

func TestRegistry(t *testing.T) {
	Register(&Dialect{Name: "TestDialect", IdentQuote: '"'})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		d, ok := Get("testdialect")
		require.True(t, ok)
		assert.Equal(t, "TestDialect", d.Name)

		_, ok = Get("TESTDIALECT")
		assert.True(t, ok)
	})

	t.Run("unknown dialect", func(t *testing.T) {
		_, ok := Get("oracle")
		assert.False(t, ok)
	})

	t.Run("list is sorted", func(t *testing.T) {
		names := List()
		assert.Contains(t, names, "testdialect")
		assert.IsIncreasing(t, names)
	})
}

func TestFuncRenderers(t *testing.T) {
	d := &Dialect{Name: "x", IdentQuote: '"'}

	_, ok := d.FuncRenderer("DATETIME")
	assert.False(t, ok, "empty dialect has no renderers")

	d.RegisterFunc("DATETIME", func(p Printer, args []ast.Expr) error { return nil })
	r, ok := d.FuncRenderer("DATETIME")
	require.True(t, ok)
	assert.NoError(t, r(nil, nil))
}

func TestQuoteIdent(t *testing.T) {
	pg := &Dialect{Name: "postgres", IdentQuote: '"'}
	bq := &Dialect{Name: "bigquery", IdentQuote: '`'}
	assert.Equal(t, `"admissions"`, pg.QuoteIdent("admissions"))
	assert.Equal(t, "`physionet-data.mimiciv.patients`", bq.QuoteIdent("physionet-data.mimiciv.patients"))
}
