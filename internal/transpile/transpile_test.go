package transpile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/dialect"
	"github.com/medset-labs/sqlporter/pkg/parser"
)

func TestNew(t *testing.T) {
	t.Run("known dialects", func(t *testing.T) {
		tr, err := New("bigquery", "postgres")
		require.NoError(t, err)
		assert.Equal(t, "bigquery", tr.Source())
		assert.Equal(t, "postgres", tr.Dest())
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := New("oracle", "postgres")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "oracle")
	})

	t.Run("unknown destination", func(t *testing.T) {
		_, err := New("bigquery", "teradata")
		require.Error(t, err)
	})
}

func TestCatalogNormalization(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "quoted whole path loses marker and quotes",
			sql:  "SELECT subject_id FROM `physionet-data.mimiciv.patients`",
			want: "FROM mimiciv.patients\n",
		},
		{
			name: "catalog slot match drops qualifier",
			sql:  "SELECT * FROM physionet-data.admissions",
			want: "FROM admissions\n",
		},
		{
			name: "three part unquoted",
			sql:  "SELECT * FROM physionet-data.mimiciv.icustays",
			want: "FROM mimiciv.icustays\n",
		},
		{
			name: "substring catalog is untouched",
			sql:  "SELECT * FROM physionet-database.admissions",
			want: "FROM physionet-database.admissions\n",
		},
		{
			name: "quoted near-miss keeps quoting",
			sql:  "SELECT * FROM `physionet-data2.admissions`",
			want: "FROM \"physionet-data2.admissions\"\n",
		},
		{
			name: "marker in join target",
			sql:  "SELECT * FROM a JOIN `physionet-data.mimiciv.transfers` t ON a.id = t.id",
			want: "JOIN mimiciv.transfers t\n",
		},
		{
			name: "marker inside cte and subquery",
			sql:  "WITH c AS (SELECT * FROM physionet-data.mimiciv.patients) SELECT * FROM c WHERE EXISTS (SELECT 1 FROM physionet-data.d_items)",
			want: "FROM mimiciv.patients\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Query(tt.sql)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "physionet-data.")
		})
	}
}

func TestCatalogNormalizationIsIdempotent(t *testing.T) {
	tr, err := New("bigquery", "postgres")
	require.NoError(t, err)

	stmt, err := parser.ParseWithDialect("SELECT * FROM `physionet-data.mimiciv.patients`", mustGet(t, "bigquery"))
	require.NoError(t, err)

	tr.normalizeCatalogs(stmt)
	table := ast.Tables(stmt)[0]
	first := *table

	tr.normalizeCatalogs(stmt)
	assert.Equal(t, first, *table)
	assert.Equal(t, "mimiciv.patients", table.Name)
	assert.False(t, table.Quoted)
}

func TestCustomCatalogMarker(t *testing.T) {
	tr, err := New("bigquery", "postgres", WithCatalog("my-org"))
	require.NoError(t, err)

	out, err := tr.Query("SELECT * FROM `my-org.warehouse.events`")
	require.NoError(t, err)
	assert.Contains(t, out, "FROM warehouse.events\n")

	// The default marker is no longer special.
	out, err = tr.Query("SELECT * FROM physionet-data.admissions")
	require.NoError(t, err)
	assert.Contains(t, out, "FROM physionet-data.admissions\n")
}

func TestFunctionResolution(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "datetime two args",
			sql:  "SELECT DATETIME(charttime, 'UTC') FROM chartevents",
			want: "CAST(charttime AS TIMESTAMP) AT TIME ZONE 'UTC'",
		},
		{
			name: "datetime single arg",
			sql:  "SELECT DATETIME(intime) FROM icustays",
			want: "CAST(intime AS TIMESTAMP)",
		},
		{
			name: "generate array",
			sql:  "SELECT GENERATE_ARRAY(1, 10) FROM t",
			want: "ARRAY(SELECT * FROM GENERATE_SERIES(1, 10))",
		},
		{
			name: "argument order survives",
			sql:  "SELECT GENERATE_ARRAY(0, 24, 6) FROM t",
			want: "ARRAY(SELECT * FROM GENERATE_SERIES(0, 24, 6))",
		},
		{
			name: "nested inside other calls",
			sql:  "SELECT MAX(DATETIME(charttime)) FROM chartevents",
			want: "MAX(CAST(charttime AS TIMESTAMP))",
		},
		{
			name: "unknown callee passes through",
			sql:  "SELECT PARSE_TIMESTAMP('%F', s) FROM t",
			want: "PARSE_TIMESTAMP('%F', s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Query(tt.sql)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestResolverSkippedForNonBigQuery(t *testing.T) {
	tr, err := New("postgres", "duckdb")
	require.NoError(t, err)

	// DATETIME is just a function name outside BigQuery.
	out, err := tr.Query("SELECT DATETIME(x) FROM t")
	require.NoError(t, err)
	assert.Contains(t, out, "DATETIME(x)")
}

func TestCustomSubstitution(t *testing.T) {
	tr, err := New("bigquery", "postgres",
		WithSubstitution("MY_ARRAY", func(args []ast.Expr) ast.Expr {
			return &ast.GenerateArrayExpr{Args: args}
		}))
	require.NoError(t, err)

	out, err := tr.Query("SELECT MY_ARRAY(1, 3) FROM t")
	require.NoError(t, err)
	assert.Contains(t, out, "GENERATE_SERIES(1, 3)")
}

func TestQueryErrors(t *testing.T) {
	t.Run("parse error propagates", func(t *testing.T) {
		out, err := Query("SELECT FROM WHERE")
		require.Error(t, err)
		assert.Empty(t, out)
		var perr *parser.ParseError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("no partial output on failure", func(t *testing.T) {
		out, err := Query("this is not sql")
		require.Error(t, err)
		assert.Empty(t, out)
	})
}

func TestQueryToDuckDB(t *testing.T) {
	tr, err := New("bigquery", "duckdb")
	require.NoError(t, err)

	out, err := tr.Query("SELECT GENERATE_ARRAY(1, 5) FROM `physionet-data.mimiciv.patients`")
	require.NoError(t, err)
	assert.Contains(t, out, "GENERATE_SERIES(1, 5)")
	assert.Contains(t, out, "FROM mimiciv.patients")
}

func mustGet(t *testing.T, name string) *dialect.Dialect {
	t.Helper()
	d, ok := dialect.Get(name)
	require.True(t, ok)
	return d
}
