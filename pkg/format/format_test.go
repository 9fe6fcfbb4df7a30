package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/dialect"
	"github.com/medset-labs/sqlporter/pkg/dialects/duckdb"
	"github.com/medset-labs/sqlporter/pkg/dialects/postgres"
	"github.com/medset-labs/sqlporter/pkg/parser"

	_ "github.com/medset-labs/sqlporter/pkg/dialects/bigquery"
)

// reformat parses with the bigquery dialect and renders with the target.
func reformat(t *testing.T, sql string, target *dialect.Dialect) string {
	t.Helper()
	src, ok := dialect.Get("bigquery")
	require.True(t, ok)
	stmt, err := parser.ParseWithDialect(sql, src)
	require.NoError(t, err)
	out, err := Format(stmt, target)
	require.NoError(t, err)
	return out
}

func TestFormatSelect(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "simple select",
			sql:  "select a, b from t",
			want: "SELECT\n  a,\n  b\nFROM t\n",
		},
		{
			name: "where and order",
			sql:  "select a from t where a > 1 order by a desc",
			want: "SELECT\n  a\nFROM t\nWHERE\n  a > 1\nORDER BY\n  a DESC\n",
		},
		{
			name: "group by having limit",
			sql:  "select subject_id from admissions group by subject_id having count(*) > 1 limit 5",
			want: "SELECT\n  subject_id\nFROM admissions\nGROUP BY\n  subject_id\nHAVING\n  COUNT(*) > 1\nLIMIT 5\n",
		},
		{
			name: "join with on",
			sql:  "select * from a left join b on a.id = b.id",
			want: "SELECT\n  *\nFROM a\nLEFT JOIN b\n  ON a.id = b.id\n",
		},
		{
			name: "union all",
			sql:  "select a from t1 union all select a from t2",
			want: "SELECT\n  a\nFROM t1\nUNION ALL\nSELECT\n  a\nFROM t2\n",
		},
		{
			name: "cte",
			sql:  "with c as (select a from t) select * from c",
			want: "WITH\n  c AS (\n    SELECT\n      a\n    FROM t\n  )\nSELECT\n  *\nFROM c\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reformat(t, tt.sql, postgres.Postgres))
		})
	}
}

func TestFormatExpressions(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string // rendered select item line
	}{
		{name: "string literal", sql: "select 'x' from t", want: "  'x'"},
		{name: "is not null", sql: "select a is not null from t", want: "  a IS NOT NULL"},
		{name: "between", sql: "select a between 1 and 2 from t", want: "  a BETWEEN 1 AND 2"},
		{name: "not in list", sql: "select a not in (1, 2) from t", want: "  a NOT IN (1, 2)"},
		{name: "cast", sql: "select cast(a as int) from t", want: "  CAST(a AS INT)"},
		{name: "interval quoted for postgres", sql: "select ts + interval 1 day from t", want: "  ts + INTERVAL '1' DAY"},
		{name: "window", sql: "select rank() over (partition by a order by b) from t", want: "  RANK() OVER (PARTITION BY a ORDER BY b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := reformat(t, tt.sql, postgres.Postgres)
			assert.Contains(t, out, tt.want+"\n")
		})
	}
}

func TestFormatQuotedTableName(t *testing.T) {
	stmt := &ast.SelectStmt{Body: &ast.SelectBody{Left: &ast.SelectCore{
		Columns: []ast.SelectItem{{Star: true}},
		From:    &ast.FromClause{Source: &ast.TableName{Name: "mimiciv.patients", Quoted: true}},
	}}}

	out, err := Format(stmt, postgres.Postgres)
	require.NoError(t, err)
	assert.Contains(t, out, `FROM "mimiciv.patients"`)

	// After the transpiler clears the flag, the same name renders bare.
	stmt.Body.Left.From.Source.(*ast.TableName).Quoted = false
	out, err = Format(stmt, postgres.Postgres)
	require.NoError(t, err)
	assert.Contains(t, out, "FROM mimiciv.patients")
}

func selectExpr(e ast.Expr) *ast.SelectStmt {
	return &ast.SelectStmt{Body: &ast.SelectBody{Left: &ast.SelectCore{
		Columns: []ast.SelectItem{{Expr: e}},
		From:    &ast.FromClause{Source: &ast.TableName{Name: "t"}},
	}}}
}

func TestFormatTypedFuncs(t *testing.T) {
	col := func(name string) ast.Expr { return &ast.ColumnRef{Column: name} }
	num := func(v string) ast.Expr { return &ast.Literal{Type: ast.LiteralNumber, Value: v} }
	str := func(v string) ast.Expr { return &ast.Literal{Type: ast.LiteralString, Value: v} }

	tests := []struct {
		name    string
		expr    ast.Expr
		dialect *dialect.Dialect
		want    string
	}{
		{
			name:    "datetime cast",
			expr:    &ast.DateTimeExpr{Args: []ast.Expr{col("charttime")}},
			dialect: postgres.Postgres,
			want:    "CAST(charttime AS TIMESTAMP)",
		},
		{
			name:    "datetime with zone",
			expr:    &ast.DateTimeExpr{Args: []ast.Expr{col("charttime"), str("UTC")}},
			dialect: postgres.Postgres,
			want:    "CAST(charttime AS TIMESTAMP) AT TIME ZONE 'UTC'",
		},
		{
			name: "datetime from parts",
			expr: &ast.DateTimeExpr{Args: []ast.Expr{
				num("2020"), num("1"), num("2"), num("3"), num("4"), num("5"),
			}},
			dialect: postgres.Postgres,
			want:    "MAKE_TIMESTAMP(2020, 1, 2, 3, 4, 5)",
		},
		{
			name:    "generate array postgres",
			expr:    &ast.GenerateArrayExpr{Args: []ast.Expr{num("1"), num("10")}},
			dialect: postgres.Postgres,
			want:    "ARRAY(SELECT * FROM GENERATE_SERIES(1, 10))",
		},
		{
			name:    "generate array with step duckdb",
			expr:    &ast.GenerateArrayExpr{Args: []ast.Expr{num("0"), num("24"), num("6")}},
			dialect: duckdb.DuckDB,
			want:    "GENERATE_SERIES(0, 24, 6)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Format(selectExpr(tt.expr), tt.dialect)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestFormatRenderErrors(t *testing.T) {
	bare := &dialect.Dialect{Name: "ansi", IdentQuote: '"'}

	t.Run("missing renderer", func(t *testing.T) {
		_, err := Format(selectExpr(&ast.DateTimeExpr{Args: []ast.Expr{&ast.ColumnRef{Column: "x"}}}), bare)
		require.Error(t, err)
		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "DATETIME", rerr.Construct)
		assert.Equal(t, "ansi", rerr.Dialect)
	})

	t.Run("bad arity", func(t *testing.T) {
		_, err := Format(selectExpr(&ast.DateTimeExpr{Args: []ast.Expr{
			&ast.ColumnRef{Column: "a"}, &ast.ColumnRef{Column: "b"}, &ast.ColumnRef{Column: "c"},
		}}), postgres.Postgres)
		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.NotEmpty(t, rerr.Reason)
	})
}
