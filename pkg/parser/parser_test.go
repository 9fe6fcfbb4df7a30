package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/token"
)

func TestParseSelectCore(t *testing.T) {
	stmt := parseBQ(t, `
		SELECT DISTINCT subject_id, COUNT(*) AS n
		FROM admissions
		WHERE admission_type = 'EMERGENCY'
		GROUP BY subject_id
		HAVING COUNT(*) > 1
		ORDER BY n DESC NULLS LAST
		LIMIT 10 OFFSET 5`)

	core := stmt.Body.Left
	assert.True(t, core.Distinct)
	require.Len(t, core.Columns, 2)
	assert.Equal(t, "n", core.Columns[1].Alias)
	assert.NotNil(t, core.Where)
	require.Len(t, core.GroupBy, 1)
	assert.NotNil(t, core.Having)
	require.Len(t, core.OrderBy, 1)
	assert.True(t, core.OrderBy[0].Desc)
	require.NotNil(t, core.OrderBy[0].NullsFirst)
	assert.False(t, *core.OrderBy[0].NullsFirst)
	assert.NotNil(t, core.Limit)
	assert.NotNil(t, core.Offset)
}

func TestParseWithClause(t *testing.T) {
	stmt := parseBQ(t, `
		WITH cohort AS (SELECT subject_id FROM icustays),
		     vitals (id, hr) AS (SELECT stay_id, heart_rate FROM chartevents)
		SELECT * FROM cohort`)

	require.NotNil(t, stmt.With)
	require.Len(t, stmt.With.CTEs, 2)
	assert.Equal(t, "cohort", stmt.With.CTEs[0].Name)
	assert.Equal(t, []string{"id", "hr"}, stmt.With.CTEs[1].Columns)
}

func TestParseSetOperations(t *testing.T) {
	stmt := parseBQ(t, "SELECT a FROM t1 UNION ALL SELECT a FROM t2 EXCEPT SELECT a FROM t3")
	body := stmt.Body
	assert.Equal(t, ast.SetOpUnion, body.Op)
	assert.True(t, body.All)
	require.NotNil(t, body.Right)
	assert.Equal(t, ast.SetOpExcept, body.Right.Op)
	require.NotNil(t, body.Right.Right)
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want func(t *testing.T, e ast.Expr)
	}{
		{
			name: "precedence",
			sql:  "SELECT a + b * c",
			want: func(t *testing.T, e ast.Expr) {
				bin := e.(*ast.BinaryExpr)
				assert.Equal(t, token.PLUS, bin.Op)
				right := bin.Right.(*ast.BinaryExpr)
				assert.Equal(t, token.STAR, right.Op)
			},
		},
		{
			name: "not in",
			sql:  "SELECT a NOT IN (1, 2)",
			want: func(t *testing.T, e ast.Expr) {
				in := e.(*ast.InExpr)
				assert.True(t, in.Not)
				assert.Len(t, in.Values, 2)
			},
		},
		{
			name: "between",
			sql:  "SELECT age BETWEEN 18 AND 65",
			want: func(t *testing.T, e ast.Expr) {
				between := e.(*ast.BetweenExpr)
				assert.NotNil(t, between.Low)
				assert.NotNil(t, between.High)
			},
		},
		{
			name: "is not null",
			sql:  "SELECT deathtime IS NOT NULL",
			want: func(t *testing.T, e ast.Expr) {
				isNull := e.(*ast.IsNullExpr)
				assert.True(t, isNull.Not)
			},
		},
		{
			name: "case",
			sql:  "SELECT CASE WHEN a > 1 THEN 'x' ELSE 'y' END",
			want: func(t *testing.T, e ast.Expr) {
				c := e.(*ast.CaseExpr)
				assert.Len(t, c.Whens, 1)
				assert.NotNil(t, c.Else)
			},
		},
		{
			name: "cast with parameters",
			sql:  "SELECT CAST(x AS DECIMAL(10, 2))",
			want: func(t *testing.T, e ast.Expr) {
				cast := e.(*ast.CastExpr)
				assert.Equal(t, "DECIMAL(10, 2)", cast.TypeName)
			},
		},
		{
			name: "interval bare value",
			sql:  "SELECT ts + INTERVAL 1 DAY",
			want: func(t *testing.T, e ast.Expr) {
				bin := e.(*ast.BinaryExpr)
				iv := bin.Right.(*ast.IntervalExpr)
				assert.Equal(t, "DAY", iv.Unit)
				assert.Equal(t, ast.LiteralNumber, iv.Value.(*ast.Literal).Type)
			},
		},
		{
			name: "window function",
			sql:  "SELECT ROW_NUMBER() OVER (PARTITION BY subject_id ORDER BY ts ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)",
			want: func(t *testing.T, e ast.Expr) {
				fc := e.(*ast.FuncCall)
				require.NotNil(t, fc.Window)
				assert.Len(t, fc.Window.PartitionBy, 1)
				require.NotNil(t, fc.Window.Frame)
				assert.Equal(t, ast.FrameUnboundedPreceding, fc.Window.Frame.Start.Type)
				assert.Equal(t, ast.FrameCurrentRow, fc.Window.Frame.End.Type)
			},
		},
		{
			name: "function names are uppercased",
			sql:  "SELECT datetime(charttime)",
			want: func(t *testing.T, e ast.Expr) {
				fc := e.(*ast.FuncCall)
				assert.Equal(t, "DATETIME", fc.Name)
				assert.Len(t, fc.Args, 1)
			},
		},
		{
			name: "count star",
			sql:  "SELECT COUNT(*)",
			want: func(t *testing.T, e ast.Expr) {
				fc := e.(*ast.FuncCall)
				assert.True(t, fc.Star)
			},
		},
		{
			name: "scalar subquery",
			sql:  "SELECT (SELECT MAX(ts) FROM chartevents)",
			want: func(t *testing.T, e ast.Expr) {
				_, ok := e.(*ast.SubqueryExpr)
				assert.True(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseBQ(t, tt.sql)
			require.Len(t, stmt.Body.Left.Columns, 1)
			tt.want(t, stmt.Body.Left.Columns[0].Expr)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{name: "missing from target", sql: "SELECT a FROM"},
		{name: "dangling where", sql: "SELECT a FROM t WHERE"},
		{name: "unclosed paren", sql: "SELECT (a FROM t"},
		{name: "not a select", sql: "DELETE FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithDialect(tt.sql, mustDialect(t, "bigquery"))
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Greater(t, perr.Pos.Line, 0)
		})
	}
}

func TestParseStatementRejectsTrailingInput(t *testing.T) {
	p := NewParser("SELECT a FROM t garbage ( )", mustDialect(t, "bigquery"))
	_, err := p.ParseStatement()
	require.Error(t, err)
}
