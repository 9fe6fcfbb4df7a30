package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleSelect(from TableRef, where Expr) *SelectStmt {
	return &SelectStmt{
		Body: &SelectBody{
			Left: &SelectCore{
				Columns: []SelectItem{{Star: true}},
				From:    &FromClause{Source: from},
				Where:   where,
			},
		},
	}
}

func TestTables(t *testing.T) {
	t.Run("simple from", func(t *testing.T) {
		stmt := simpleSelect(&TableName{Schema: "mimiciv", Name: "patients"}, nil)
		tables := Tables(stmt)
		require.Len(t, tables, 1)
		assert.Equal(t, "patients", tables[0].Name)
	})

	t.Run("joins and subqueries", func(t *testing.T) {
		inner := simpleSelect(&TableName{Name: "admissions"}, nil)
		stmt := &SelectStmt{
			With: &WithClause{CTEs: []*CTE{
				{Name: "cohort", Select: simpleSelect(&TableName{Name: "icustays"}, nil)},
			}},
			Body: &SelectBody{
				Left: &SelectCore{
					Columns: []SelectItem{{Star: true}},
					From: &FromClause{
						Source: &TableName{Name: "patients"},
						Joins: []*Join{
							{Type: JoinLeft, Right: &DerivedTable{Select: inner, Alias: "a"}},
						},
					},
					Where: &ExistsExpr{Select: simpleSelect(&TableName{Name: "transfers"}, nil)},
				},
			},
		}
		var names []string
		for _, tn := range Tables(stmt) {
			names = append(names, tn.Name)
		}
		assert.Equal(t, []string{"icustays", "patients", "admissions", "transfers"}, names)
	})

	t.Run("set operation branches", func(t *testing.T) {
		stmt := &SelectStmt{Body: &SelectBody{
			Left: &SelectCore{From: &FromClause{Source: &TableName{Name: "a"}}},
			Op:   SetOpUnion,
			All:  true,
			Right: &SelectBody{
				Left: &SelectCore{From: &FromClause{Source: &TableName{Name: "b"}}},
			},
		}}
		assert.Len(t, Tables(stmt), 2)
	})
}

func TestRewriteExprs(t *testing.T) {
	t.Run("replaces nested calls in place", func(t *testing.T) {
		call := &FuncCall{Name: "DATETIME", Args: []Expr{&ColumnRef{Column: "charttime"}}}
		stmt := simpleSelect(&TableName{Name: "chartevents"}, &BinaryExpr{
			Left:  call,
			Op:    0,
			Right: &Literal{Type: LiteralNull},
		})
		RewriteExprs(stmt, func(e Expr) Expr {
			if fc, ok := e.(*FuncCall); ok && fc.Name == "DATETIME" {
				return &DateTimeExpr{Args: fc.Args}
			}
			return e
		})
		where := stmt.Body.Left.Where.(*BinaryExpr)
		dt, ok := where.Left.(*DateTimeExpr)
		require.True(t, ok)
		require.Len(t, dt.Args, 1)
		assert.Same(t, call.Args[0], dt.Args[0])
	})

	t.Run("visits select list and order by", func(t *testing.T) {
		stmt := &SelectStmt{Body: &SelectBody{Left: &SelectCore{
			Columns: []SelectItem{{Expr: &FuncCall{Name: "F"}}},
			OrderBy: []OrderByItem{{Expr: &FuncCall{Name: "F"}}},
		}}}
		var seen int
		RewriteExprs(stmt, func(e Expr) Expr {
			if fc, ok := e.(*FuncCall); ok && fc.Name == "F" {
				seen++
			}
			return e
		})
		assert.Equal(t, 2, seen)
	})

	t.Run("identity rewrite leaves tree untouched", func(t *testing.T) {
		stmt := simpleSelect(&TableName{Name: "t"}, &IsNullExpr{Expr: &ColumnRef{Column: "x"}})
		RewriteExprs(stmt, func(e Expr) Expr { return e })
		isNull, ok := stmt.Body.Left.Where.(*IsNullExpr)
		require.True(t, ok)
		assert.Equal(t, "x", isNull.Expr.(*ColumnRef).Column)
	})
}
