package parser

import (
	"fmt"

	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/token"
)

// Statement parsing: WITH clause, CTEs, SELECT body, SELECT list, ORDER BY.
//
// Grammar:
//
//	statement     → [WITH cte_list] select_body
//	cte_list      → cte ("," cte)*
//	cte           → identifier ["(" column_list ")"] AS "(" statement ")"
//	select_body   → select_core [(UNION|INTERSECT|EXCEPT) [ALL|DISTINCT] select_body]
//	select_core   → SELECT [DISTINCT|ALL] select_list
//	                [FROM from_clause] [WHERE expr]
//	                [GROUP BY expr_list] [HAVING expr]
//	                [ORDER BY order_list] [LIMIT expr] [OFFSET expr]
//	select_list   → select_item ("," select_item)*
//	select_item   → "*" | table "." "*" | expr [AS identifier]
//	order_list    → order_item ("," order_item)*
//	order_item    → expr [ASC|DESC] [NULLS FIRST|LAST]

// parseStatement parses a complete SQL statement.
func (p *Parser) parseStatement() *ast.SelectStmt {
	stmt := &ast.SelectStmt{}

	if p.check(token.WITH) {
		stmt.With = p.parseWithClause()
	}

	stmt.Body = p.parseSelectBody()

	return stmt
}

// ParseStatement parses a complete statement and requires the whole input
// to be consumed.
func (p *Parser) ParseStatement() (*ast.SelectStmt, error) {
	stmt := p.parseStatement()
	if len(p.errors) == 0 && !p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrTrailingInput, p.token.Type))
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmt, nil
}

// parseWithClause parses a WITH clause with CTEs.
func (p *Parser) parseWithClause() *ast.WithClause {
	p.expect(token.WITH)
	with := &ast.WithClause{}

	if p.match(token.RECURSIVE) {
		with.Recursive = true
	}

	for {
		cte := p.parseCTE()
		with.CTEs = append(with.CTEs, cte)

		if !p.match(token.COMMA) {
			break
		}
	}

	return with
}

// parseCTE parses a single CTE.
func (p *Parser) parseCTE() *ast.CTE {
	cte := &ast.CTE{}

	if !p.check(token.IDENT) {
		p.addError("expected CTE name")
		return cte
	}
	cte.Name = p.token.Literal
	p.nextToken()

	// Optional column list: name (a, b) AS (...)
	if p.match(token.LPAREN) {
		for {
			if !p.check(token.IDENT) {
				p.addError("expected column name in CTE column list")
				break
			}
			cte.Columns = append(cte.Columns, p.token.Literal)
			p.nextToken()
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}

	p.expect(token.AS)

	p.expect(token.LPAREN)
	cte.Select = p.parseStatement()
	p.expect(token.RPAREN)

	return cte
}

// parseSelectBody parses a SELECT body with possible set operations.
func (p *Parser) parseSelectBody() *ast.SelectBody {
	body := &ast.SelectBody{}
	body.Left = p.parseSelectCore()

	switch p.token.Type {
	case token.UNION:
		p.nextToken()
		body.Op = ast.SetOpUnion
		if p.match(token.ALL) {
			body.All = true
		} else {
			p.match(token.DISTINCT) // optional
		}
		body.Right = p.parseSelectBody()
	case token.INTERSECT:
		p.nextToken()
		body.Op = ast.SetOpIntersect
		p.match(token.ALL) // optional
		body.Right = p.parseSelectBody()
	case token.EXCEPT:
		p.nextToken()
		body.Op = ast.SetOpExcept
		p.match(token.ALL) // optional
		body.Right = p.parseSelectBody()
	}

	return body
}

// parseSelectCore parses a single SELECT clause.
func (p *Parser) parseSelectCore() *ast.SelectCore {
	p.expect(token.SELECT)
	core := &ast.SelectCore{}

	if p.match(token.DISTINCT) {
		core.Distinct = true
	} else {
		p.match(token.ALL) // optional, consume if present
	}

	core.Columns = p.parseSelectList()

	if p.match(token.FROM) {
		core.From = p.parseFromClause()
	}

	if p.match(token.WHERE) {
		core.Where = p.parseExpression()
	}

	if p.check(token.GROUP) {
		p.nextToken()
		p.expect(token.BY)
		core.GroupBy = p.parseExpressionList()
	}

	if p.match(token.HAVING) {
		core.Having = p.parseExpression()
	}

	if p.check(token.ORDER) {
		p.nextToken()
		p.expect(token.BY)
		core.OrderBy = p.parseOrderByList()
	}

	if p.match(token.LIMIT) {
		core.Limit = p.parseExpression()
	}

	if p.match(token.OFFSET) {
		core.Offset = p.parseExpression()
	}

	return core
}

// parseSelectList parses the list of SELECT items.
func (p *Parser) parseSelectList() []ast.SelectItem {
	var items []ast.SelectItem

	for {
		item := p.parseSelectItem()
		items = append(items, item)

		if !p.match(token.COMMA) {
			break
		}
	}

	return items
}

// parseSelectItem parses a single SELECT item.
func (p *Parser) parseSelectItem() ast.SelectItem {
	item := ast.SelectItem{}

	if p.check(token.STAR) {
		item.Star = true
		p.nextToken()
		return item
	}

	// table.* pattern via 3-token lookahead (no rollback needed)
	if p.check(token.IDENT) && p.checkPeek(token.DOT) && p.peek2.Type == token.STAR {
		item.TableStar = p.token.Literal
		p.nextToken() // consume identifier
		p.nextToken() // consume DOT
		p.nextToken() // consume STAR
		return item
	}

	item.Expr = p.parseExpression()

	// Optional alias
	if p.match(token.AS) {
		if p.check(token.IDENT) {
			item.Alias = p.token.Literal
			p.nextToken()
		} else {
			p.addError("expected alias after AS")
		}
	} else if p.check(token.IDENT) && !p.isAliasBarrier(p.token) {
		item.Alias = p.token.Literal
		p.nextToken()
	}

	return item
}

// parseOrderByList parses a list of ORDER BY items.
func (p *Parser) parseOrderByList() []ast.OrderByItem {
	var items []ast.OrderByItem

	for {
		item := p.parseOrderByItem()
		items = append(items, item)

		if !p.match(token.COMMA) {
			break
		}
	}

	return items
}

// parseOrderByItem parses a single ORDER BY item.
func (p *Parser) parseOrderByItem() ast.OrderByItem {
	item := ast.OrderByItem{}
	item.Expr = p.parseExpression()

	if p.match(token.ASC) {
		item.Desc = false
	} else if p.match(token.DESC) {
		item.Desc = true
	}

	if p.match(token.NULLS) {
		if p.match(token.FIRST) {
			b := true
			item.NullsFirst = &b
		} else if p.match(token.LAST) {
			b := false
			item.NullsFirst = &b
		}
	}

	return item
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []ast.Expr {
	var exprs []ast.Expr

	for {
		expr := p.parseExpression()
		exprs = append(exprs, expr)

		if !p.match(token.COMMA) {
			break
		}
	}

	return exprs
}
