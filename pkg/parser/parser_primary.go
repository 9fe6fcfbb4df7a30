package parser

import (
	"fmt"
	"strings"

	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/token"
)

// Primary expression parsing: literals, column refs, function calls.
//
// Grammar:
//
//	primary       → literal | column_ref | func_call | paren_expr
//	              | case_expr | cast_expr | exists_expr | interval_expr
//	literal       → NUMBER | STRING | TRUE | FALSE | NULL
//	column_ref    → [table "."] column
//	func_call     → identifier "(" [DISTINCT] [expr_list | "*"] ")" [OVER window_spec]
//	interval_expr → INTERVAL expr identifier

// parsePrimary parses primary expressions.
func (p *Parser) parsePrimary() ast.Expr {
	switch p.token.Type {
	case token.NUMBER:
		lit := &ast.Literal{Type: ast.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.STRING:
		lit := &ast.Literal{Type: ast.LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.TRUE:
		p.nextToken()
		return &ast.Literal{Type: ast.LiteralBool, Value: "true"}

	case token.FALSE:
		p.nextToken()
		return &ast.Literal{Type: ast.LiteralBool, Value: "false"}

	case token.NULL:
		p.nextToken()
		return &ast.Literal{Type: ast.LiteralNull, Value: "null"}

	case token.CASE:
		return p.parseCaseExpr()

	case token.CAST:
		return p.parseCastExpr()

	case token.INTERVAL:
		return p.parseIntervalExpr()

	case token.NOT:
		if p.checkPeek(token.EXISTS) {
			p.nextToken() // consume NOT
			return p.parseExistsExpr(true)
		}
		p.nextToken()
		return &ast.UnaryExpr{Op: token.NOT, Expr: p.parsePrimary()}

	case token.EXISTS:
		return p.parseExistsExpr(false)

	case token.IDENT:
		return p.parseIdentifierExpr()

	case token.LPAREN:
		return p.parseParenExpr()

	default:
		p.addError(fmt.Sprintf(ErrExpectedExpression, p.token.Type))
		p.nextToken()
		return nil
	}
}

// parseIdentifierExpr parses an identifier which could be a column ref or function call.
func (p *Parser) parseIdentifierExpr() ast.Expr {
	name := p.token.Literal
	p.nextToken()

	if p.check(token.LPAREN) {
		return p.parseFuncCall(name)
	}

	if p.check(token.DOT) {
		return p.parseQualifiedColumnRef(name)
	}

	return &ast.ColumnRef{Column: name}
}

// parseQualifiedColumnRef parses a qualified column reference.
func (p *Parser) parseQualifiedColumnRef(firstPart string) ast.Expr {
	parts := []string{firstPart}

	for p.match(token.DOT) {
		if p.check(token.IDENT) {
			parts = append(parts, p.token.Literal)
			p.nextToken()
		}
	}

	ref := &ast.ColumnRef{}
	switch len(parts) {
	case 2:
		ref.Table = parts[0]
		ref.Column = parts[1]
	default:
		// Deeper qualification collapses to table.column; the extra
		// qualifiers carry no meaning for rendering.
		ref.Table = parts[len(parts)-2]
		ref.Column = parts[len(parts)-1]
	}

	return ref
}

// parseFuncCall parses a function call.
func (p *Parser) parseFuncCall(name string) ast.Expr {
	fn := &ast.FuncCall{Name: strings.ToUpper(name)}

	p.expect(token.LPAREN)

	// COUNT(*) or other aggregate(*)
	if p.check(token.STAR) {
		fn.Star = true
		p.nextToken()
	} else if !p.check(token.RPAREN) {
		if p.match(token.DISTINCT) {
			fn.Distinct = true
		}

		for {
			arg := p.parseExpression()
			fn.Args = append(fn.Args, arg)

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	p.expect(token.RPAREN)

	// OVER clause (window function)
	if p.match(token.OVER) {
		fn.Window = p.parseWindowSpec()
	}

	return fn
}

// parseIntervalExpr parses an INTERVAL literal. Both the ANSI quoted form
// (INTERVAL '1' DAY) and BigQuery's bare form (INTERVAL 1 DAY) produce the
// same node; the destination dialect decides how to spell the value.
func (p *Parser) parseIntervalExpr() ast.Expr {
	p.expect(token.INTERVAL)
	iv := &ast.IntervalExpr{}

	switch p.token.Type {
	case token.NUMBER:
		iv.Value = &ast.Literal{Type: ast.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
	case token.STRING:
		iv.Value = &ast.Literal{Type: ast.LiteralString, Value: p.token.Literal}
		p.nextToken()
	default:
		p.addError(fmt.Sprintf("expected interval value, got %s", p.token.Type))
		return iv
	}

	if p.check(token.IDENT) {
		iv.Unit = strings.ToUpper(p.token.Literal)
		p.nextToken()
	} else {
		p.addError(fmt.Sprintf("expected interval unit, got %s", p.token.Type))
	}

	return iv
}
