package parser

import (
	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/token"
)

// Expression precedence parsing using a Pratt parser.
//
// Precedence levels:
//
//	precedenceNone       = 0
//	precedenceOr         = 1
//	precedenceAnd        = 2
//	precedenceNot        = 3
//	precedenceComparison = 4  (=, !=, <, >, <=, >=, IS, IN, BETWEEN, LIKE)
//	precedenceAddition   = 5  (+, -, ||)
//	precedenceMultiply   = 6  (*, /, %)
//	precedenceUnary      = 7  (-, +, NOT)

const (
	precedenceNone = iota
	precedenceOr
	precedenceAnd
	precedenceNot
	precedenceComparison
	precedenceAddition
	precedenceMultiply
	precedenceUnary
)

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseExpressionWithPrecedence(precedenceNone + 1)
}

// parseExpressionWithPrecedence implements Pratt parsing.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) ast.Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := p.infixPrecedence(p.token.Type)
		if prec < minPrecedence {
			break
		}

		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// parsePrefixExpr parses prefix expressions (unary operators and primary expressions).
func (p *Parser) parsePrefixExpr() ast.Expr {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(precedenceNot)
		return &ast.UnaryExpr{Op: token.NOT, Expr: expr}

	case token.MINUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(precedenceUnary)
		return &ast.UnaryExpr{Op: token.MINUS, Expr: expr}

	case token.PLUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(precedenceUnary)
		return &ast.UnaryExpr{Op: token.PLUS, Expr: expr}

	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the precedence of t as an infix operator, or
// precedenceNone if it is not one.
func (p *Parser) infixPrecedence(t token.Type) int {
	switch t {
	case token.OR:
		return precedenceOr
	case token.AND:
		return precedenceAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE,
		token.IS, token.IN, token.BETWEEN, token.LIKE:
		return precedenceComparison
	case token.NOT:
		// NOT as infix (for NOT IN, NOT LIKE, NOT BETWEEN)
		return precedenceComparison
	case token.PLUS, token.MINUS, token.DPIPE:
		return precedenceAddition
	case token.STAR, token.SLASH, token.PERCENT:
		return precedenceMultiply
	default:
		return precedenceNone
	}
}

// parseInfixExpr parses an infix expression given the left operand and current precedence.
func (p *Parser) parseInfixExpr(left ast.Expr, prec int) ast.Expr {
	switch p.token.Type {
	case token.NOT:
		return p.parseNotInfixExpr(left)

	case token.IS:
		return p.parseIsExpr(left)

	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, false)

	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, false)

	case token.LIKE:
		p.nextToken()
		return p.parseLikeExpr(left, false)
	}

	// Standard binary operators
	op := p.token
	p.nextToken()

	// Parse right operand with higher precedence (left-associative)
	right := p.parseExpressionWithPrecedence(prec + 1)

	return &ast.BinaryExpr{Left: left, Op: op.Type, Right: right}
}

// parseNotInfixExpr handles NOT as an infix modifier (NOT IN, NOT BETWEEN, NOT LIKE).
func (p *Parser) parseNotInfixExpr(left ast.Expr) ast.Expr {
	p.nextToken() // consume NOT

	switch p.token.Type {
	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, true)

	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, true)

	case token.LIKE:
		p.nextToken()
		return p.parseLikeExpr(left, true)

	default:
		p.addError("expected IN, BETWEEN, or LIKE after NOT")
		return left
	}
}

// parseIsExpr parses IS [NOT] NULL.
func (p *Parser) parseIsExpr(left ast.Expr) ast.Expr {
	p.nextToken() // consume IS

	isNot := p.match(token.NOT)

	if p.match(token.NULL) {
		return &ast.IsNullExpr{Expr: left, Not: isNot}
	}

	p.addError("expected NULL after IS")
	return left
}

// parseInExpr parses an IN expression.
func (p *Parser) parseInExpr(left ast.Expr, not bool) ast.Expr {
	p.expect(token.LPAREN)
	in := &ast.InExpr{Expr: left, Not: not}

	if p.check(token.SELECT) || p.check(token.WITH) {
		in.Query = p.parseStatement()
	} else {
		in.Values = p.parseExpressionList()
	}

	p.expect(token.RPAREN)
	return in
}

// parseBetweenExpr parses a BETWEEN expression. Bounds are parsed at
// addition precedence to avoid capturing the separating AND.
func (p *Parser) parseBetweenExpr(left ast.Expr, not bool) ast.Expr {
	between := &ast.BetweenExpr{Expr: left, Not: not}
	between.Low = p.parseExpressionWithPrecedence(precedenceAddition)
	p.expect(token.AND)
	between.High = p.parseExpressionWithPrecedence(precedenceAddition)
	return between
}

// parseLikeExpr parses a LIKE expression.
func (p *Parser) parseLikeExpr(left ast.Expr, not bool) ast.Expr {
	like := &ast.LikeExpr{Expr: left, Not: not}
	like.Pattern = p.parseExpressionWithPrecedence(precedenceAddition)
	return like
}
