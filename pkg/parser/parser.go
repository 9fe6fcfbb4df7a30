// Package parser provides dialect-aware SQL parsing.
//
// # Usage
//
//	d, _ := dialect.Get("bigquery")
//	stmt, err := parser.ParseWithDialect("SELECT a, b FROM t", d)
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for a subset of SQL:
//
//	statement     → [WITH cte_list] select_body
//	select_body   → select_core [(UNION|INTERSECT|EXCEPT) [ALL] select_body]
//	select_core   → SELECT [DISTINCT] select_list [FROM from_clause]
//	                [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	                [ORDER BY order_list] [LIMIT expr] [OFFSET expr]
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"

	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/dialect"
	"github.com/medset-labs/sqlporter/pkg/token"
)

// Parser parses SQL into an AST.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	errors  []error
	dialect *dialect.Dialect
}

// NewParser creates a new parser for the given SQL input and dialect.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	p := &Parser{
		lexer:   NewLexerWithDialect(sql, d),
		dialect: d,
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// ParseWithDialect parses the SQL with a specific dialect and returns the
// AST. The whole input must parse; trailing text is an error.
func ParseWithDialect(sql string, d *dialect.Dialect) (*ast.SelectStmt, error) {
	p := NewParser(sql, d)
	return p.ParseStatement()
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.Type) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.Type) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.Type) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, t))
	return false
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// ---------- Keyword Helpers ----------

// isClauseKeyword returns true if token starts a new clause or terminates
// the current one.
func (p *Parser) isClauseKeyword(tok token.Token) bool {
	switch tok.Type {
	case token.FROM, token.WHERE, token.GROUP, token.HAVING,
		token.ORDER, token.LIMIT, token.OFFSET,
		token.UNION, token.INTERSECT, token.EXCEPT:
		return true
	}
	return false
}

// isJoinKeyword returns true if token is a JOIN-related keyword.
func (p *Parser) isJoinKeyword(tok token.Token) bool {
	switch tok.Type {
	case token.JOIN, token.LEFT, token.RIGHT, token.INNER, token.OUTER,
		token.FULL, token.CROSS, token.NATURAL, token.ON, token.USING:
		return true
	}
	return false
}

// isAliasBarrier returns true if the token cannot be an implicit alias.
func (p *Parser) isAliasBarrier(tok token.Token) bool {
	return p.isClauseKeyword(tok) || p.isJoinKeyword(tok)
}
