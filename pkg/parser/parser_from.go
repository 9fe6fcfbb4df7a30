package parser

import (
	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/token"
)

// FROM clause parsing: table references, derived tables, JOINs.
//
// Grammar:
//
//	from_clause   → table_ref (join)*
//	table_ref     → table_name | derived_table
//	table_name    → name_part ("." name_part)* [AS identifier]
//	derived_table → "(" statement ")" [AS] identifier
//	join          → [NATURAL] join_type JOIN table_ref [ON expr | USING "(" columns ")"]
//	                | "," table_ref
//	join_type     → [INNER] | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER] | CROSS
//
// A name_part is normally a single identifier. When the dialect allows
// hyphenated identifiers (BigQuery project names), adjacent IDENT-MINUS-
// IDENT runs with no intervening whitespace are joined into one part, so
// physionet-data.admissions lexes as three tokens but parses as the two
// parts "physionet-data" and "admissions".

// parseFromClause parses the FROM clause.
func (p *Parser) parseFromClause() *ast.FromClause {
	from := &ast.FromClause{}
	from.Source = p.parseTableRef()

	for {
		join := p.parseJoin()
		if join == nil {
			break
		}
		from.Joins = append(from.Joins, join)
	}

	return from
}

// parseTableRef parses a table reference.
func (p *Parser) parseTableRef() ast.TableRef {
	if p.check(token.LPAREN) {
		return p.parseDerivedTable()
	}
	return p.parseTableName()
}

// namePart is one dot-separated component of a table path.
type namePart struct {
	text       string
	hyphenated bool
	quoted     bool
}

// parseNamePart reads one component of a table path, joining hyphenated
// runs when the dialect permits them.
func (p *Parser) parseNamePart() (namePart, bool) {
	if !p.check(token.IDENT) {
		return namePart{}, false
	}

	part := namePart{text: p.token.Literal, quoted: p.token.Quoted}
	last := p.token
	p.nextToken()

	if part.quoted || p.dialect == nil || !p.dialect.AllowHyphenIdent {
		return part, true
	}

	// Join IDENT - IDENT/NUMBER runs written without whitespace.
	for p.check(token.MINUS) && p.token.Pos.Offset == last.End() {
		minus := p.token
		next := p.peek
		if next.Type != token.IDENT && next.Type != token.NUMBER {
			break
		}
		if next.Quoted || next.Pos.Offset != minus.Pos.Offset+1 {
			break
		}
		part.text += "-" + next.Literal
		part.hyphenated = true
		last = next
		p.nextToken() // consume MINUS
		p.nextToken() // consume joined part
	}

	return part, true
}

// parseTableName parses a table name with optional schema/catalog
// qualifiers and an optional alias.
func (p *Parser) parseTableName() *ast.TableName {
	table := &ast.TableName{}

	first, ok := p.parseNamePart()
	if !ok {
		p.addError("expected table name")
		return table
	}

	parts := []namePart{first}
	for p.match(token.DOT) {
		part, ok := p.parseNamePart()
		if !ok {
			p.addError("expected identifier after '.'")
			break
		}
		parts = append(parts, part)
	}

	switch len(parts) {
	case 1:
		table.Name = parts[0].text
		// A single quoted part may hold a full dotted path, e.g.
		// `project.dataset.table`; keep it verbatim and let the
		// transpiler decide what to do with it.
		table.Quoted = parts[0].quoted
	case 2:
		if parts[0].hyphenated {
			// A hyphenated first qualifier can only be a project name.
			table.Catalog = parts[0].text
		} else {
			table.Schema = parts[0].text
		}
		table.Name = parts[1].text
	default:
		table.Catalog = parts[0].text
		table.Schema = parts[1].text
		table.Name = parts[2].text
	}

	// Optional alias
	if p.match(token.AS) {
		if p.check(token.IDENT) {
			table.Alias = p.token.Literal
			p.nextToken()
		}
	} else if p.check(token.IDENT) && !p.isAliasBarrier(p.token) {
		table.Alias = p.token.Literal
		p.nextToken()
	}

	return table
}

// parseDerivedTable parses a derived table (subquery in FROM).
func (p *Parser) parseDerivedTable() *ast.DerivedTable {
	p.expect(token.LPAREN)
	derived := &ast.DerivedTable{}
	derived.Select = p.parseStatement()
	p.expect(token.RPAREN)

	if p.match(token.AS) {
		if p.check(token.IDENT) {
			derived.Alias = p.token.Literal
			p.nextToken()
		}
	} else if p.check(token.IDENT) && !p.isAliasBarrier(p.token) {
		derived.Alias = p.token.Literal
		p.nextToken()
	}

	return derived
}

// parseJoin parses a JOIN clause. Returns nil when the current token does
// not start a join.
func (p *Parser) parseJoin() *ast.Join {
	join := &ast.Join{}

	// Comma join (implicit cross join)
	if p.match(token.COMMA) {
		join.Type = ast.JoinComma
		join.Right = p.parseTableRef()
		return join
	}

	if p.match(token.NATURAL) {
		join.Natural = true
	}

	switch p.token.Type {
	case token.JOIN, token.INNER:
		join.Type = ast.JoinInner
		p.match(token.INNER)
	case token.LEFT:
		join.Type = ast.JoinLeft
		p.nextToken()
		p.match(token.OUTER)
	case token.RIGHT:
		join.Type = ast.JoinRight
		p.nextToken()
		p.match(token.OUTER)
	case token.FULL:
		join.Type = ast.JoinFull
		p.nextToken()
		p.match(token.OUTER)
	case token.CROSS:
		join.Type = ast.JoinCross
		p.nextToken()
	default:
		if join.Natural {
			p.addError("expected join after NATURAL")
		}
		return nil
	}

	if !p.expect(token.JOIN) {
		return nil
	}

	join.Right = p.parseTableRef()
	p.parseJoinCondition(join)
	return join
}

// parseJoinCondition handles ON/USING/NATURAL validation.
func (p *Parser) parseJoinCondition(join *ast.Join) {
	switch {
	case join.Natural:
		if p.check(token.ON) {
			p.addError("NATURAL JOIN cannot have ON clause")
		}
		if p.check(token.USING) {
			p.addError("NATURAL JOIN cannot have USING clause")
		}
	case p.match(token.ON):
		join.Condition = p.parseExpression()
	case p.match(token.USING):
		join.Using = p.parseUsingColumns()
	}
}

// parseUsingColumns parses the column list in USING (col1, col2, ...).
func (p *Parser) parseUsingColumns() []string {
	p.expect(token.LPAREN)
	var cols []string
	for {
		if !p.check(token.IDENT) {
			p.addError("expected column name in USING clause")
			break
		}
		cols = append(cols, p.token.Literal)
		p.nextToken()
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return cols
}
