package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medset-labs/sqlporter/pkg/dialects/bigquery"
	"github.com/medset-labs/sqlporter/pkg/token"
)

func lexAll(l *Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens
}

func TestLexerBasics(t *testing.T) {
	tokens := lexAll(NewLexer("SELECT a, b FROM t WHERE x >= 1.5e3"))

	types := make([]token.Type, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []token.Type{
		token.SELECT, token.IDENT, token.COMMA, token.IDENT,
		token.FROM, token.IDENT, token.WHERE, token.IDENT,
		token.GE, token.NUMBER, token.EOF,
	}, types)
	assert.Equal(t, "1.5e3", tokens[9].Literal)
}

func TestLexerStrings(t *testing.T) {
	tokens := lexAll(NewLexer("'it''s'"))
	require.Equal(t, token.STRING, tokens[0].Type)
	assert.Equal(t, "it's", tokens[0].Literal)
}

func TestLexerComments(t *testing.T) {
	tokens := lexAll(NewLexer("SELECT -- trailing\n/* block */ a"))
	require.Len(t, tokens, 3)
	assert.Equal(t, token.SELECT, tokens[0].Type)
	assert.Equal(t, token.IDENT, tokens[1].Type)
}

func TestLexerQuotedIdentifiers(t *testing.T) {
	t.Run("ansi double quotes", func(t *testing.T) {
		tokens := lexAll(NewLexer(`"col""name"`))
		require.Equal(t, token.IDENT, tokens[0].Type)
		assert.Equal(t, `col"name`, tokens[0].Literal)
		assert.True(t, tokens[0].Quoted)
	})

	t.Run("bigquery backticks", func(t *testing.T) {
		l := NewLexerWithDialect("`physionet-data.mimiciv.patients`", bigquery.BigQuery)
		tokens := lexAll(l)
		require.Equal(t, token.IDENT, tokens[0].Type)
		assert.Equal(t, "physionet-data.mimiciv.patients", tokens[0].Literal)
		assert.True(t, tokens[0].Quoted)
	})
}

func TestLexerPositions(t *testing.T) {
	tokens := lexAll(NewLexer("ab -\ncd"))
	require.Len(t, tokens, 4)
	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 0, tokens[0].Pos.Offset)
	assert.Equal(t, 2, tokens[2].Pos.Line)

	// End() covers adjacency checks for hyphenated names.
	assert.Equal(t, 2, tokens[0].End())
}
