package parser

import (
	"fmt"

	"github.com/medset-labs/sqlporter/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken    = "unexpected token %s, expected %s"
	ErrExpectedExpression = "expected expression, got %s"
	ErrExpectedTableName  = "expected table name, got %s"
	ErrTrailingInput      = "unexpected input after statement: %s"
)
