// Package format provides SQL statement formatting.
package format

import (
	"bytes"
	"strings"

	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/dialect"
	"github.com/medset-labs/sqlporter/pkg/token"
)

const indentSize = 2

// Printer handles SQL formatting with proper indentation and style. It
// also implements dialect.Printer so per-dialect function renderers can
// write through it.
type Printer struct {
	dialect     *dialect.Dialect
	output      *bytes.Buffer
	depth       int
	atLineStart bool
	err         error // first render error, if any
}

func newPrinter(d *dialect.Dialect) *Printer {
	return &Printer{
		dialect:     d,
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n") + "\n"
}

// fail records the first render error; later output is discarded by Format.
func (p *Printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// kw prints keywords based on their token types.
func (p *Printer) kw(tokens ...token.Type) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// ident prints an identifier, quoting it in the dialect's style when asked.
func (p *Printer) ident(name string, quoted bool) {
	if quoted {
		p.write(p.dialect.QuoteIdent(name))
		return
	}
	p.write(name)
}

// formatList prints a list of items with separators.
// count is the number of items, format is called for each index,
// sep is the separator string, multiline adds newlines after separators.
func (p *Printer) formatList(count int, format func(i int), sep string, multiline bool) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
			if multiline {
				p.writeln()
			}
		}
	}
}

// ---------- dialect.Printer ----------

// Write appends raw text (implements dialect.Printer).
func (p *Printer) Write(s string) {
	p.write(s)
}

// Keyword appends an uppercased keyword (implements dialect.Printer).
func (p *Printer) Keyword(s string) {
	p.write(strings.ToUpper(s))
}

// FormatExpr renders a full expression (implements dialect.Printer).
func (p *Printer) FormatExpr(e ast.Expr) {
	p.formatExpr(e)
}
