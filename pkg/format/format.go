package format

import (
	"fmt"

	"github.com/medset-labs/sqlporter/pkg/ast"
	"github.com/medset-labs/sqlporter/pkg/dialect"
)

// Format renders a parsed SQL statement in the given dialect. It returns a
// RenderError when the statement contains a node the dialect has no
// spelling for.
func Format(stmt *ast.SelectStmt, d *dialect.Dialect) (string, error) {
	p := newPrinter(d)
	p.formatSelectStmt(stmt)
	if p.err != nil {
		return "", p.err
	}
	return p.String(), nil
}

// RenderError reports a construct the destination dialect cannot express.
type RenderError struct {
	Dialect   string
	Construct string
	Reason    string
}

func (e *RenderError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot render %s for dialect %s: %s", e.Construct, e.Dialect, e.Reason)
	}
	return fmt.Sprintf("cannot render %s for dialect %s", e.Construct, e.Dialect)
}
