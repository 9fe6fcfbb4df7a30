package transpile

import (
	"strings"

	"github.com/medset-labs/sqlporter/pkg/ast"
)

// normalizeCatalogs strips the configured catalog marker from every table
// reference in the statement. Two shapes occur in the wild:
//
//   - the marker parsed into the catalog slot (unquoted qualified names,
//     e.g. physionet-data.mimiciv.patients): drop the qualifier;
//   - the marker embedded in a quoted whole-path name
//     (e.g. `physionet-data.mimiciv.patients`): strip the "marker."
//     prefix and clear the quoting so the rest renders as an ordinary
//     qualified name.
//
// Only the exact "marker." boundary matches; a name that merely contains
// or extends the marker (physionet-database.x) is left alone. Running the
// pass twice is a no-op.
func (t *Transpiler) normalizeCatalogs(stmt ast.Statement) {
	if t.catalog == "" {
		return
	}
	prefix := t.catalog + "."

	for _, table := range ast.Tables(stmt) {
		switch {
		case table.Catalog == t.catalog:
			table.Catalog = ""
		case strings.HasPrefix(table.Name, prefix):
			table.Name = strings.TrimPrefix(table.Name, prefix)
			table.Quoted = false
		}
	}
}
