// Package adapter moves SQL between the transpiler and the filesystem:
// single files, directory trees, and a watch mode that reconverts files as
// they change.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Transpiler converts one SQL query between dialects.
type Transpiler interface {
	Query(sql string) (string, error)
}

// Header marks generated files so nobody edits them by hand.
const Header = "-- THIS SCRIPT IS AUTOMATICALLY GENERATED. DO NOT EDIT IT DIRECTLY.\n"

// File transpiles a single SQL script. The output is wrapped in DDL that
// materializes the query as a table named after the source file, so a
// directory of SELECT scripts becomes a directory of CREATE TABLE scripts.
func File(t Transpiler, src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	converted, err := t.Query(string(data))
	if err != nil {
		return fmt.Errorf("transpile %s: %w", src, err)
	}

	stem := tableStem(src)
	var out strings.Builder
	out.WriteString(Header)
	out.WriteString(fmt.Sprintf("DROP TABLE IF EXISTS %s; CREATE TABLE %s AS\n", stem, stem))
	out.WriteString(converted)

	if err := os.WriteFile(dst, []byte(out.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

// tableStem derives the materialized table name from the source filename.
func tableStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// isSQL reports whether the path names a SQL script.
func isSQL(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sql")
}
