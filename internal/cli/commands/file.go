package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medset-labs/sqlporter/internal/adapter"
)

// NewFileCommand creates the file command.
func NewFileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "file <source> <destination>",
		Short: "Transpile a single SQL script",
		Long: `Transpile one SQL script into a materialization script.

The output wraps the converted query in DROP TABLE / CREATE TABLE AS
statements named after the source file, so the script can be executed
directly against the destination database.`,
		Example: `  sqlporter file concepts/age.sql build/age.sql

  # Target DuckDB
  sqlporter file --to duckdb concepts/age.sql build/age.sql`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newTranspiler(cmd)
			if err != nil {
				return err
			}
			if err := adapter.File(t, args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[1])
			return nil
		},
	}
}
