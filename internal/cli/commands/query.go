package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Input string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Transpile a single SQL query",
		Long: `Transpile one SQL query from the source dialect to the destination
dialect and print the result.

The query is taken from the command line, from a file via --input, or
from stdin when piped.`,
		Example: `  # Transpile SQL directly
  sqlporter query "SELECT * FROM physionet-data.mimiciv.patients"

  # Read from a file
  sqlporter query --input age.sql

  # Read from stdin
  cat age.sql | sqlporter query

  # Target DuckDB instead of Postgres
  sqlporter query --to duckdb "SELECT GENERATE_ARRAY(1, 10)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	var sqlQuery string

	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	default:
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	}

	if strings.TrimSpace(sqlQuery) == "" {
		return fmt.Errorf("no SQL to transpile (pass it as an argument, via --input, or on stdin)")
	}

	t, err := newTranspiler(cmd)
	if err != nil {
		return err
	}

	out, err := t.Query(sqlQuery)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
