// Package commands implements the sqlporter subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/medset-labs/sqlporter/internal/cli/config"
	"github.com/medset-labs/sqlporter/internal/transpile"
)

// newTranspiler builds a transpiler from the config stored in the
// command context.
func newTranspiler(cmd *cobra.Command) (*transpile.Transpiler, error) {
	cfg := config.FromContext(cmd.Context())
	return transpile.New(cfg.From, cfg.To, transpile.WithCatalog(cfg.Catalog))
}
