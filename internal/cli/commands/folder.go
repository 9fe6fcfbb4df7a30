package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/medset-labs/sqlporter/internal/adapter"
)

// FolderOptions holds options for the folder command.
type FolderOptions struct {
	Watch bool
}

// NewFolderCommand creates the folder command.
func NewFolderCommand() *cobra.Command {
	opts := &FolderOptions{}

	cmd := &cobra.Command{
		Use:   "folder <source> <destination>",
		Short: "Transpile a directory tree of SQL scripts",
		Long: `Transpile every .sql file under the source directory into the
mirrored location under the destination directory.

Files that fail to transpile are reported and skipped so one broken
script does not block the rest of the tree. With --watch the command
keeps running and reconverts files as they change.`,
		Example: `  sqlporter folder concepts/ build/

  # Keep converting as files change
  sqlporter folder --watch concepts/ build/`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newTranspiler(cmd)
			if err != nil {
				return err
			}

			if !opts.Watch {
				return adapter.Folder(t, args[0], args[1])
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = adapter.Watch(ctx, t, args[0], args[1])
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch for changes and reconvert")

	return cmd
}
