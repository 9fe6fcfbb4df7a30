// Command sqlporter converts BigQuery SQL scripts to other dialects.
package main

import (
	"os"

	"github.com/medset-labs/sqlporter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
