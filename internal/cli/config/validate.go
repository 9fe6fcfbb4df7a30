package config

import (
	"fmt"
	"strings"

	"github.com/medset-labs/sqlporter/pkg/dialect"
)

// Validate checks that both dialects are registered and the catalog
// marker is usable.
func (c *Config) Validate() error {
	if err := validateDialect("source", c.From); err != nil {
		return err
	}
	if err := validateDialect("destination", c.To); err != nil {
		return err
	}
	if strings.ContainsAny(c.Catalog, ".`\"") {
		return fmt.Errorf("catalog marker %q must be a bare project name", c.Catalog)
	}
	return nil
}

func validateDialect(role, name string) error {
	if name == "" {
		return fmt.Errorf("%s dialect is required (set it in sqlporter.yaml or via --from/--to)", role)
	}
	if _, ok := dialect.Get(name); !ok {
		return fmt.Errorf("unknown %s dialect %q (available: %s)",
			role, name, strings.Join(dialect.List(), ", "))
	}
	return nil
}
