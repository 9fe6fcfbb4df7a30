package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medset-labs/sqlporter/internal/cli/config"
)

// chdirTemp changes into a fresh temp dir for the test and restores the
// previous working directory on cleanup (t.Chdir needs Go 1.24+).
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	chdirTemp(t)

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootQuery(t *testing.T) {
	out, err := executeRoot(t, "query", "SELECT * FROM physionet-data.mimiciv.icustays")
	require.NoError(t, err)
	assert.Contains(t, out, "FROM mimiciv.icustays")
}

func TestRootFlagsReachTranspiler(t *testing.T) {
	out, err := executeRoot(t, "query", "--to", "duckdb", "--catalog", "my-org",
		"SELECT GENERATE_ARRAY(1, 3) FROM `my-org.mimiciv.patients`")
	require.NoError(t, err)
	assert.Contains(t, out, "GENERATE_SERIES(1, 3)")
	assert.Contains(t, out, "FROM mimiciv.patients")
}

func TestRootRejectsUnknownDialect(t *testing.T) {
	_, err := executeRoot(t, "query", "--to", "oracle", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestRootHelpSkipsConfigLoad(t *testing.T) {
	out, err := executeRoot(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlporter")
}
