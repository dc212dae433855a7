package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCLIDocs(t *testing.T) {
	root := &cobra.Command{Use: "tool", Short: "Root command", Run: func(*cobra.Command, []string) {}}
	root.Flags().Bool("dry-run", false, "Print without calling AWS")
	root.AddCommand(
		&cobra.Command{Use: "version", Short: "Show version", Run: func(*cobra.Command, []string) {}},
		&cobra.Command{Use: "setup", Short: "Provision table", Run: func(*cobra.Command, []string) {}},
		&cobra.Command{Use: "internal", Hidden: true, Run: func(*cobra.Command, []string) {}},
	)

	var buf bytes.Buffer
	require.NoError(t, writeCLIDocs(&buf, root))

	rendered := buf.String()
	assert.Contains(t, rendered, "# controleopcoes CLI Documentation")
	assert.Contains(t, rendered, "## tool setup")
	assert.Contains(t, rendered, "--dry-run")
	assert.NotContains(t, rendered, "tool internal")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("## tool setup")), bytes.Index(buf.Bytes(), []byte("## tool version")))
}

func TestGenerateCLIDocs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "docs", "CLI.md")

	require.NoError(t, generateCLIDocs(out))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "## controleopcoes setup")
}
