// Package main provides a utility to generate a single markdown file documenting all CLI commands.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/controleopcoes/controleopcoes/cmd/cli/cmd"
	"github.com/controleopcoes/controleopcoes/internal/constants"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func main() {
	var outFile string
	flag.StringVar(&outFile, "out", "./docs/CLI.md", "output file for generated markdown")
	flag.Parse()

	if outFile == "" {
		log.Fatal("error: output file is required")
	}

	if err := generateCLIDocs(outFile); err != nil {
		log.Fatalf("error: %s", err)
	}
}

func generateCLIDocs(outFile string) error {
	if err := os.MkdirAll(filepath.Dir(outFile), 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(filepath.Clean(outFile))
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: error closing file: %v", closeErr)
		}
	}()

	if err = writeCLIDocs(file, cmd.RootCmd()); err != nil {
		return err
	}

	log.Printf("generated CLI documentation in %s", outFile)
	return nil
}

// writeCLIDocs writes the markdown of root and every available subcommand, sorted by name.
func writeCLIDocs(w io.Writer, root *cobra.Command) error {
	root.DisableAutoGenTag = true

	if _, err := fmt.Fprintf(w, "# %s CLI Documentation\n\n", constants.ProjectName); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	return walkCommands(root, func(c *cobra.Command) error {
		// Sections are concatenated into one file, so cross-links point at anchors.
		linkHandler := func(name string) string {
			return "#" + name[:len(name)-len(filepath.Ext(name))]
		}
		if err := doc.GenMarkdownCustom(c, w, linkHandler); err != nil {
			return fmt.Errorf("generating markdown for %s: %w", c.CommandPath(), err)
		}
		_, err := fmt.Fprintln(w)
		return err
	})
}

func walkCommands(c *cobra.Command, fn func(*cobra.Command) error) error {
	if !c.IsAvailableCommand() && c.HasParent() {
		return nil
	}

	if err := fn(c); err != nil {
		return err
	}

	subcommands := c.Commands()
	sort.Slice(subcommands, func(i, j int) bool {
		return subcommands[i].Name() < subcommands[j].Name()
	})

	for _, sub := range subcommands {
		if err := walkCommands(sub, fn); err != nil {
			return err
		}
	}
	return nil
}
