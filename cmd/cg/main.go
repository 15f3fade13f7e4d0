// Package main provides the cg CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/matsen/citegraph/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cg",
	Short: "Academic knowledge-graph pipeline CLI",
	Long: `cg builds a knowledge graph from a folder of academic PDFs.

The pipeline extracts metadata from each PDF, reconciles it against
bibliographic services, links papers with similar abstracts, and
assembles papers, authors, organizations, and funding projects into a
queryable graph.

The graph is exported to SQLite so queries run without re-processing,
and to N-Triples for RDF consumers. All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustFindProject finds the enclosing project, exiting on failure.
func mustFindProject() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := config.FindProject(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v (run 'cg config' in your project to create one)", err)
	}
	return root
}

// mustLoadConfig loads the project config, exiting on failure.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
