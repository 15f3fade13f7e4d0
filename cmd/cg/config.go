package main

import (
	"fmt"
	"os"

	"github.com/matsen/citegraph/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values in .citegraph/config.yaml.

Usage:
  cg config                               # Show all config
  cg config pdf_dir                       # Get a value
  cg config pdf_dir /path/to/pdfs         # Set a value
  cg config similarity.threshold 0.3      # Thresholds are numbers

Every value can also be overridden per invocation with a CG_-prefixed
environment variable (pdf_dir -> CG_PDF_DIR).`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := findOrInitProject()
	cfg := mustLoadConfig(root)

	// No args: show all keys.
	if len(args) == 0 {
		if humanOutput {
			for _, key := range config.Keys() {
				value, _ := cfg.Get(key)
				fmt.Printf("%-22s %s\n", key, value)
			}
			return nil
		}
		out := make(map[string]string, len(config.Keys()))
		for _, key := range config.Keys() {
			value, _ := cfg.Get(key)
			out[key] = value
		}
		return outputJSON(out)
	}

	key := args[0]

	// One arg: get.
	if len(args) == 1 {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		if humanOutput {
			fmt.Println(value)
			return nil
		}
		return outputJSON(map[string]string{key: value})
	}

	// Two args: set and save.
	if err := cfg.Set(key, args[1]); err != nil {
		return err
	}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("%s = %s\n", key, args[1])
		return nil
	}
	return outputJSON(StatusResponse{Status: "updated", Path: config.ConfigPath(root)})
}

// findOrInitProject returns the enclosing project root, falling back to
// the current directory so `cg config ... set` can bootstrap a project.
func findOrInitProject() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	if root, err := config.FindProject(cwd); err == nil {
		return root
	}
	return cwd
}
