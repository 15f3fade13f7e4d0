package main

import (
	"fmt"
	"os"

	"github.com/matsen/citegraph/internal/config"
	"github.com/matsen/citegraph/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "ntriples", "Output format: ntriples or sqlite")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (default: stdout for ntriples, .citegraph/graph.db for sqlite)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-export the stored graph",
	Long: `Re-export the graph from the last run without re-processing.

With --format ntriples the triples go to stdout (or --output); with
--format sqlite the stored graph is copied to a new database file.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	g := mustLoadExportedGraph()

	switch exportFormat {
	case "ntriples":
		w := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				exitWithError(ExitError, "creating output: %v", err)
			}
			defer f.Close()
			w = f
		}
		if err := export.WriteNTriples(w, g); err != nil {
			exitWithError(ExitError, "writing triples: %v", err)
		}
		if exportOutput != "" && !humanOutput {
			return outputJSON(StatusResponse{Status: "exported", Path: exportOutput})
		}
		return nil

	case "sqlite":
		path := exportOutput
		if path == "" {
			root := mustFindProject()
			path = config.DBPath(root)
		}
		store, err := export.OpenStore(path)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		defer store.Close()
		if err := store.WriteGraph(g); err != nil {
			exitWithError(ExitError, "exporting graph: %v", err)
		}
		if humanOutput {
			fmt.Printf("graph written to %s\n", path)
			return nil
		}
		return outputJSON(StatusResponse{Status: "exported", Path: path})

	default:
		return fmt.Errorf("unknown format %q (valid: ntriples, sqlite)", exportFormat)
	}
}
