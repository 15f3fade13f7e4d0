package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matsen/citegraph/internal/config"
	"github.com/matsen/citegraph/internal/export"
	"github.com/matsen/citegraph/internal/pipeline"
	"github.com/spf13/cobra"
)

var runInputDir string

func init() {
	runCmd.Flags().StringVarP(&runInputDir, "input", "i", "", "PDF directory (overrides configured pdf_dir)")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline over a folder of PDFs and export the graph",
	Long: `Run the full pipeline: extract metadata from every PDF, reconcile
each paper against the bibliographic services, link similar abstracts,
assemble the knowledge graph, and export it to SQLite and N-Triples
under .citegraph/.

Progress goes to stderr; the run summary goes to stdout.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

// RunResponse is the run command's stdout summary.
type RunResponse struct {
	Stats        pipeline.Stats `json:"stats"`
	DBPath       string         `json:"db_path"`
	TriplesPath  string         `json:"triples_path"`
	PaperTitles  []string       `json:"papers,omitempty"`
	ProjectNames []string       `json:"projects,omitempty"`
}

func runRun(cmd *cobra.Command, args []string) error {
	root := mustFindProject()
	cfg := mustLoadConfig(root)

	pdfDir := cfg.PDFDir
	if runInputDir != "" {
		pdfDir = runInputDir
	}
	if pdfDir == "" {
		exitWithError(ExitConfigError, "no PDF directory: set pdf_dir or pass --input")
	}

	p := pipeline.FromConfig(cfg, logf)
	result, err := p.Run(context.Background(), pdfDir)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	store, err := export.OpenStore(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer store.Close()
	if err := store.WriteGraph(result.Graph); err != nil {
		exitWithError(ExitError, "exporting graph: %v", err)
	}

	triples, err := os.Create(config.TriplesPath(root))
	if err != nil {
		exitWithError(ExitError, "creating triples file: %v", err)
	}
	defer triples.Close()
	if err := export.WriteNTriples(triples, result.Graph); err != nil {
		exitWithError(ExitError, "writing triples: %v", err)
	}

	resp := RunResponse{
		Stats:       result.Stats,
		DBPath:      config.DBPath(root),
		TriplesPath: config.TriplesPath(root),
	}
	for _, paper := range result.Papers {
		resp.PaperTitles = append(resp.PaperTitles, paper.Title)
	}
	for _, proj := range result.Projects {
		resp.ProjectNames = append(resp.ProjectNames, proj.Name)
	}

	if humanOutput {
		fmt.Printf("processed %d PDFs: %d papers, %d projects, %d nodes, %d edges\n",
			resp.Stats.PDFs, resp.Stats.Papers, resp.Stats.Projects, resp.Stats.Nodes, resp.Stats.Edges)
		fmt.Printf("graph written to %s and %s\n", resp.DBPath, resp.TriplesPath)
		return nil
	}
	return outputJSON(resp)
}
