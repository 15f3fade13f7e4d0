package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/matsen/citegraph/internal/config"
	"github.com/matsen/citegraph/internal/export"
	"github.com/matsen/citegraph/internal/graph"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <relation> <name>",
	Short: "Query the exported knowledge graph",
	Long: `Query the graph exported by a previous run.

Relations:
  authors-of         Authors of a paper
  papers-by-author   Papers an author wrote
  papers-by-org      Papers affiliated with an organization
  papers-by-project  Papers a project funded
  similar            Papers with similar abstracts
  orgs-of            Organizations affiliated with a paper

Names are matched case- and whitespace-insensitively. An unknown name
yields an empty result, not an error.`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

// QueryResponse is the query command's stdout surface.
type QueryResponse struct {
	Relation string   `json:"relation"`
	Name     string   `json:"name"`
	Results  []string `json:"results"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	relation, name := args[0], args[1]

	g := mustLoadExportedGraph()

	var results []string
	switch relation {
	case "authors-of":
		results = g.AuthorsOfPaper(name)
	case "papers-by-author":
		results = g.PapersByAuthor(name)
	case "papers-by-org":
		results = g.PapersByOrganization(name)
	case "papers-by-project":
		results = g.PapersByProject(name)
	case "similar":
		results = g.SimilarPapers(name)
	case "orgs-of":
		results = g.OrganizationsOfPaper(name)
	default:
		return fmt.Errorf("unknown relation %q (see 'cg query --help')", relation)
	}

	if humanOutput {
		if len(results) == 0 {
			fmt.Println("no results")
			return nil
		}
		fmt.Println(strings.Join(results, "\n"))
		return nil
	}
	return outputJSON(QueryResponse{Relation: relation, Name: name, Results: results})
}

// mustLoadExportedGraph opens the exported database and loads the
// graph, exiting if no export exists yet.
func mustLoadExportedGraph() *graph.Graph {
	root := mustFindProject()

	if _, err := os.Stat(config.DBPath(root)); err != nil {
		exitWithError(ExitDataError, "no exported graph at %s (run 'cg run' first)", config.DBPath(root))
	}

	store, err := export.OpenStore(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer store.Close()

	g, err := store.LoadGraph()
	if err != nil {
		exitWithError(ExitDataError, "loading graph: %v", err)
	}
	return g
}
