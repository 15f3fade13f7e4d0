package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/citegraph/internal/reconcile"
	"github.com/matsen/citegraph/internal/record"
)

// fakeExtractor returns canned documents keyed by filename.
type fakeExtractor struct {
	docs map[string]*record.Document
}

func (f *fakeExtractor) Extract(_ context.Context, filename string, _ io.Reader) (*record.Document, error) {
	doc, ok := f.docs[filename]
	if !ok {
		return nil, errors.New("extraction failed")
	}
	return doc, nil
}

type fakeOrgs struct {
	names []string
}

func (f *fakeOrgs) ExtractOrgs(context.Context, string) ([]string, error) {
	return f.names, nil
}

// authorSource corroborates every author so seeds survive verification.
type authorSource struct{}

func (authorSource) Name() string { return "fake" }

func (authorSource) LookupByTitle(context.Context, string) (*record.Paper, error) {
	return nil, nil
}

func (authorSource) LookupAuthor(_ context.Context, name string) (*record.Author, error) {
	return record.NewAuthor(name), nil
}

func writePDFs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("not a real pdf"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRun(t *testing.T) {
	dir := writePDFs(t, "one.pdf", "two.PDF", "notes.txt")

	extractor := &fakeExtractor{docs: map[string]*record.Document{
		"one.pdf": {
			Filename:       "one.pdf",
			Title:          "Deep Graphs",
			AuthorNames:    []string{"Jane Doe"},
			Acknowledgment: "Funded kindly.",
			ProjectNames:   []string{"Big Grant"},
		},
		"two.PDF": {
			Filename: "two.PDF",
			Title:    "Shallow Graphs",
		},
	}}

	engine := reconcile.NewEngine(nil, authorSource{})
	p := New(extractor, engine, WithOrgExtractor(&fakeOrgs{names: []string{"Acme Lab"}}))

	result, err := p.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.PDFs != 2 {
		t.Errorf("Stats.PDFs = %d, want 2 (txt file ignored)", result.Stats.PDFs)
	}
	if result.Stats.Extracted != 2 || result.Stats.Fallbacks != 0 {
		t.Errorf("Extracted/Fallbacks = %d/%d, want 2/0", result.Stats.Extracted, result.Stats.Fallbacks)
	}
	if len(result.Papers) != 2 {
		t.Fatalf("len(Papers) = %d, want 2", len(result.Papers))
	}

	first := result.Papers[0]
	if len(first.Authors) != 1 || first.Authors[0].Name != "Jane Doe" {
		t.Errorf("Authors = %v, want corroborated Jane Doe", first.Authors)
	}
	if first.FindOrganization("Acme Lab") == nil {
		t.Error("recognized organization should be appended to the seed")
	}

	if len(result.Projects) != 1 || result.Projects[0].Name != "Big Grant" {
		t.Fatalf("Projects = %v, want the funder project", result.Projects)
	}
	if got := result.Projects[0].PaperTitles(); len(got) != 1 || got[0] != "Deep Graphs" {
		t.Errorf("project papers = %v, want [Deep Graphs]", got)
	}

	if result.Graph == nil || result.Graph.NumNodes() == 0 {
		t.Fatal("Run() should assemble a graph")
	}
	if got := result.Graph.PapersByProject("Big Grant"); len(got) != 1 {
		t.Errorf("PapersByProject = %v, want one paper", got)
	}
	if result.Stats.Nodes != result.Graph.NumNodes() || result.Stats.Edges != result.Graph.NumEdges() {
		t.Error("stats should mirror the graph size")
	}
}

func TestRun_UnextractablePDFIsSkipped(t *testing.T) {
	dir := writePDFs(t, "broken.pdf")

	// Extraction fails, and the file is not a real PDF so sniffing
	// fails too.
	p := New(&fakeExtractor{}, reconcile.NewEngine(nil))

	result, err := p.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Papers) != 0 {
		t.Errorf("len(Papers) = %d, want 0", len(result.Papers))
	}
	if len(result.Stats.Skipped) != 1 || result.Stats.Skipped[0] != "broken.pdf" {
		t.Errorf("Skipped = %v, want [broken.pdf]", result.Stats.Skipped)
	}
}

func TestRun_MissingDirectoryIsFatal(t *testing.T) {
	p := New(&fakeExtractor{}, reconcile.NewEngine(nil))

	if _, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Run() on a missing directory should fail")
	}
}
