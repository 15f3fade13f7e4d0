package export

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.db")

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	g := sampleGraph()
	if err := store.WriteGraph(g); err != nil {
		t.Fatalf("WriteGraph() error = %v", err)
	}

	loaded, err := store.LoadGraph()
	if err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}

	if loaded.NumNodes() != g.NumNodes() {
		t.Errorf("NumNodes() = %d, want %d", loaded.NumNodes(), g.NumNodes())
	}
	if loaded.NumEdges() != g.NumEdges() {
		t.Errorf("NumEdges() = %d, want %d", loaded.NumEdges(), g.NumEdges())
	}

	// A loaded graph answers the same queries as the one that was written.
	if got, want := loaded.PapersByAuthor("Jane Doe"), g.PapersByAuthor("Jane Doe"); !reflect.DeepEqual(got, want) {
		t.Errorf("PapersByAuthor() = %v, want %v", got, want)
	}
	if got, want := loaded.OrganizationsOfPaper("Deep Graphs"), g.OrganizationsOfPaper("Deep Graphs"); !reflect.DeepEqual(got, want) {
		t.Errorf("OrganizationsOfPaper() = %v, want %v", got, want)
	}
}

func TestStore_WriteReplacesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.db")

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	if err := store.WriteGraph(sampleGraph()); err != nil {
		t.Fatalf("first WriteGraph() error = %v", err)
	}
	if err := store.WriteGraph(sampleGraph()); err != nil {
		t.Fatalf("second WriteGraph() error = %v", err)
	}

	loaded, err := store.LoadGraph()
	if err != nil {
		t.Fatalf("LoadGraph() error = %v", err)
	}
	if want := sampleGraph().NumNodes(); loaded.NumNodes() != want {
		t.Errorf("NumNodes() = %d after rewrite, want %d", loaded.NumNodes(), want)
	}
}
