package graph

import (
	"reflect"
	"testing"

	"github.com/matsen/citegraph/internal/record"
)

// buildSample assembles a small batch: two papers sharing an author,
// one organization, a mutual similar link, and one funding project.
func buildSample(t *testing.T) *Graph {
	t.Helper()

	jane := record.NewAuthor("Jane Doe")
	bob := record.NewAuthor("Bob Roe")
	acme := record.NewOrganization("Acme Lab")

	p1 := record.NewPaper("Deep Graphs")
	p1.Authors = []*record.Author{jane, bob}
	p1.Organizations = []*record.Organization{acme}

	p2 := record.NewPaper("Shallow Graphs")
	p2.Authors = []*record.Author{jane}

	p1.AddSimilar(p2)
	p2.AddSimilar(p1)

	grant := record.NewProject("Graphs")
	grant.AttachPaper(p1)

	return Build([]*record.Paper{p1, p2}, []*record.Project{grant})
}

func TestBuild_NodesAndEdges(t *testing.T) {
	g := buildSample(t)

	// 2 papers + 2 authors + 1 org + 1 project
	if g.NumNodes() != 6 {
		t.Errorf("NumNodes() = %d, want 6", g.NumNodes())
	}

	counts := map[string]int{}
	for _, e := range g.Edges() {
		counts[e.Relationship]++
	}
	want := map[string]int{
		RelAuthored:       3,
		RelHasAuthor:      3,
		RelAffiliatedWith: 1,
		RelSimilarTo:      2,
		RelFunded:         1,
		RelRelatedTo:      2, // "graphs" appears in both titles
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("edge counts = %v, want %v", counts, want)
	}
}

func TestBuild_DeduplicatesEdges(t *testing.T) {
	jane := record.NewAuthor("Jane Doe")
	p := record.NewPaper("X")
	p.Authors = []*record.Author{jane, record.NewAuthor("jane  doe")}

	g := Build([]*record.Paper{p}, nil)

	if g.NumEdges() != 2 {
		t.Errorf("NumEdges() = %d, want 2 (duplicate author pair collapsed)", g.NumEdges())
	}
}

func TestQueries(t *testing.T) {
	g := buildSample(t)

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"authors of paper", g.AuthorsOfPaper("Deep Graphs"), []string{"Jane Doe", "Bob Roe"}},
		{"papers by author", g.PapersByAuthor("Jane Doe"), []string{"Deep Graphs", "Shallow Graphs"}},
		{"papers by org", g.PapersByOrganization("Acme Lab"), []string{"Deep Graphs"}},
		{"papers by project", g.PapersByProject("Graphs"), []string{"Deep Graphs"}},
		{"similar papers", g.SimilarPapers("Deep Graphs"), []string{"Shallow Graphs"}},
		{"orgs of paper", g.OrganizationsOfPaper("Deep Graphs"), []string{"Acme Lab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestQueries_KeyNormalization(t *testing.T) {
	g := buildSample(t)

	if got := g.PapersByAuthor("  JANE   DOE "); len(got) != 2 {
		t.Errorf("PapersByAuthor with messy key = %v, want 2 papers", got)
	}
}

func TestQueries_UnknownNodeEmpty(t *testing.T) {
	g := buildSample(t)

	for name, got := range map[string][]string{
		"AuthorsOfPaper":       g.AuthorsOfPaper("Nope"),
		"PapersByAuthor":       g.PapersByAuthor("Nope"),
		"PapersByOrganization": g.PapersByOrganization("Nope"),
		"PapersByProject":      g.PapersByProject("Nope"),
		"SimilarPapers":        g.SimilarPapers("Nope"),
		"OrganizationsOfPaper": g.OrganizationsOfPaper("Nope"),
	} {
		if got == nil || len(got) != 0 {
			t.Errorf("%s(unknown) = %v, want empty non-nil slice", name, got)
		}
	}
}

func TestQueries_WrongKindFiltered(t *testing.T) {
	g := buildSample(t)

	// "Graphs" is a project, not a paper.
	if got := g.SimilarPapers("Graphs"); len(got) != 0 {
		t.Errorf("SimilarPapers(project key) = %v, want empty", got)
	}
}
