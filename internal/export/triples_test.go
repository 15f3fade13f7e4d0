package export

import (
	"strings"
	"testing"

	"github.com/matsen/citegraph/internal/graph"
	"github.com/matsen/citegraph/internal/record"
)

func sampleGraph() *graph.Graph {
	paper := record.NewPaper("Deep Graphs")
	paper.SetDOI("10.1/x")
	paper.SetLanguage("es")
	paper.SetCitedBy(4)

	jane := record.NewAuthor("Jane Doe")
	jane.SetWorks(12)
	paper.Authors = []*record.Author{jane}

	acme := record.NewOrganization("Acme Lab")
	acme.SetCountry("Spain")
	paper.Organizations = []*record.Organization{acme}

	grant := record.NewProject("Graphs")
	grant.AttachPaper(paper)

	return graph.Build([]*record.Paper{paper}, []*record.Project{grant})
}

func TestWriteNTriples(t *testing.T) {
	var sb strings.Builder
	if err := WriteNTriples(&sb, sampleGraph()); err != nil {
		t.Fatalf("WriteNTriples() error = %v", err)
	}
	out := sb.String()

	wantLines := []string{
		`<http://example.org/paper/deep_graphs> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.owl-ontologies.com/financiamiento#Paper> .`,
		`<http://example.org/paper/deep_graphs> <http://purl.org/dc/elements/1.1/title> "Deep Graphs" .`,
		`<http://example.org/paper/deep_graphs> <http://purl.org/dc/elements/1.1/identifier> "10.1/x" .`,
		`<http://example.org/paper/deep_graphs> <http://www.owl-ontologies.com/idioma#language> "es" .`,
		`<http://example.org/paper/deep_graphs> <http://www.owl-ontologies.com/vecesCitado#citedBy> "4"^^<http://www.w3.org/2001/XMLSchema#integer> .`,
		`<http://example.org/author/jane_doe> <http://www.owl-ontologies.com/financiamiento#publicationCount> "12"^^<http://www.w3.org/2001/XMLSchema#integer> .`,
		`<http://example.org/organization/acme_lab> <http://xmlns.com/foaf/0.1/based_near> "Spain" .`,
		`<http://example.org/author/jane_doe> <http://www.owl-ontologies.com/financiamiento#authored> <http://example.org/paper/deep_graphs> .`,
		`<http://example.org/paper/deep_graphs> <http://www.owl-ontologies.com/financiamiento#hasAuthor> <http://example.org/author/jane_doe> .`,
		`<http://example.org/organization/acme_lab> <http://www.owl-ontologies.com/financiamiento#affiliatedWith> <http://example.org/paper/deep_graphs> .`,
		`<http://example.org/project/graphs> <http://www.owl-ontologies.com/financiamiento#funded> <http://example.org/paper/deep_graphs> .`,
		`<http://example.org/project/graphs> <http://www.owl-ontologies.com/financiamiento#relatedTo> <http://example.org/paper/deep_graphs> .`,
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("output missing line:\n%s", line)
		}
	}
}

func TestLiteralEscaping(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`plain`, `"plain"`},
		{`with "quotes"`, `"with \"quotes\""`},
		{"line\nbreak", `"line\nbreak"`},
		{`back\slash`, `"back\\slash"`},
	}
	for _, tt := range tests {
		if got := literal(tt.in); got != tt.want {
			t.Errorf("literal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
