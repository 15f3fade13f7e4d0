package openalex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(append([]Option{WithBaseURL(server.URL)}, opts...)...), server
}

func TestLookupByTitle(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/works" {
			t.Errorf("path = %q, want /works", r.URL.Path)
		}
		if got := r.URL.Query().Get("filter"); got != "title.search:Deep Graphs" {
			t.Errorf("filter = %q", got)
		}
		w.Write([]byte(`{
			"results": [{
				"title": "Deep Graphs",
				"doi": "https://doi.org/10.1234/deep.graphs",
				"publication_date": "2023-05-01",
				"language": "es",
				"cited_by_count": 42,
				"type": "article",
				"biblio": {"pages": "101-110"},
				"authorships": [
					{
						"author": {"display_name": "Jane Doe", "type": "person", "works_count": 12},
						"institutions": [{"id": "https://openalex.org/I1", "display_name": "Acme Lab", "country_code": "ES", "type": "education", "works_count": 900}]
					},
					{
						"author": {"display_name": "Bob Roe"},
						"institutions": [{"id": "https://openalex.org/I1", "display_name": "Acme Lab"}]
					}
				]
			}]
		}`))
	})
	defer server.Close()

	paper, err := client.LookupByTitle(context.Background(), "Deep Graphs")
	if err != nil {
		t.Fatalf("LookupByTitle() error = %v", err)
	}
	if paper == nil {
		t.Fatal("LookupByTitle() = nil")
	}

	if paper.DOI != "https://doi.org/10.1234/deep.graphs" {
		t.Errorf("DOI = %q", paper.DOI)
	}
	if paper.CitedBy != 42 || paper.Pages != "101-110" || paper.Language != "es" {
		t.Errorf("scalars = %d/%q/%q", paper.CitedBy, paper.Pages, paper.Language)
	}
	if len(paper.Authors) != 2 {
		t.Fatalf("len(Authors) = %d, want 2", len(paper.Authors))
	}
	if paper.Authors[0].Works != 12 {
		t.Errorf("Authors[0].Works = %d", paper.Authors[0].Works)
	}
	// The same institution on both authorships collapses to one record.
	if len(paper.Organizations) != 1 || paper.Organizations[0].Name != "Acme Lab" {
		t.Fatalf("Organizations = %v, want a single Acme Lab", paper.Organizations)
	}
	if paper.Organizations[0].Country != "ES" {
		t.Errorf("Country = %q", paper.Organizations[0].Country)
	}
}

func TestLookupByTitle_NoResultsIsMiss(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	})
	defer server.Close()

	paper, err := client.LookupByTitle(context.Background(), "Unknown")
	if err != nil {
		t.Fatalf("LookupByTitle() error = %v", err)
	}
	if paper != nil {
		t.Errorf("LookupByTitle() = %+v, want nil", paper)
	}
}

func TestLookupAuthor(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/authors" {
			t.Errorf("path = %q, want /authors", r.URL.Path)
		}
		if got := r.URL.Query().Get("filter"); got != "display_name.search:Jane Doe" {
			t.Errorf("filter = %q", got)
		}
		w.Write([]byte(`{
			"results": [{
				"display_name": "Jane M. Doe",
				"type": "person",
				"works_count": 12,
				"last_known_institution": {"display_name": "Acme Lab"}
			}]
		}`))
	})
	defer server.Close()

	author, err := client.LookupAuthor(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("LookupAuthor() error = %v", err)
	}
	if author == nil {
		t.Fatal("LookupAuthor() = nil")
	}
	// The queried name is kept; the match only contributes fields.
	if author.Name != "Jane Doe" {
		t.Errorf("Name = %q, want the queried name", author.Name)
	}
	if author.Works != 12 || author.Profession != "Acme Lab" {
		t.Errorf("fields = %d/%q", author.Works, author.Profession)
	}
}

func TestLookupOrganization(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/institutions" {
			t.Errorf("path = %q, want /institutions", r.URL.Path)
		}
		w.Write([]byte(`{
			"results": [
				{"id": "https://openalex.org/I1", "display_name": "Acme Lab", "country_code": "ES", "type": "education", "works_count": 900},
				{"display_name": ""}
			]
		}`))
	})
	defer server.Close()

	orgs, err := client.LookupOrganization(context.Background(), "Acme Lab")
	if err != nil {
		t.Fatalf("LookupOrganization() error = %v", err)
	}
	if len(orgs) != 1 {
		t.Fatalf("len(orgs) = %d, want 1 (nameless result dropped)", len(orgs))
	}
	if orgs[0].Works != 900 || len(orgs[0].Links) != 1 {
		t.Errorf("org = %+v", orgs[0])
	}
}

func TestMailtoParam(t *testing.T) {
	var got string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("mailto")
		w.Write([]byte(`{"results": []}`))
	}, WithMailto("team@example.org"))
	defer server.Close()

	if _, err := client.LookupByTitle(context.Background(), "X"); err != nil {
		t.Fatalf("LookupByTitle() error = %v", err)
	}
	if got != "team@example.org" {
		t.Errorf("mailto param = %q, want team@example.org", got)
	}
}

func TestErrorStatuses(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	_, err := client.LookupByTitle(context.Background(), "X")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 403 {
		t.Errorf("error = %v, want APIError with status 403", err)
	}
}

func TestMalformedJSON(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [`))
	})
	defer server.Close()

	_, err := client.LookupByTitle(context.Background(), "X")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}
