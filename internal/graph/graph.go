// Package graph assembles the reconciled batch into a directed
// multigraph of papers, authors, organizations, and projects, and
// answers the typed queries the CLI exposes.
package graph

import (
	"strings"

	"github.com/matsen/citegraph/internal/record"
)

// Node kinds.
const (
	KindPaper        = "paper"
	KindAuthor       = "author"
	KindOrganization = "organization"
	KindProject      = "project"
)

// Relationship labels. The set is closed: every edge in the graph
// carries exactly one of these.
const (
	RelAuthored       = "authored"
	RelHasAuthor      = "has_author"
	RelAffiliatedWith = "affiliated_with"
	RelSimilarTo      = "similar_to"
	RelFunded         = "funded"
	RelRelatedTo      = "related_to"
)

// Node is a graph vertex. Key is the normalized identity key, Label the
// display form, and Record the underlying record (a *record.Paper,
// *record.Author, *record.Organization, or *record.Project per Kind).
type Node struct {
	Key    string `json:"key"`
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Record any    `json:"record,omitempty"`
}

// Edge is a directed edge identified by its (Source, Target,
// Relationship) tuple.
type Edge struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Relationship string `json:"relationship"`
}

// Graph is a directed multigraph over the batch. It is built once and
// then read-only; queries never mutate it.
type Graph struct {
	nodes map[string]*Node
	order []string
	edges []Edge
	seen  map[Edge]bool
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		seen:  make(map[Edge]bool),
	}
}

// Build assembles a graph from a reconciled batch. For each paper it
// adds the author pair (author authored paper, paper has_author author),
// the organization affiliation, and a directed similar_to edge per
// back-reference. Each project gets a funded edge to every attached
// paper, plus related_to edges to papers whose title contains the
// project name.
func Build(papers []*record.Paper, projects []*record.Project) *Graph {
	g := New()

	for _, paper := range papers {
		if paper == nil || paper.Key() == "" {
			continue
		}
		pk := g.AddNode(KindPaper, paper.Title, paper)

		for _, author := range paper.Authors {
			ak := g.AddNode(KindAuthor, author.Name, author)
			g.AddEdge(ak, pk, RelAuthored)
			g.AddEdge(pk, ak, RelHasAuthor)
		}
		for _, org := range paper.Organizations {
			ok := g.AddNode(KindOrganization, org.Name, org)
			g.AddEdge(ok, pk, RelAffiliatedWith)
		}
	}

	// Similar edges need every paper node registered first.
	for _, paper := range papers {
		if paper == nil || paper.Key() == "" {
			continue
		}
		for _, other := range paper.Similar {
			if other == nil || other.Key() == "" {
				continue
			}
			g.AddNode(KindPaper, other.Title, other)
			g.AddEdge(paper.Key(), other.Key(), RelSimilarTo)
		}
	}

	for _, proj := range projects {
		if proj == nil || proj.Key() == "" {
			continue
		}
		jk := g.AddNode(KindProject, proj.Name, proj)
		for _, paper := range proj.Papers {
			if paper.Key() == "" {
				continue
			}
			g.AddNode(KindPaper, paper.Title, paper)
			g.AddEdge(jk, paper.Key(), RelFunded)
		}
		for _, paper := range papers {
			if paper == nil || paper.Key() == "" {
				continue
			}
			if strings.Contains(paper.Key(), proj.Key()) {
				g.AddEdge(jk, paper.Key(), RelRelatedTo)
			}
		}
	}

	return g
}

// AddNode registers a node if its key is new and returns its key. An
// existing node keeps its first label and record.
func (g *Graph) AddNode(kind, label string, rec any) string {
	key := record.NormalizeKey(label)
	if key == "" {
		return ""
	}
	if _, ok := g.nodes[key]; !ok {
		g.nodes[key] = &Node{Key: key, Kind: kind, Label: label, Record: rec}
		g.order = append(g.order, key)
	}
	return key
}

// AddEdge appends a directed edge, ignoring duplicates and edges with a
// missing endpoint.
func (g *Graph) AddEdge(source, target, relationship string) {
	if source == "" || target == "" {
		return
	}
	e := Edge{Source: source, Target: target, Relationship: relationship}
	if g.seen[e] {
		return
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
}

// Node returns the node for a key, or nil.
func (g *Graph) Node(key string) *Node {
	return g.nodes[record.NormalizeKey(key)]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, g.nodes[key])
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int { return len(g.edges) }
