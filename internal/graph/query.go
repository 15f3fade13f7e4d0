package graph

// Queries answer over the assembled graph. A key that resolves to no
// node, or to a node of the wrong kind, yields an empty slice, never
// an error.

// AuthorsOfPaper returns the labels of authors with an authored edge
// into the paper.
func (g *Graph) AuthorsOfPaper(title string) []string {
	return g.sources(title, RelAuthored, KindAuthor)
}

// PapersByAuthor returns the titles of papers the author authored.
func (g *Graph) PapersByAuthor(name string) []string {
	return g.targets(name, RelAuthored, KindPaper)
}

// PapersByOrganization returns the titles of papers affiliated with the
// organization.
func (g *Graph) PapersByOrganization(name string) []string {
	return g.targets(name, RelAffiliatedWith, KindPaper)
}

// PapersByProject returns the titles of papers the project funded.
func (g *Graph) PapersByProject(name string) []string {
	return g.targets(name, RelFunded, KindPaper)
}

// SimilarPapers returns the titles of papers linked to the paper by a
// similar_to edge.
func (g *Graph) SimilarPapers(title string) []string {
	return g.targets(title, RelSimilarTo, KindPaper)
}

// OrganizationsOfPaper returns the labels of organizations affiliated
// with the paper.
func (g *Graph) OrganizationsOfPaper(title string) []string {
	return g.sources(title, RelAffiliatedWith, KindOrganization)
}

// targets collects labels of edge targets from the named node.
func (g *Graph) targets(label, relationship, kind string) []string {
	node := g.Node(label)
	if node == nil {
		return []string{}
	}
	out := []string{}
	for _, e := range g.edges {
		if e.Source != node.Key || e.Relationship != relationship {
			continue
		}
		if t := g.nodes[e.Target]; t != nil && t.Kind == kind {
			out = append(out, t.Label)
		}
	}
	return out
}

// sources collects labels of edge sources into the named node.
func (g *Graph) sources(label, relationship, kind string) []string {
	node := g.Node(label)
	if node == nil {
		return []string{}
	}
	out := []string{}
	for _, e := range g.edges {
		if e.Target != node.Key || e.Relationship != relationship {
			continue
		}
		if s := g.nodes[e.Source]; s != nil && s.Kind == kind {
			out = append(out, s.Label)
		}
	}
	return out
}
