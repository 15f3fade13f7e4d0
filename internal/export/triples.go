// Package export serializes an assembled graph: an N-Triples writer for
// RDF consumers and a SQLite store the query commands read back.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/matsen/citegraph/internal/graph"
	"github.com/matsen/citegraph/internal/record"
)

// RDF namespaces the triples are written against.
const (
	nsFin    = "http://www.owl-ontologies.com/financiamiento#"
	nsDC     = "http://purl.org/dc/elements/1.1/"
	nsVC     = "http://www.owl-ontologies.com/vecesCitado#"
	nsIdioma = "http://www.owl-ontologies.com/idioma#"
	nsFOAF   = "http://xmlns.com/foaf/0.1/"
	nsRDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	resourceBase = "http://example.org/"
)

// relationship label -> fin predicate
var relPredicates = map[string]string{
	graph.RelAuthored:       nsFin + "authored",
	graph.RelHasAuthor:      nsFin + "hasAuthor",
	graph.RelAffiliatedWith: nsFin + "affiliatedWith",
	graph.RelSimilarTo:      nsFin + "similarTo",
	graph.RelFunded:         nsFin + "funded",
	graph.RelRelatedTo:      nsFin + "relatedTo",
}

var kindClasses = map[string]string{
	graph.KindPaper:        nsFin + "Paper",
	graph.KindAuthor:       nsFin + "Author",
	graph.KindOrganization: nsFin + "Organization",
	graph.KindProject:      nsFin + "Project",
}

// WriteNTriples writes the graph as N-Triples. Every node gets a type
// and title triple plus per-kind attribute triples; every edge becomes
// one triple with a fin predicate.
func WriteNTriples(w io.Writer, g *graph.Graph) error {
	for _, node := range g.Nodes() {
		subj := nodeURI(node)
		if err := writeTriple(w, subj, nsRDF+"type", uriObject(kindClasses[node.Kind])); err != nil {
			return err
		}
		if err := writeTriple(w, subj, nsDC+"title", literal(node.Label)); err != nil {
			return err
		}
		if err := writeAttributes(w, subj, node); err != nil {
			return err
		}
	}

	for _, e := range g.Edges() {
		pred, ok := relPredicates[e.Relationship]
		if !ok {
			continue
		}
		source, target := g.Node(e.Source), g.Node(e.Target)
		if source == nil || target == nil {
			continue
		}
		if err := writeTriple(w, nodeURI(source), pred, uriObject(nodeURI(target))); err != nil {
			return err
		}
	}
	return nil
}

// writeAttributes emits the per-kind attribute triples for present
// fields only.
func writeAttributes(w io.Writer, subj string, node *graph.Node) error {
	switch rec := node.Record.(type) {
	case *record.Paper:
		if rec.Has(record.FieldDOI) {
			if err := writeTriple(w, subj, nsDC+"identifier", literal(rec.DOI)); err != nil {
				return err
			}
		}
		if rec.Has(record.FieldLanguage) {
			if err := writeTriple(w, subj, nsIdioma+"language", literal(rec.Language)); err != nil {
				return err
			}
		}
		if rec.Has(record.FieldCitedBy) {
			if err := writeTriple(w, subj, nsVC+"citedBy", intLiteral(rec.CitedBy)); err != nil {
				return err
			}
		}
		if rec.Has(record.FieldDate) {
			if err := writeTriple(w, subj, nsDC+"date", literal(rec.Date)); err != nil {
				return err
			}
		}
	case *record.Author:
		if rec.Has(record.FieldWorks) {
			if err := writeTriple(w, subj, nsFin+"publicationCount", intLiteral(rec.Works)); err != nil {
				return err
			}
		}
		if rec.Has(record.FieldProfession) {
			if err := writeTriple(w, subj, nsFin+"worksFor", literal(rec.Profession)); err != nil {
				return err
			}
		}
	case *record.Organization:
		if rec.Has(record.FieldCountry) {
			if err := writeTriple(w, subj, nsFOAF+"based_near", literal(rec.Country)); err != nil {
				return err
			}
		}
		for _, link := range rec.Links {
			if err := writeTriple(w, subj, nsFOAF+"homepage", literal(link)); err != nil {
				return err
			}
		}
	case *record.Project:
		if rec.Has(record.FieldFundedAmount) {
			if err := writeTriple(w, subj, nsFin+"fundedAmount", literal(fmt.Sprintf("%g", rec.FundedAmount))); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTriple(w io.Writer, subj, pred, obj string) error {
	_, err := fmt.Fprintf(w, "<%s> <%s> %s .\n", subj, pred, obj)
	return err
}

// nodeURI builds a stable resource URI from the node kind and key.
func nodeURI(node *graph.Node) string {
	return resourceBase + node.Kind + "/" + strings.ReplaceAll(node.Key, " ", "_")
}

func uriObject(uri string) string {
	return "<" + uri + ">"
}

// literal escapes an N-Triples string literal.
func literal(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}

func intLiteral(n int) string {
	return fmt.Sprintf(`"%d"^^<http://www.w3.org/2001/XMLSchema#integer>`, n)
}
