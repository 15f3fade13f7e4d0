// Package pipeline runs the whole batch: extract metadata from every
// PDF in a directory, reconcile each seed paper against the
// bibliographic sources, link similar abstracts, and assemble the
// knowledge graph. A Run returns an explicit Result; no state outlives
// the call.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/citegraph/internal/graph"
	"github.com/matsen/citegraph/internal/pdfmeta"
	"github.com/matsen/citegraph/internal/reconcile"
	"github.com/matsen/citegraph/internal/record"
	"github.com/matsen/citegraph/internal/similarity"
)

// Extractor turns one PDF into a normalized document.
type Extractor interface {
	Extract(ctx context.Context, filename string, pdf io.Reader) (*record.Document, error)
}

// OrgExtractor pulls organization names out of free text.
type OrgExtractor interface {
	ExtractOrgs(ctx context.Context, text string) ([]string, error)
}

// Stats summarizes a run.
type Stats struct {
	PDFs        int      `json:"pdfs"`
	Extracted   int      `json:"extracted"`
	Fallbacks   int      `json:"fallbacks"`
	Skipped     []string `json:"skipped,omitempty"`
	Papers      int      `json:"papers"`
	Projects    int      `json:"projects"`
	LinkedPairs int      `json:"linked_pairs"`
	Nodes       int      `json:"nodes"`
	Edges       int      `json:"edges"`
}

// Result is the complete output of one run.
type Result struct {
	Papers   []*record.Paper   `json:"papers"`
	Projects []*record.Project `json:"projects"`
	Graph    *graph.Graph      `json:"-"`
	Stats    Stats             `json:"stats"`
}

// Pipeline wires the stages together.
type Pipeline struct {
	extractor Extractor
	orgs      OrgExtractor
	engine    *reconcile.Engine
	linker    *similarity.Linker
	logf      func(format string, args ...any)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogf sets a progress logger (stderr in the CLI). Default is silent.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(p *Pipeline) {
		p.logf = logf
	}
}

// WithOrgExtractor sets the NER stage. Without one the stage is skipped.
func WithOrgExtractor(orgs OrgExtractor) Option {
	return func(p *Pipeline) {
		p.orgs = orgs
	}
}

// WithLinker sets the similarity stage. Without one the stage is skipped.
func WithLinker(linker *similarity.Linker) Option {
	return func(p *Pipeline) {
		p.linker = linker
	}
}

// New creates a pipeline over an extractor and a reconciliation engine.
func New(extractor Extractor, engine *reconcile.Engine, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor: extractor,
		engine:    engine,
		logf:      func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes every PDF under pdfDir. A missing or unreadable
// directory is the only fatal error: every per-file and per-lookup
// failure degrades to a smaller result.
func (p *Pipeline) Run(ctx context.Context, pdfDir string) (*Result, error) {
	entries, err := os.ReadDir(pdfDir)
	if err != nil {
		return nil, fmt.Errorf("reading PDF directory: %w", err)
	}

	result := &Result{}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		result.Stats.PDFs++

		paper := p.seed(ctx, filepath.Join(pdfDir, entry.Name()), entry.Name(), &result.Stats)
		if paper == nil {
			result.Stats.Skipped = append(result.Stats.Skipped, entry.Name())
			p.logf("skipped %s: no usable metadata", entry.Name())
			continue
		}

		p.logf("reconciling %q", paper.Title)
		result.Papers = append(result.Papers, p.engine.Enrich(ctx, paper))
	}

	if p.linker != nil {
		result.Stats.LinkedPairs = p.linker.Link(ctx, result.Papers)
	}

	result.Projects = p.engine.Registry().Projects()
	result.Graph = graph.Build(result.Papers, result.Projects)

	result.Stats.Papers = len(result.Papers)
	result.Stats.Projects = len(result.Projects)
	result.Stats.Nodes = result.Graph.NumNodes()
	result.Stats.Edges = result.Graph.NumEdges()
	return result, nil
}

// seed builds the seed paper for one PDF: full extraction when the
// service succeeds, metadata sniffing as fallback, nil when neither
// yields a title.
func (p *Pipeline) seed(ctx context.Context, path, filename string, stats *Stats) *record.Paper {
	doc := p.extract(ctx, path, filename)
	if doc != nil && doc.Title != "" {
		stats.Extracted++
		paper := doc.SeedPaper()
		p.nerOrgs(ctx, doc, paper)
		p.fundingProjects(doc, paper)
		return paper
	}

	meta, err := pdfmeta.Sniff(path)
	if err != nil || meta.Title == "" {
		return nil
	}
	stats.Fallbacks++
	p.logf("extraction failed for %s, seeding from sniffed metadata", filename)

	paper := record.NewPaper(meta.Title)
	paper.SetDOI(meta.DOI)
	paper.SetPageCount(meta.PageCount)
	return paper
}

func (p *Pipeline) extract(ctx context.Context, path, filename string) *record.Document {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	doc, err := p.extractor.Extract(ctx, filename, f)
	if err != nil {
		p.logf("extracting %s: %v", filename, err)
		return nil
	}
	return doc
}

// nerOrgs appends organizations recognized in the acknowledgment text
// (falling back to the abstract) that extraction did not already find.
func (p *Pipeline) nerOrgs(ctx context.Context, doc *record.Document, paper *record.Paper) {
	if p.orgs == nil {
		return
	}
	text := doc.Acknowledgment
	if text == "" {
		text = doc.Abstract
	}
	if text == "" {
		return
	}

	names, err := p.orgs.ExtractOrgs(ctx, text)
	if err != nil {
		p.logf("recognizing organizations in %s: %v", doc.Filename, err)
		return
	}
	for _, name := range names {
		if paper.FindOrganization(name) != nil {
			continue
		}
		paper.Organizations = append(paper.Organizations, record.NewOrganization(name))
	}
}

// fundingProjects registers funder names from the extraction's funding
// section as bare projects attached to the paper.
func (p *Pipeline) fundingProjects(doc *record.Document, paper *record.Paper) {
	for _, name := range doc.ProjectNames {
		if name == "" {
			continue
		}
		p.engine.Registry().Attach(record.NewProject(name), paper)
	}
}
