// Package reconcile implements the record-reconciliation and enrichment
// engine: the merge policy that takes a seed paper built from
// extraction output and enriches it field-by-field from the available
// bibliographic sources under a never-overwrite policy, while
// reconciling author and organization identities across sources.
package reconcile

import (
	"context"

	"github.com/matsen/citegraph/internal/record"
	"github.com/matsen/citegraph/internal/source"
)

// Engine enriches seed papers from an ordered list of sources. Earlier
// sources take priority: once a field is filled, later sources cannot
// replace it. Optional capabilities (author, organization, project
// lookups) are discovered per source by type assertion.
//
// Every lookup failure (transport, upstream status, malformed payload)
// is treated as "that source found nothing" for that one lookup. No
// failure aborts a paper's reconciliation or unsets resolved fields.
type Engine struct {
	sources  []source.PaperSource
	registry *ProjectRegistry
}

// NewEngine creates an engine over the given sources in priority order.
// The registry accumulates project associations across the batch; pass
// a fresh one per batch.
func NewEngine(registry *ProjectRegistry, sources ...source.PaperSource) *Engine {
	if registry == nil {
		registry = NewProjectRegistry()
	}
	return &Engine{sources: sources, registry: registry}
}

// Registry returns the batch's project registry.
func (e *Engine) Registry() *ProjectRegistry {
	return e.registry
}

// Enrich merges the seed paper with whatever the sources know about it
// and returns the same record fully updated. The engine owns the record
// for the duration of the call; no source retains an alias to it.
// Enriching an already-enriched paper with identical source responses
// is a no-op.
func (e *Engine) Enrich(ctx context.Context, paper *record.Paper) *record.Paper {
	if paper == nil {
		return nil
	}
	e.fillScalars(ctx, paper)
	e.verifyAuthors(ctx, paper)
	e.resolveOrganizations(ctx, paper)
	e.discoverProjects(ctx, paper)
	return paper
}

// fillScalars runs the title lookup against each source in priority
// order, copying in fields the paper still lacks.
func (e *Engine) fillScalars(ctx context.Context, paper *record.Paper) {
	for _, src := range e.sources {
		cand, err := src.LookupByTitle(ctx, paper.Title)
		if err != nil || cand == nil {
			continue
		}
		mergePaper(paper, cand)
	}
}

// verifyAuthors corroborates each seed author against every source with
// author lookup capability, complementing absent fields from matches.
// Authors no source corroborates are dropped: an author claim
// unconfirmed by any external source is discarded rather than carried
// forward. Affiliation strings are trusted more than extracted names,
// so organizations never get this treatment (see resolveOrganizations).
func (e *Engine) verifyAuthors(ctx context.Context, paper *record.Paper) {
	kept := paper.Authors[:0]
	for _, author := range paper.Authors {
		verified := false
		for _, src := range e.sources {
			as, ok := src.(source.AuthorSource)
			if !ok {
				continue
			}
			match, err := as.LookupAuthor(ctx, author.Name)
			if err != nil || match == nil {
				continue
			}
			verified = true
			mergeAuthor(author, match)
		}
		if verified {
			kept = append(kept, author)
		}
	}
	paper.Authors = kept
}

// resolveOrganizations resolves each organization name against the
// sources in priority order; the first source returning any results
// wins, and its highest-ranked result complements the record. The
// original name is kept, and organizations stay in the list even when
// no source knows them.
func (e *Engine) resolveOrganizations(ctx context.Context, paper *record.Paper) {
	for _, org := range paper.Organizations {
		for _, src := range e.sources {
			os, ok := src.(source.OrganizationSource)
			if !ok {
				continue
			}
			matches, err := os.LookupOrganization(ctx, org.Name)
			if err != nil || len(matches) == 0 {
				continue
			}
			mergeOrganization(org, matches[0])
			break
		}
	}
}

// discoverProjects asks each source with project capability for the
// paper's project identifiers, resolves each id, and attaches the paper
// to every project that resolves. A paper may belong to any number of
// projects; a project accumulates papers across the whole batch.
func (e *Engine) discoverProjects(ctx context.Context, paper *record.Paper) {
	seen := make(map[string]bool)
	for _, src := range e.sources {
		ps, ok := src.(source.ProjectSource)
		if !ok {
			continue
		}
		ids, err := ps.LookupProjectsForPaper(ctx, paper)
		if err != nil {
			continue
		}
		for _, id := range ids {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			proj, err := ps.LookupProjectByID(ctx, id)
			if err != nil || proj == nil {
				continue
			}
			e.registry.Attach(proj, paper)
		}
	}
}
