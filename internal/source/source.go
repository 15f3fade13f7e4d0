// Package source defines the adapter interfaces the reconciliation
// engine consumes. Each external bibliographic service implements the
// subset of capabilities it actually has; the engine discovers optional
// capabilities by type assertion.
//
// Contract shared by all lookups: a clean miss returns (nil, nil); a
// transport failure, non-success status, or malformed payload returns a
// non-nil error. The engine treats both identically as "no result", so
// adapters never need to mask errors themselves.
package source

import (
	"context"

	"github.com/matsen/citegraph/internal/record"
)

// PaperSource looks up papers by title. This is the minimum capability
// a source must provide to participate in reconciliation.
type PaperSource interface {
	// Name identifies the source in priority listings and diagnostics.
	Name() string

	// LookupByTitle returns a partial Paper for the best title match.
	LookupByTitle(ctx context.Context, title string) (*record.Paper, error)
}

// AuthorSource looks up authors by display name. A non-nil result
// counts as corroboration for the author-drop policy.
type AuthorSource interface {
	LookupAuthor(ctx context.Context, name string) (*record.Author, error)
}

// OrganizationSource searches organizations by name, best match first.
type OrganizationSource interface {
	LookupOrganization(ctx context.Context, name string) ([]*record.Organization, error)
}

// ProjectSource discovers funding projects for a paper and resolves
// project identifiers to full records.
type ProjectSource interface {
	LookupProjectsForPaper(ctx context.Context, paper *record.Paper) ([]string, error)
	LookupProjectByID(ctx context.Context, id string) (*record.Project, error)
}
