package openaire

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/matsen/citegraph/internal/record"
)

// LookupByTitle searches publications by title and returns a partial
// Paper for the best match, or (nil, nil) if nothing was found.
func (c *Client) LookupByTitle(ctx context.Context, title string) (*record.Paper, error) {
	pub, err := c.searchPublications(ctx, "title", title)
	if err != nil {
		return nil, err
	}
	if pub.Title == "" && pub.DOI == "" && len(pub.Creators) == 0 {
		return nil, nil
	}
	return publicationToPaper(pub), nil
}

// LookupAuthor checks whether OpenAIRE knows publications for the given
// author name. A match yields a partial Author carrying the publication
// count and, when available, the first publisher as an affiliation
// label. No publications means no corroboration: (nil, nil).
func (c *Client) LookupAuthor(ctx context.Context, name string) (*record.Author, error) {
	pub, err := c.searchPublications(ctx, "author", name)
	if err != nil {
		return nil, err
	}

	total := 0
	if pub.Total != "" {
		total, _ = strconv.Atoi(pub.Total)
	}
	if total == 0 && len(pub.Publishers) == 0 {
		return nil, nil
	}

	author := record.NewAuthor(name)
	author.SetWorks(total)
	if len(pub.Publishers) > 0 {
		author.SetProfession(pub.Publishers[0])
	}
	return author, nil
}

// LookupOrganization searches organizations by name on the first page
// with the default page size, best match first. An empty result list
// means no match: (nil, nil) per the source contract is expressed as an
// empty slice here.
func (c *Client) LookupOrganization(ctx context.Context, name string) ([]*record.Organization, error) {
	orgs, _, err := c.SearchOrganizations(ctx, name, 1, DefaultOrgPageSize)
	return orgs, err
}

// SearchOrganizations searches the graph API for organizations by name
// with explicit paging, sorted by relevance. Returns the page of
// organizations and the total number found.
func (c *Client) SearchOrganizations(ctx context.Context, name string, page, pageSize int) ([]*record.Organization, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultOrgPageSize
	}

	params := url.Values{}
	params.Set("search", name)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("sortBy", orgSortOrder)

	body, err := c.get(ctx, "/graph/v1/organizations", params)
	if err != nil {
		return nil, 0, err
	}

	var resp orgSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	orgs := make([]*record.Organization, 0, len(resp.Results))
	for _, r := range resp.Results {
		if org := orgResultToOrganization(r); org != nil {
			orgs = append(orgs, org)
		}
	}
	return orgs, resp.Header.NumFound, nil
}

// LookupProjectsForPaper returns the identifiers of projects the paper
// is related to, discovered from the publication's project relations.
func (c *Client) LookupProjectsForPaper(ctx context.Context, paper *record.Paper) ([]string, error) {
	if paper == nil || paper.Title == "" {
		return nil, nil
	}
	pub, err := c.searchPublications(ctx, "title", paper.Title)
	if err != nil {
		return nil, err
	}
	return pub.ProjectIDs, nil
}

// LookupProjectByID resolves a project identifier to a partial Project,
// or (nil, nil) if the graph API does not know it.
func (c *Client) LookupProjectByID(ctx context.Context, id string) (*record.Project, error) {
	params := url.Values{}
	params.Set("id", id)

	body, err := c.get(ctx, "/graph/v1/projects", params)
	if err != nil {
		return nil, err
	}

	var resp projectSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return projectResultToProject(resp.Results[0]), nil
}

// publicationToPaper maps a parsed publication payload to a partial
// Paper record. Absent payload fields stay absent on the record.
func publicationToPaper(pub *publication) *record.Paper {
	p := record.NewPaper(pub.Title)
	p.SetDOI(pub.DOI)
	p.SetDate(pub.Date)
	p.SetLanguage(pub.Language)
	p.SetPages(pub.Pages)
	p.SetRDFType(pub.ResourceType)
	if pub.CitationCount != "" {
		if n, err := strconv.Atoi(pub.CitationCount); err == nil {
			p.SetCitedBy(n)
		}
	}

	for _, cr := range pub.Creators {
		name := cr.Name
		if name == "" {
			name = cr.Text
		}
		name = record.NormalizeSpace(name)
		if name == "" || p.FindAuthor(name) != nil {
			continue
		}
		a := record.NewAuthor(name)
		a.SetRDFType(cr.Type)
		if cr.Occupation != "" {
			a.SetProfession(cr.Occupation)
		} else {
			a.SetProfession(cr.Affiliation)
		}
		p.Authors = append(p.Authors, a)
	}
	return p
}

// orgResultToOrganization maps one graph organization result. Results
// with no usable name are dropped.
func orgResultToOrganization(r orgResult) *record.Organization {
	name := r.LegalName
	if name == "" {
		name = r.LegalShortName
	}
	if name == "" {
		return nil
	}

	org := record.NewOrganization(name)
	org.SetCountry(r.Country.Label)
	org.SetRDFType("Organization")
	org.AddLink(r.WebsiteURL)
	return org
}

// projectResultToProject maps one graph project result.
func projectResultToProject(r projectResult) *record.Project {
	name := r.Title
	if name == "" {
		name = r.Acronym
	}
	proj := record.NewProject(name)
	proj.SetFundedAmount(r.FundedAmount)
	proj.SetStartDate(r.StartDate)
	proj.SetEndDate(r.EndDate)
	return proj
}
