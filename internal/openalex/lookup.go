package openalex

import (
	"context"

	"github.com/matsen/citegraph/internal/record"
)

// LookupByTitle searches works by title and returns a partial Paper
// built from the first (most relevant) result, with nested authors and
// the institutions credited on its authorships. (nil, nil) on no match.
func (c *Client) LookupByTitle(ctx context.Context, title string) (*record.Paper, error) {
	var resp worksResponse
	if err := c.getJSON(ctx, "/works", "title.search:"+title, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return workToPaper(resp.Results[0]), nil
}

// LookupAuthor searches authors by display name. The first result is
// taken as the match. (nil, nil) on no match.
func (c *Client) LookupAuthor(ctx context.Context, name string) (*record.Author, error) {
	var resp authorsResponse
	if err := c.getJSON(ctx, "/authors", "display_name.search:"+name, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}

	r := resp.Results[0]
	author := record.NewAuthor(name)
	author.SetRDFType(r.Type)
	author.SetWorks(r.WorksCount)
	author.SetProfession(r.LastKnownInstitution.DisplayName)
	return author, nil
}

// LookupOrganization searches institutions by display name, best match
// first.
func (c *Client) LookupOrganization(ctx context.Context, name string) ([]*record.Organization, error) {
	var resp institutionsResponse
	if err := c.getJSON(ctx, "/institutions", "display_name.search:"+name, &resp); err != nil {
		return nil, err
	}

	orgs := make([]*record.Organization, 0, len(resp.Results))
	for _, r := range resp.Results {
		if org := institutionToOrganization(r); org != nil {
			orgs = append(orgs, org)
		}
	}
	return orgs, nil
}

// workToPaper maps an OpenAlex work to a partial Paper record.
func workToPaper(w work) *record.Paper {
	p := record.NewPaper(w.Title)
	p.SetDOI(w.DOI)
	p.SetDate(w.PublicationDate)
	p.SetLanguage(w.Language)
	p.SetCitedBy(w.CitedByCount)
	p.SetPages(w.Biblio.Pages)
	p.SetRDFType(w.Type)

	for _, as := range w.Authorships {
		name := record.NormalizeSpace(as.Author.DisplayName)
		if name != "" && p.FindAuthor(name) == nil {
			a := record.NewAuthor(name)
			a.SetRDFType(as.Author.Type)
			a.SetWorks(as.Author.WorksCount)
			a.SetProfession(as.Author.LastKnownInstitution.DisplayName)
			p.Authors = append(p.Authors, a)
		}

		for _, inst := range as.Institutions {
			org := institutionToOrganization(inst)
			if org != nil && p.FindOrganization(org.Name) == nil {
				p.Organizations = append(p.Organizations, org)
			}
		}
	}
	return p
}

// institutionToOrganization maps an OpenAlex institution. Results with
// no display name are dropped.
func institutionToOrganization(inst apiInstitution) *record.Organization {
	name := record.NormalizeSpace(inst.DisplayName)
	if name == "" {
		return nil
	}
	org := record.NewOrganization(name)
	org.SetCountry(inst.CountryCode)
	org.SetRDFType(inst.Type)
	org.SetWorks(inst.WorksCount)
	org.AddLink(inst.ID)
	return org
}
