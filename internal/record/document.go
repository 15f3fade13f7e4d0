package record

// Document is the normalized output of the extraction service for one
// PDF: the bare-minimum facts a seed Paper is built from. Fields absent
// in the extraction stay empty here; no placeholders.
type Document struct {
	Filename       string   `json:"filename"`
	Title          string   `json:"title"`
	AuthorNames    []string `json:"authors,omitempty"`
	OrgNames       []string `json:"organizations,omitempty"`
	ProjectNames   []string `json:"projects,omitempty"` // funder names from the funding section
	Acknowledgment string   `json:"acknowledgment,omitempty"`
	Abstract       string   `json:"abstract,omitempty"`
	PageCount      int      `json:"page_count,omitempty"`
}

// SeedPaper builds a seed Paper from the document: title, abstract and
// page count as scalars, author and organization names as bare records.
func (d *Document) SeedPaper() *Paper {
	p := NewPaper(d.Title)
	p.SetAbstract(d.Abstract)
	p.SetPageCount(d.PageCount)

	for _, name := range d.AuthorNames {
		if name == "" || p.FindAuthor(name) != nil {
			continue
		}
		p.Authors = append(p.Authors, NewAuthor(name))
	}
	for _, name := range d.OrgNames {
		if name == "" || p.FindOrganization(name) != nil {
			continue
		}
		p.Organizations = append(p.Organizations, NewOrganization(name))
	}
	return p
}
