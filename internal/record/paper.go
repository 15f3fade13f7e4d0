package record

// paperFields lists the scalar fields tracked on a Paper, in report order.
var paperFields = []string{
	FieldTitle, FieldDOI, FieldDate, FieldLanguage, FieldCitedBy,
	FieldPages, FieldRDFType, FieldAbstract, FieldPageCount,
}

// Paper represents an academic paper. The title is the cross-source
// join key; everything else is filled progressively by reconciliation.
type Paper struct {
	Title     string `json:"title"`
	DOI       string `json:"doi,omitempty"`
	Date      string `json:"date,omitempty"` // publication date as reported upstream
	Language  string `json:"language,omitempty"`
	CitedBy   int    `json:"cited_by,omitempty"`
	Pages     string `json:"pages,omitempty"` // page range, e.g. "123-145"
	RDFType   string `json:"rdf_type,omitempty"`
	Abstract  string `json:"abstract,omitempty"`
	PageCount int    `json:"page_count,omitempty"`

	// Owned collections. Authors' affiliations are merged into
	// Organizations rather than linked by reference.
	Authors       []*Author       `json:"authors,omitempty"`
	Organizations []*Organization `json:"organizations,omitempty"`

	// Similar holds weak back-references to semantically similar papers.
	// It is a relation, not ownership: export layers serialize titles
	// only (see SimilarTitles), never the records, to avoid cycles.
	Similar []*Paper `json:"-"`

	fields fieldSet
}

// NewPaper creates a paper with the given title, marking its presence.
func NewPaper(title string) *Paper {
	p := &Paper{}
	p.SetTitle(title)
	return p
}

func (p *Paper) SetTitle(v string) {
	p.Title = v
	p.fields.mark(FieldTitle, v != "")
}

func (p *Paper) SetDOI(v string) {
	p.DOI = v
	p.fields.mark(FieldDOI, v != "")
}

func (p *Paper) SetDate(v string) {
	p.Date = v
	p.fields.mark(FieldDate, v != "")
}

func (p *Paper) SetLanguage(v string) {
	p.Language = v
	p.fields.mark(FieldLanguage, v != "")
}

func (p *Paper) SetCitedBy(v int) {
	p.CitedBy = v
	p.fields.mark(FieldCitedBy, v != 0)
}

func (p *Paper) SetPages(v string) {
	p.Pages = v
	p.fields.mark(FieldPages, v != "")
}

func (p *Paper) SetRDFType(v string) {
	p.RDFType = v
	p.fields.mark(FieldRDFType, v != "")
}

func (p *Paper) SetAbstract(v string) {
	p.Abstract = v
	p.fields.mark(FieldAbstract, v != "")
}

func (p *Paper) SetPageCount(v int) {
	p.PageCount = v
	p.fields.mark(FieldPageCount, v != 0)
}

// Has reports whether the named field currently holds a value.
func (p *Paper) Has(field string) bool {
	return p.fields.has(field)
}

// MissingFields returns the scalar fields still absent on the paper.
func (p *Paper) MissingFields() []string {
	return p.fields.missing(paperFields)
}

// Key returns the paper's normalized identity key.
func (p *Paper) Key() string {
	return NormalizeKey(p.Title)
}

// FindAuthor returns the author with the given normalized name, or nil.
func (p *Paper) FindAuthor(name string) *Author {
	for _, a := range p.Authors {
		if SameKey(a.Name, name) {
			return a
		}
	}
	return nil
}

// FindOrganization returns the organization with the given normalized
// name, or nil.
func (p *Paper) FindOrganization(name string) *Organization {
	for _, o := range p.Organizations {
		if SameKey(o.Name, name) {
			return o
		}
	}
	return nil
}

// AddSimilar records a similar-paper back-reference, ignoring self
// links and duplicates. The relation is one-directional here; the
// similarity linker adds both directions.
func (p *Paper) AddSimilar(other *Paper) {
	if other == nil || SameKey(p.Title, other.Title) {
		return
	}
	for _, s := range p.Similar {
		if SameKey(s.Title, other.Title) {
			return
		}
	}
	p.Similar = append(p.Similar, other)
}

// SimilarTitles returns the titles of similar papers, for serialization.
func (p *Paper) SimilarTitles() []string {
	titles := make([]string, 0, len(p.Similar))
	for _, s := range p.Similar {
		titles = append(titles, s.Title)
	}
	return titles
}
