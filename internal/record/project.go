package record

// projectFields lists the scalar fields tracked on a Project.
var projectFields = []string{FieldName, FieldFundedAmount, FieldStartDate, FieldEndDate}

// Project represents a funding project. Papers are shared references:
// the project records which papers it funds but does not own them.
type Project struct {
	Name         string  `json:"name"`
	FundedAmount float64 `json:"funded_amount,omitempty"`
	StartDate    string  `json:"start_date,omitempty"`
	EndDate      string  `json:"end_date,omitempty"`

	Papers []*Paper `json:"-"`

	fields fieldSet
}

// NewProject creates a project with the given name, marking its presence.
func NewProject(name string) *Project {
	p := &Project{}
	p.SetName(name)
	return p
}

func (p *Project) SetName(v string) {
	p.Name = v
	p.fields.mark(FieldName, v != "")
}

func (p *Project) SetFundedAmount(v float64) {
	p.FundedAmount = v
	p.fields.mark(FieldFundedAmount, v != 0)
}

func (p *Project) SetStartDate(v string) {
	p.StartDate = v
	p.fields.mark(FieldStartDate, v != "")
}

func (p *Project) SetEndDate(v string) {
	p.EndDate = v
	p.fields.mark(FieldEndDate, v != "")
}

// Has reports whether the named field currently holds a value.
func (p *Project) Has(field string) bool {
	return p.fields.has(field)
}

// MissingFields returns the fields still absent on the project.
func (p *Project) MissingFields() []string {
	return p.fields.missing(projectFields)
}

// Key returns the project's normalized identity key.
func (p *Project) Key() string {
	return NormalizeKey(p.Name)
}

// AttachPaper records that the project funds the given paper, deduping
// by the paper's title key.
func (p *Project) AttachPaper(paper *Paper) {
	if paper == nil {
		return
	}
	for _, existing := range p.Papers {
		if SameKey(existing.Title, paper.Title) {
			return
		}
	}
	p.Papers = append(p.Papers, paper)
}

// PaperTitles returns the titles of attached papers, for serialization.
func (p *Project) PaperTitles() []string {
	titles := make([]string, 0, len(p.Papers))
	for _, paper := range p.Papers {
		titles = append(titles, paper.Title)
	}
	return titles
}
