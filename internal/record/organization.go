package record

// organizationFields lists the scalar fields tracked on an Organization.
// Links is a collection but participates in missing-field reporting,
// matching the diagnostics the pipeline prints for sparse orgs.
var organizationFields = []string{FieldName, FieldCountry, FieldRDFType, FieldWorks, FieldLinks}

// Organization represents an academic organization (university, lab,
// funder). The name is the identity key.
type Organization struct {
	Name    string   `json:"name"`
	Country string   `json:"country,omitempty"` // country or location label
	RDFType string   `json:"rdf_type,omitempty"`
	Works   int      `json:"works,omitempty"`
	Links   []string `json:"links,omitempty"` // external URLs / identifiers

	fields fieldSet
}

// NewOrganization creates an organization with the given name, marking
// its presence.
func NewOrganization(name string) *Organization {
	o := &Organization{}
	o.SetName(name)
	return o
}

func (o *Organization) SetName(v string) {
	o.Name = v
	o.fields.mark(FieldName, v != "")
}

func (o *Organization) SetCountry(v string) {
	o.Country = v
	o.fields.mark(FieldCountry, v != "")
}

func (o *Organization) SetRDFType(v string) {
	o.RDFType = v
	o.fields.mark(FieldRDFType, v != "")
}

func (o *Organization) SetWorks(v int) {
	o.Works = v
	o.fields.mark(FieldWorks, v != 0)
}

// SetLinks replaces the link list. AddLink is preferred once links exist.
func (o *Organization) SetLinks(v []string) {
	o.Links = v
	o.fields.mark(FieldLinks, len(v) > 0)
}

// AddLink appends a link if it is non-empty and not already recorded.
func (o *Organization) AddLink(link string) {
	if link == "" {
		return
	}
	for _, l := range o.Links {
		if l == link {
			return
		}
	}
	o.Links = append(o.Links, link)
	o.fields.mark(FieldLinks, true)
}

// Has reports whether the named field currently holds a value.
func (o *Organization) Has(field string) bool {
	return o.fields.has(field)
}

// MissingFields returns the fields still absent on the organization.
func (o *Organization) MissingFields() []string {
	return o.fields.missing(organizationFields)
}

// Key returns the organization's normalized identity key.
func (o *Organization) Key() string {
	return NormalizeKey(o.Name)
}
