package record

// authorFields lists the scalar fields tracked on an Author.
var authorFields = []string{FieldName, FieldRDFType, FieldProfession, FieldWorks}

// Author represents a paper author. The name is the identity key within
// a paper's author list.
type Author struct {
	Name       string `json:"name"`
	RDFType    string `json:"rdf_type,omitempty"`
	Profession string `json:"profession,omitempty"` // profession or affiliation label
	Works      int    `json:"works,omitempty"`      // known work count

	fields fieldSet
}

// NewAuthor creates an author with the given name, marking its presence.
func NewAuthor(name string) *Author {
	a := &Author{}
	a.SetName(name)
	return a
}

func (a *Author) SetName(v string) {
	a.Name = v
	a.fields.mark(FieldName, v != "")
}

func (a *Author) SetRDFType(v string) {
	a.RDFType = v
	a.fields.mark(FieldRDFType, v != "")
}

func (a *Author) SetProfession(v string) {
	a.Profession = v
	a.fields.mark(FieldProfession, v != "")
}

func (a *Author) SetWorks(v int) {
	a.Works = v
	a.fields.mark(FieldWorks, v != 0)
}

// Has reports whether the named field currently holds a value.
func (a *Author) Has(field string) bool {
	return a.fields.has(field)
}

// MissingFields returns the fields still absent on the author.
func (a *Author) MissingFields() []string {
	return a.fields.missing(authorFields)
}

// Key returns the author's normalized identity key.
func (a *Author) Key() string {
	return NormalizeKey(a.Name)
}
