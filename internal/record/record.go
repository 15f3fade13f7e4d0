// Package record defines the core domain types for the knowledge graph:
// papers, authors, organizations, and projects, each with per-field
// presence tracking that the reconciliation engine uses to decide
// whether a field may still be filled.
package record

import "strings"

// Field names shared across entities. Presence is tracked under these
// names, and MissingFields reports them in declaration order.
const (
	FieldTitle        = "title"
	FieldDOI          = "doi"
	FieldDate         = "date"
	FieldLanguage     = "language"
	FieldCitedBy      = "cited_by"
	FieldPages        = "pages"
	FieldRDFType      = "rdf_type"
	FieldAbstract     = "abstract"
	FieldPageCount    = "page_count"
	FieldName         = "name"
	FieldProfession   = "profession"
	FieldWorks        = "works"
	FieldCountry      = "country"
	FieldLinks        = "links"
	FieldFundedAmount = "funded_amount"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
)

// fieldSet tracks which named fields of a record currently hold a value.
// The zero value is ready to use.
type fieldSet struct {
	present map[string]bool
}

// mark records whether a field holds a value. Setting a field to an
// empty value marks it absent again.
func (f *fieldSet) mark(name string, ok bool) {
	if f.present == nil {
		f.present = make(map[string]bool)
	}
	f.present[name] = ok
}

// has reports whether the field currently holds a value.
func (f *fieldSet) has(name string) bool {
	return f.present[name]
}

// missing returns, in order, the subset of names not currently present.
func (f *fieldSet) missing(names []string) []string {
	var out []string
	for _, n := range names {
		if !f.present[n] {
			out = append(out, n)
		}
	}
	return out
}

// NormalizeKey canonicalizes an identity key (paper title, author or
// organization name) for matching: case-folded, whitespace-collapsed,
// trimmed. Titles are join keys, not guaranteed-unique identifiers;
// two distinct entities with the same display name will collide.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizeSpace collapses internal whitespace and trims, preserving
// case. Display names are stored this way; NormalizeKey additionally
// case-folds for matching.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SameKey reports whether two identity keys denote the same entity
// under NormalizeKey.
func SameKey(a, b string) bool {
	return NormalizeKey(a) == NormalizeKey(b) && NormalizeKey(a) != ""
}
