package reconcile

import "github.com/matsen/citegraph/internal/record"

// mergePaper copies onto base every scalar field that a candidate has
// and base still lacks. Fields already present on base are never
// replaced, whatever the candidate reports. Collections follow the
// fill-or-complement rule: an empty list adopts the candidate's list
// wholesale; a non-empty list has existing entries complemented by
// identity key and new keys appended.
func mergePaper(base, cand *record.Paper) {
	if cand == nil {
		return
	}

	if !base.Has(record.FieldTitle) && cand.Has(record.FieldTitle) {
		base.SetTitle(cand.Title)
	}
	if !base.Has(record.FieldDOI) && cand.Has(record.FieldDOI) {
		base.SetDOI(cand.DOI)
	}
	if !base.Has(record.FieldDate) && cand.Has(record.FieldDate) {
		base.SetDate(cand.Date)
	}
	if !base.Has(record.FieldLanguage) && cand.Has(record.FieldLanguage) {
		base.SetLanguage(cand.Language)
	}
	if !base.Has(record.FieldCitedBy) && cand.Has(record.FieldCitedBy) {
		base.SetCitedBy(cand.CitedBy)
	}
	if !base.Has(record.FieldPages) && cand.Has(record.FieldPages) {
		base.SetPages(cand.Pages)
	}
	if !base.Has(record.FieldRDFType) && cand.Has(record.FieldRDFType) {
		base.SetRDFType(cand.RDFType)
	}
	if !base.Has(record.FieldAbstract) && cand.Has(record.FieldAbstract) {
		base.SetAbstract(cand.Abstract)
	}
	if !base.Has(record.FieldPageCount) && cand.Has(record.FieldPageCount) {
		base.SetPageCount(cand.PageCount)
	}

	if len(base.Authors) == 0 {
		base.Authors = cand.Authors
	} else {
		for _, ca := range cand.Authors {
			if existing := base.FindAuthor(ca.Name); existing != nil {
				mergeAuthor(existing, ca)
			} else {
				base.Authors = append(base.Authors, ca)
			}
		}
	}

	if len(base.Organizations) == 0 {
		base.Organizations = cand.Organizations
	} else {
		for _, co := range cand.Organizations {
			if existing := base.FindOrganization(co.Name); existing != nil {
				mergeOrganization(existing, co)
			} else {
				base.Organizations = append(base.Organizations, co)
			}
		}
	}
}

// mergeAuthor fills absent author fields from a candidate. The name is
// kept as originally observed.
func mergeAuthor(base, cand *record.Author) {
	if cand == nil {
		return
	}
	if !base.Has(record.FieldRDFType) && cand.Has(record.FieldRDFType) {
		base.SetRDFType(cand.RDFType)
	}
	if !base.Has(record.FieldProfession) && cand.Has(record.FieldProfession) {
		base.SetProfession(cand.Profession)
	}
	if !base.Has(record.FieldWorks) && cand.Has(record.FieldWorks) {
		base.SetWorks(cand.Works)
	}
}

// mergeOrganization fills absent organization fields from a candidate.
// The name is kept as originally observed; candidate links are appended
// (deduped) rather than replacing existing ones.
func mergeOrganization(base, cand *record.Organization) {
	if cand == nil {
		return
	}
	if !base.Has(record.FieldCountry) && cand.Has(record.FieldCountry) {
		base.SetCountry(cand.Country)
	}
	if !base.Has(record.FieldRDFType) && cand.Has(record.FieldRDFType) {
		base.SetRDFType(cand.RDFType)
	}
	if !base.Has(record.FieldWorks) && cand.Has(record.FieldWorks) {
		base.SetWorks(cand.Works)
	}
	for _, link := range cand.Links {
		base.AddLink(link)
	}
}

// mergeProject fills absent project fields from a candidate.
func mergeProject(base, cand *record.Project) {
	if cand == nil {
		return
	}
	if !base.Has(record.FieldFundedAmount) && cand.Has(record.FieldFundedAmount) {
		base.SetFundedAmount(cand.FundedAmount)
	}
	if !base.Has(record.FieldStartDate) && cand.Has(record.FieldStartDate) {
		base.SetStartDate(cand.StartDate)
	}
	if !base.Has(record.FieldEndDate) && cand.Has(record.FieldEndDate) {
		base.SetEndDate(cand.EndDate)
	}
}
