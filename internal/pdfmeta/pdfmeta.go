// Package pdfmeta sniffs bibliographic metadata straight out of a PDF.
// It is the fallback path when the extraction service fails: a DOI or
// title pulled from the first pages is enough to seed reconciliation.
package pdfmeta

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Sniff covers the first pages only; front matter carries the metadata.
const maxSniffPages = 3

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// Meta is what sniffing recovers from a PDF.
type Meta struct {
	Title     string
	DOI       string
	PageCount int
}

// Sniff reads the first pages of the PDF at path and extracts whatever
// metadata it can. A PDF that opens but yields nothing returns an empty
// Meta with the page count set and a nil error.
func Sniff(path string) (Meta, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Meta{}, err
	}
	defer f.Close()

	meta := Meta{PageCount: r.NumPage()}

	maxPages := maxSniffPages
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if meta.Title == "" && i == 1 {
			meta.Title = findTitle(text)
		}
		if meta.DOI == "" {
			meta.DOI = findDOI(text)
		}
		if meta.Title != "" && meta.DOI != "" {
			break
		}
	}

	return meta, nil
}

// findDOI finds the first valid-looking DOI in text.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

func isValidDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}

// findTitle returns the first substantial line of first-page text,
// skipping lines that look like journal headers.
func findTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line
		}
	}
	return ""
}

// isHeaderLine checks if a line is likely a header/footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "journal") {
		return true
	}
	if strings.Contains(lower, "volume") && strings.Contains(lower, "issue") {
		return true
	}
	if strings.Contains(lower, "copyright") {
		return true
	}
	if strings.Contains(lower, "article") && strings.Contains(lower, "published") {
		return true
	}
	return false
}
