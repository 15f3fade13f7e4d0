package grobid

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/citegraph/internal/record"
)

// persName is a person name inside an author element.
type persName struct {
	Forenames []string `xml:"forename"`
	Surname   string   `xml:"surname"`
}

// fullName joins forenames and surname into a display name.
func (n persName) fullName() string {
	parts := append(append([]string{}, n.Forenames...), n.Surname)
	return record.NormalizeSpace(strings.Join(parts, " "))
}

// parseTEI walks the TEI token stream and collects the document facts
// the pipeline seeds papers from. Elements are matched by local name so
// namespace prefixes don't matter; any element absent in the TEI simply
// leaves its document field empty.
func parseTEI(data []byte) (*record.Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	doc := &record.Document{}

	orgSeen := make(map[string]bool)
	var ackParts []string

	// Depth trackers for the container elements whose children we care
	// about: orgName means an affiliation inside author metadata, a
	// funder inside funding.
	authorDepth := 0
	affiliationDepth := 0
	fundingDepth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "title":
				if doc.Title == "" {
					doc.Title = collectText(dec)
				}
			case "author":
				authorDepth++
			case "affiliation":
				affiliationDepth++
			case "funding", "funder":
				fundingDepth++
			case "persName":
				if authorDepth > 0 && len(doc.AuthorNames) < maxHeaderAuthors {
					var n persName
					if err := dec.DecodeElement(&n, &t); err == nil {
						addName(&doc.AuthorNames, n.fullName())
					}
				}
			case "orgName":
				name := collectText(dec)
				switch {
				case fundingDepth > 0:
					addName(&doc.ProjectNames, name)
				case affiliationDepth > 0 && name != "" && !orgSeen[record.NormalizeKey(name)]:
					orgSeen[record.NormalizeKey(name)] = true
					doc.OrgNames = append(doc.OrgNames, name)
				}
			case "pb":
				doc.PageCount++
			case "div":
				if attrValue(t, "type") == "acknowledgement" {
					if text := collectText(dec); text != "" {
						ackParts = append(ackParts, text)
					}
				}
			case "abstract":
				if doc.Abstract == "" {
					doc.Abstract = collectText(dec)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "author":
				authorDepth--
			case "affiliation":
				affiliationDepth--
			case "funding", "funder":
				fundingDepth--
			}
		}
	}

	doc.Acknowledgment = strings.Join(ackParts, " ")
	return doc, nil
}

// addName appends a non-empty name not already in the list (normalized
// comparison).
func addName(names *[]string, name string) {
	if name == "" {
		return
	}
	for _, existing := range *names {
		if record.SameKey(existing, name) {
			return
		}
	}
	*names = append(*names, name)
}

// collectText consumes the current element's subtree and returns its
// whitespace-normalized character data.
func collectText(dec *xml.Decoder) string {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
			sb.WriteByte(' ')
		}
	}
	return record.NormalizeSpace(sb.String())
}

// attrValue returns the value of the named attribute, or "".
func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
