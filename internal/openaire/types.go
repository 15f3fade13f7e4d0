package openaire

// orgSearchResponse is the JSON payload of the graph organizations search.
type orgSearchResponse struct {
	Header struct {
		NumFound int `json:"numFound"`
	} `json:"header"`
	Results []orgResult `json:"results"`
}

// orgResult is one organization in a graph search response. Any field
// may be absent upstream; absent fields stay empty.
type orgResult struct {
	ID               string   `json:"id"`
	LegalName        string   `json:"legalName"`
	LegalShortName   string   `json:"legalShortName"`
	WebsiteURL       string   `json:"websiteUrl"`
	AlternativeNames []string `json:"alternativeNames"`
	Country          struct {
		Code  string `json:"code"`
		Label string `json:"label"`
	} `json:"country"`
}

// projectSearchResponse is the JSON payload of the graph projects lookup.
type projectSearchResponse struct {
	Results []projectResult `json:"results"`
}

// projectResult is one project in a graph lookup response.
type projectResult struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Acronym      string  `json:"acronym"`
	FundedAmount float64 `json:"fundedAmount"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
}

// publication is the parsed view of one OpenAIRE publication XML
// payload. The search API nests results deeply and inconsistently, so
// parsing walks the token stream by local element name instead of
// mirroring the full envelope (see parsePublication).
type publication struct {
	Title         string
	DOI           string
	Date          string
	Language      string
	CitationCount string
	Pages         string
	ResourceType  string
	Creators      []creator
	ProjectIDs    []string
	Publishers    []string
	Total         string
}

// creator is one author element inside a publication payload. The
// author name is the element's character data (or a nested creatorName
// element in DataCite-shaped payloads); everything else rides on
// attributes.
type creator struct {
	Text        string `xml:",chardata"`
	Name        string `xml:"creatorName"`
	Type        string `xml:"type,attr"`
	Occupation  string `xml:"occupation,attr"`
	Affiliation string `xml:"affiliation,attr"`
}
