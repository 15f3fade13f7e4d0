package openalex

// worksResponse is the payload of /works searches.
type worksResponse struct {
	Results []work `json:"results"`
}

// work is one OpenAlex work. Only the fields the record model consumes
// are declared; anything absent upstream stays zero.
type work struct {
	Title           string `json:"title"`
	DOI             string `json:"doi"`
	PublicationDate string `json:"publication_date"`
	Language        string `json:"language"`
	CitedByCount    int    `json:"cited_by_count"`
	Type            string `json:"type"`
	Biblio          struct {
		Pages string `json:"pages"`
	} `json:"biblio"`
	Authorships []authorship `json:"authorships"`
}

// authorship nests an author and the institutions credited for this work.
type authorship struct {
	Author       apiAuthor        `json:"author"`
	Institutions []apiInstitution `json:"institutions"`
}

// authorsResponse is the payload of /authors searches.
type authorsResponse struct {
	Results []apiAuthor `json:"results"`
}

// apiAuthor is an OpenAlex author, either nested in an authorship or a
// full /authors result.
type apiAuthor struct {
	DisplayName          string `json:"display_name"`
	Type                 string `json:"type"`
	WorksCount           int    `json:"works_count"`
	LastKnownInstitution struct {
		DisplayName string `json:"display_name"`
	} `json:"last_known_institution"`
}

// institutionsResponse is the payload of /institutions searches.
type institutionsResponse struct {
	Results []apiInstitution `json:"results"`
}

// apiInstitution is an OpenAlex institution, either nested in an
// authorship or a full /institutions result.
type apiInstitution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
	Type        string `json:"type"`
	WorksCount  int    `json:"works_count"`
}
