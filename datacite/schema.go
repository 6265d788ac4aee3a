package datacite

// Request body types for the DataCite REST API (JSON:API, schema 4.x).
// Only the attributes used for Circulars are modelled.

type doiDocument struct {
	Data doiData `json:"data"`
}

type doiData struct {
	Type       string        `json:"type"`
	Attributes doiAttributes `json:"attributes"`
}

type doiAttributes struct {
	DOI             string    `json:"doi"`
	Prefix          string    `json:"prefix"`
	Suffix          string    `json:"suffix"`
	Event           string    `json:"event"`
	URL             string    `json:"url"`
	Dates           []date    `json:"dates"`
	Publisher       string    `json:"publisher"`
	PublicationYear int       `json:"publicationYear"`
	Creators        []creator `json:"creators"`
	Titles          []title   `json:"titles"`
	Types           types     `json:"types"`
	Container       container `json:"container"`
}

type date struct {
	Date     string `json:"date"`
	DateType string `json:"dateType"`
}

type creator struct {
	Name string `json:"name"`
}

type title struct {
	Title string `json:"title"`
}

type types struct {
	ResourceTypeGeneral string `json:"resourceTypeGeneral"`
}

type container struct {
	Volume string `json:"volume"`
	Title  string `json:"title"`
}
