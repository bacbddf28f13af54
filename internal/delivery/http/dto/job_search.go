package dto

// JobItemResponse is one listing in a search result or detail payload.
// PostedAt is RFC 3339 or empty when the source row is undated.
type JobItemResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Link        *string `json:"link"`
	PostedAt    string  `json:"posted_at"`
	IsNew       bool    `json:"is_new"`
	IsGhost     bool    `json:"is_ghost"`
	IsDemo      bool    `json:"is_demo,omitempty"`
}

type PageMetaResponse struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Pages   int  `json:"pages"`
	Total   int  `json:"total"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

type QueryEchoResponse struct {
	Title          string `json:"title"`
	Country        string `json:"country"`
	DisplayCountry string `json:"display_country"`
}

type JobSearchResponse struct {
	Items  []JobItemResponse `json:"items"`
	Meta   PageMetaResponse  `json:"meta"`
	Query  QueryEchoResponse `json:"query"`
	IsDemo bool              `json:"is_demo"`
}

type RelatedJobResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	PostedAt string `json:"posted_at"`
}

type JobDetailResponse struct {
	Job     JobItemResponse      `json:"job"`
	Related []RelatedJobResponse `json:"related"`
}
