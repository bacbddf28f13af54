package dto

// IngestItem mirrors one scraped listing. PostedAt accepts the date formats
// the feeds actually produce (RFC 3339, YYYY-MM-DD, YYYY.MM.DD).
type IngestItem struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	Country     string   `json:"country"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	Currency    string   `json:"currency"`
	PostedAt    string   `json:"posted_at"`
}

type IngestRequest struct {
	Items []IngestItem `json:"items"`
}

type IngestResponse struct {
	Received int   `json:"received"`
	Accepted int   `json:"accepted"`
	Inserted int64 `json:"inserted"`
}
