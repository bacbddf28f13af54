package dto

type SalaryInsightResponse struct {
	Count       int          `json:"count"`
	Salary      SalaryDetail `json:"salary"`
	RemoteShare float64      `json:"remote_share"`
}

type SalaryDetail struct {
	Median   *int   `json:"median"`
	Currency string `json:"currency,omitempty"`
}

type TrendWeekResponse struct {
	Week   string `json:"week"`
	Total  int    `json:"total"`
	AI     int    `json:"ai"`
	Dev    int    `json:"dev"`
	Senior int    `json:"senior"`
	Remote int    `json:"remote"`
}

type TrendsResponse struct {
	Weeks []TrendWeekResponse `json:"weeks"`
}

type AutocompleteResponse struct {
	Suggestions []string `json:"suggestions"`
}
