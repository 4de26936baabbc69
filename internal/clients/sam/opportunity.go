package sam

type Opportunity struct {
	Title              string `json:"title"`
	PostedDate         string `json:"postedDate"`
	ResponseDeadline   string `json:"responseDeadLine"`
	Description        string `json:"description"`
	Type               string `json:"type"`
	SolicitationNumber string `json:"solicitationNumber"`
}

type SearchResult struct {
	TotalRecords   int
	Opportunities  []Opportunity
	SkippedFilters []string
}
