package models

type Opportunity struct {
	Title              string
	PostedDate         string
	ResponseDeadline   string
	Description        string
	Type               string
	SolicitationNumber string
}

type SearchSummary struct {
	TotalRecords   int
	Opportunities  []Opportunity
	SkippedFilters []string
}
