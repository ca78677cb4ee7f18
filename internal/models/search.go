package models

// SearchParams filters and pages the confirmation log. All filters
// are optional and compose with AND. Date bounds accept RFC 3339
// timestamps or bare YYYY-MM-DD dates.
type SearchParams struct {
	Keyword          string `json:"keyword,omitempty"`
	ConfirmationType string `json:"confirmation_type,omitempty"`
	StartDate        string `json:"start_date,omitempty"`
	EndDate          string `json:"end_date,omitempty"`
	Success          *bool  `json:"success,omitempty"`
	TimedOut         *bool  `json:"timed_out,omitempty"`
	MinResponseTime  *int64 `json:"min_response_time,omitempty"`
	MaxResponseTime  *int64 `json:"max_response_time,omitempty"`
	Page             int    `json:"page,omitempty"`
	PageSize         int    `json:"page_size,omitempty"`
}

// SearchResult is one page of matching records, most recent first.
type SearchResult struct {
	Entries     []ConfirmationRecord `json:"entries"`
	TotalCount  int                  `json:"totalCount"`
	CurrentPage int                  `json:"currentPage"`
	TotalPages  int                  `json:"totalPages"`
	PageSize    int                  `json:"pageSize"`
}

// StatsParams bounds and groups the analytics aggregation.
type StatsParams struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	GroupBy   string `json:"group_by,omitempty"`
}

// GroupStat is one group-by bucket in a stats report.
type GroupStat struct {
	Key               string  `json:"key"`
	Count             int     `json:"count"`
	SuccessRate       float64 `json:"successRate"`
	AvgResponseTimeMs float64 `json:"avgResponseTimeMs"`
}

// Stats summarizes a date-bounded slice of the confirmation log.
// Numeric aggregates are all zero when Total is zero.
type Stats struct {
	Total             int         `json:"total"`
	Success           int         `json:"success"`
	Failed            int         `json:"failed"`
	TimedOut          int         `json:"timedOut"`
	AvgResponseTimeMs float64     `json:"avgResponseTimeMs"`
	MinResponseTimeMs int64       `json:"minResponseTimeMs"`
	MaxResponseTimeMs int64       `json:"maxResponseTimeMs"`
	GroupBy           string      `json:"groupBy,omitempty"`
	Groups            []GroupStat `json:"groups,omitempty"`
}
