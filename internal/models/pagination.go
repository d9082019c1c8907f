package models

// Pagination describes list metadata returned alongside collection reads.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
}

// Counter is one row of the counter table: the last issued sequence number
// for a counter name. Mutated only by the identifier allocator.
type Counter struct {
	Name  string `json:"name" db:"name"`
	Value int64  `json:"value" db:"value"`
}
