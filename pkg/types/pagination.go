package types

type Pagination struct {
	Total      uint64 `json:"total"`
	Page       uint64 `json:"page"`
	Limit      uint64 `json:"limit"`
	TotalPages uint64 `json:"totalPages"`
}
