package utils

import (
	"math"
	"strconv"

	"hr-system/pkg/types"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// GetPaginationParams приводит page/limit из запроса к допустимым значениям.
// page < 1 становится 1. limit вне [1, MaxLimit] сбрасывается в DefaultLimit, а не
// прижимается к границе. page прижимается сверху так, чтобы OFFSET влез в bigint.
func GetPaginationParams(pageRaw, limitRaw string) (page, limit uint64) {
	page, limit = DefaultPage, DefaultLimit

	if p, err := strconv.ParseInt(pageRaw, 10, 64); err == nil && p >= 1 {
		page = uint64(p)
	}
	if l, err := strconv.ParseInt(limitRaw, 10, 64); err == nil && l >= 1 && l <= MaxLimit {
		limit = uint64(l)
	}
	if maxPage := maxPageFor(limit); page > maxPage {
		page = maxPage
	}
	return page, limit
}

// maxPageFor - наибольшая страница, для которой (page-1)*limit <= math.MaxInt64.
func maxPageFor(limit uint64) uint64 {
	if limit == 0 {
		return math.MaxInt64
	}
	return math.MaxInt64/limit + 1
}

func Offset(page, limit uint64) uint64 {
	if page < 1 {
		return 0
	}
	if maxPage := maxPageFor(limit); page > maxPage {
		page = maxPage
	}
	return (page - 1) * limit
}

func NewPagination(total, page, limit uint64) types.Pagination {
	var totalPages uint64
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return types.Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
