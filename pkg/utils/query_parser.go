package utils

import (
	"net/url"
	"strings"

	"hr-system/pkg/types"
)

var reservedQueryKeys = map[string]struct{}{
	"page":           {},
	"limit":          {},
	"sortBy":         {},
	"sortOrder":      {},
	"search":         {},
	"withPagination": {},
}

// ParseFilterFromQuery собирает types.Filter из query-параметров. Параметры вида
// "filter[name]" и просто "name" равнозначны. Пустые значения отбрасываются.
func ParseFilterFromQuery(values url.Values) types.Filter {
	page, limit := GetPaginationParams(values.Get("page"), values.Get("limit"))

	filter := types.Filter{
		Search:         strings.TrimSpace(values.Get("search")),
		SortBy:         values.Get("sortBy"),
		SortOrder:      values.Get("sortOrder"),
		Values:         make(map[string]interface{}),
		Page:           page,
		Limit:          limit,
		Offset:         Offset(page, limit),
		WithPagination: values.Get("withPagination") != "false",
	}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		if _, reserved := reservedQueryKeys[key]; reserved {
			continue
		}
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			key = key[7 : len(key)-1]
		}
		filter.Values[key] = vals[0]
	}

	return filter
}
