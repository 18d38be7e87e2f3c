package db

import (
	sq "github.com/Masterminds/squirrel"

	"hr-system/pkg/types"
)

// ListSchema - всё, что нужно для списка сущности: фильтры, поиск и сортировка.
type ListSchema struct {
	Fields        Schema
	SearchColumns []string
	SortColumns   map[string]string
	DefaultSort   string
}

// ApplyFilters добавляет WHERE из фильтра и поиска. Одинаково используется для
// выборки и для COUNT.
func ApplyFilters(builder sq.SelectBuilder, filter types.Filter, schema ListSchema) (sq.SelectBuilder, error) {
	conditions, err := BuildFilter(filter.Values, schema.Fields)
	if err != nil {
		return builder, err
	}
	if len(conditions) > 0 {
		builder = builder.Where(conditions)
	}
	if search := BuildSearch(filter.Search, schema.SearchColumns); search != nil {
		builder = builder.Where(search)
	}
	return builder, nil
}

// ApplyOrderAndPage добавляет ORDER BY и, если включена пагинация, LIMIT/OFFSET.
func ApplyOrderAndPage(builder sq.SelectBuilder, filter types.Filter, schema ListSchema) sq.SelectBuilder {
	builder = builder.OrderBy(BuildOrder(filter.SortBy, filter.SortOrder, schema.SortColumns, schema.DefaultSort))
	if filter.WithPagination && filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}
	return builder
}
