package types

// Filter - разобранные параметры списка: пагинация, сортировка, поиск и значения фильтров.
// Values содержит сырые значения по имени параметра (например "user_id", "assignedAtFrom").
type Filter struct {
	Search         string
	SortBy         string
	SortOrder      string
	Values         map[string]interface{}
	Page           uint64
	Limit          uint64
	Offset         uint64
	WithPagination bool
}

func (f Filter) Value(key string) interface{} {
	if f.Values == nil {
		return nil
	}
	return f.Values[key]
}
