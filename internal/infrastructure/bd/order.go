package db

import "strings"

// BuildOrder возвращает "<колонка> ASC|DESC". Неизвестное поле заменяется на
// defaultSort, направление по умолчанию DESC.
func BuildOrder(sortBy, sortOrder string, allowed map[string]string, defaultSort string) string {
	column, ok := allowed[sortBy]
	if !ok {
		column, ok = allowed[defaultSort]
		if !ok {
			column = defaultSort
		}
	}

	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(sortOrder), "ASC") {
		direction = "ASC"
	}
	return column + " " + direction
}
