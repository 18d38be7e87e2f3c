package db

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
)

type FieldKind int

const (
	KindText FieldKind = iota
	KindExact
	KindEnum
	KindBoolean
	KindDate
	KindDateRange
)

// Field описывает один фильтруемый параметр списка. Для KindDateRange значения
// читаются из параметров Name+"From" и Name+"To".
type Field struct {
	Name   string
	Kind   FieldKind
	Column string
}

type Schema []Field

const endOfDay = 24*time.Hour - time.Millisecond

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildFilter превращает значения фильтра в AND-предикат по схеме. Пустые
// значения (nil и "") пропускаются, поля вне схемы игнорируются.
func BuildFilter(values map[string]interface{}, schema Schema) (sq.And, error) {
	conditions := sq.And{}

	for _, field := range schema {
		if field.Kind == KindDateRange {
			clause, err := BuildDateRangeClause(values[field.Name+"From"], values[field.Name+"To"], field.Column)
			if err != nil {
				return nil, err
			}
			if clause != nil {
				conditions = append(conditions, clause)
			}
			continue
		}

		raw, ok := values[field.Name]
		if !ok || isEmpty(raw) {
			continue
		}

		switch field.Kind {
		case KindText:
			conditions = append(conditions, sq.ILike{field.Column: containsPattern(fmt.Sprint(raw))})
		case KindExact:
			conditions = append(conditions, sq.Eq{field.Column: raw})
		case KindEnum:
			if s, ok := raw.(string); ok && strings.Contains(s, ",") {
				conditions = append(conditions, sq.Eq{field.Column: splitList(s)})
			} else {
				conditions = append(conditions, sq.Eq{field.Column: raw})
			}
		case KindBoolean:
			b, err := toBool(raw)
			if err != nil {
				return nil, apperrors.NewValidationError("Неверный фильтр",
					fmt.Sprintf("параметр '%s' должен быть true или false", field.Name))
			}
			conditions = append(conditions, sq.Eq{field.Column: b})
		case KindDate:
			start, end, err := DayWindow(raw)
			if err != nil {
				return nil, apperrors.NewValidationError("Неверный фильтр",
					fmt.Sprintf("параметр '%s': %v", field.Name, err))
			}
			conditions = append(conditions, sq.GtOrEq{field.Column: start}, sq.LtOrEq{field.Column: end})
		}
	}

	return conditions, nil
}

// BuildDateRangeClause строит независимые границы: from (>= начала дня UTC) и
// to (<= конца дня UTC). Возвращает nil, если обе границы пустые.
func BuildDateRangeClause(from, to interface{}, column string) (sq.Sqlizer, error) {
	clause := sq.And{}

	if !isEmpty(from) {
		start, _, err := DayWindow(from)
		if err != nil {
			return nil, apperrors.NewValidationError("Неверный фильтр", fmt.Sprintf("начало периода: %v", err))
		}
		clause = append(clause, sq.GtOrEq{column: start})
	}
	if !isEmpty(to) {
		_, end, err := DayWindow(to)
		if err != nil {
			return nil, apperrors.NewValidationError("Неверный фильтр", fmt.Sprintf("конец периода: %v", err))
		}
		clause = append(clause, sq.LtOrEq{column: end})
	}

	if len(clause) == 0 {
		return nil, nil
	}
	return clause, nil
}

// DayWindow возвращает [00:00:00.000, 23:59:59.999] дня в UTC. YYYY-MM-DD берётся
// как есть, без сдвига часового пояса; прочие форматы сначала приводятся к UTC.
func DayWindow(raw interface{}) (time.Time, time.Time, error) {
	var t time.Time
	switch v := raw.(type) {
	case time.Time:
		t = v.UTC()
	case string:
		parsed, err := types.ParseTimestamp(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		t = parsed
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("неподдерживаемое значение даты: %v", raw)
	}

	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(endOfDay), nil
}

// BuildSearch строит OR частичных совпадений терма по списку колонок.
func BuildSearch(term string, columns []string) sq.Sqlizer {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return nil
	}
	pattern := containsPattern(term)
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.ILike{col: pattern})
	}
	return or
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func toBool(v interface{}) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(strings.ToLower(strings.TrimSpace(b)))
	}
	return false, fmt.Errorf("не булево значение: %v", v)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
