package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp разбирает ISO-дату или дату-время и приводит к UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("неверный формат даты: %q", raw)
}

// OptionalTime различает три случая в PATCH: поле не передано, передан null (или ""),
// передано значение.
type OptionalTime struct {
	Set   bool
	Value null.Time
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		o.Value = null.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("дата должна быть строкой: %w", err)
	}
	t, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	o.Value = null.TimeFrom(t)
	return nil
}

func (o OptionalTime) MarshalJSON() ([]byte, error) {
	return o.Value.MarshalJSON()
}

func (o OptionalTime) IsNull() bool { return o.Set && !o.Value.Valid }

func (o OptionalTime) Ptr() *time.Time { return o.Value.Ptr() }

func OptionalTimeFrom(t time.Time) OptionalTime {
	return OptionalTime{Set: true, Value: null.TimeFrom(t.UTC())}
}

// OptionalString - то же для nullable текстовых колонок.
type OptionalString struct {
	Set   bool
	Value null.String
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	return o.Value.UnmarshalJSON(data)
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	return o.Value.MarshalJSON()
}

func OptionalStringFrom(s string) OptionalString {
	return OptionalString{Set: true, Value: null.StringFrom(s)}
}
