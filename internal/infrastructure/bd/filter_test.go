package db

import (
	"errors"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
)

var assetSchema = Schema{
	{Name: "name", Kind: KindText, Column: "a.name"},
	{Name: "serial_number", Kind: KindExact, Column: "a.serial_number"},
	{Name: "asset_type", Kind: KindEnum, Column: "a.asset_type"},
	{Name: "is_primary", Kind: KindBoolean, Column: "a.is_primary"},
	{Name: "createdOn", Kind: KindDate, Column: "a.created_at"},
	{Name: "createdAt", Kind: KindDateRange, Column: "a.created_at"},
}

func toSQL(t *testing.T, pred sq.Sqlizer) (string, []interface{}) {
	t.Helper()
	query, args, err := sq.Select("1").From("assets a").Where(pred).PlaceholderFormat(sq.Dollar).ToSql()
	require.NoError(t, err)
	return query, args
}

func TestBuildDateRangeClauseSingleDay(t *testing.T) {
	clause, err := BuildDateRangeClause("2025-01-01", "2025-01-01", "created_at")
	require.NoError(t, err)

	query, args := toSQL(t, clause)
	assert.Contains(t, query, "created_at >= $1 AND created_at <= $2")
	require.Len(t, args, 2)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), args[0])
	assert.Equal(t, time.Date(2025, 1, 1, 23, 59, 59, 999_000_000, time.UTC), args[1])
}

func TestBuildDateRangeClauseOpenBounds(t *testing.T) {
	clause, err := BuildDateRangeClause(nil, "2025-03-10", "created_at")
	require.NoError(t, err)
	query, args := toSQL(t, clause)
	assert.Contains(t, query, "created_at <= $1")
	assert.NotContains(t, query, ">=")
	assert.Len(t, args, 1)

	clause, err = BuildDateRangeClause("", nil, "created_at")
	require.NoError(t, err)
	assert.Nil(t, clause)
}

func TestDayWindowNormalisesToUTC(t *testing.T) {
	// 01:30 по Душанбе (UTC+5) - это ещё 31 декабря по UTC
	start, end, err := DayWindow("2025-01-01T01:30:00+05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 999_000_000, time.UTC), end)

	_, _, err = DayWindow("позавчера")
	assert.Error(t, err)
}

func TestBuildFilterKinds(t *testing.T) {
	values := map[string]interface{}{
		"name":          "hp_50%",
		"serial_number": "SN-1",
		"asset_type":    "laptop,mobile",
		"is_primary":    "TRUE",
		"unknown":       "ignored",
	}
	conditions, err := BuildFilter(values, assetSchema)
	require.NoError(t, err)

	query, args := toSQL(t, conditions)
	assert.Contains(t, query, "a.name ILIKE $1")
	assert.Contains(t, query, "a.serial_number = $2")
	assert.Contains(t, query, "a.asset_type IN ($3,$4)")
	assert.Contains(t, query, "a.is_primary = $5")
	assert.NotContains(t, query, "unknown")
	assert.Equal(t, []interface{}{`%hp\_50\%%`, "SN-1", "laptop", "mobile", true}, args)
}

func TestBuildFilterSkipsEmptyValues(t *testing.T) {
	conditions, err := BuildFilter(map[string]interface{}{
		"name":          "",
		"serial_number": nil,
		"createdAtFrom": "  ",
	}, assetSchema)
	require.NoError(t, err)
	assert.Empty(t, conditions)
}

func TestBuildFilterSingleDate(t *testing.T) {
	conditions, err := BuildFilter(map[string]interface{}{"createdOn": "2025-06-30"}, assetSchema)
	require.NoError(t, err)
	_, args := toSQL(t, conditions)
	assert.Equal(t, []interface{}{
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 23, 59, 59, 999_000_000, time.UTC),
	}, args)
}

func TestBuildFilterRejectsBadInput(t *testing.T) {
	_, err := BuildFilter(map[string]interface{}{"createdAtFrom": "not a date"}, assetSchema)
	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 400, httpErr.Code)

	_, err = BuildFilter(map[string]interface{}{"is_primary": "maybe"}, assetSchema)
	assert.Error(t, err)
}

func TestBuildSearch(t *testing.T) {
	assert.Nil(t, BuildSearch("   ", []string{"a.name"}))

	query, args := toSQL(t, BuildSearch("dell", []string{"a.name", "a.serial_number"}))
	assert.Contains(t, query, "(a.name ILIKE $1 OR a.serial_number ILIKE $2)")
	assert.Equal(t, []interface{}{"%dell%", "%dell%"}, args)
}

func TestBuildOrder(t *testing.T) {
	allowed := map[string]string{"createdAt": "a.created_at", "name": "a.name"}

	assert.Equal(t, "a.name ASC", BuildOrder("name", "asc", allowed, "createdAt"))
	assert.Equal(t, "a.name DESC", BuildOrder("name", "", allowed, "createdAt"))
	assert.Equal(t, "a.created_at DESC", BuildOrder("password_hash", "sideways", allowed, "createdAt"))
}

func TestApplyListParams(t *testing.T) {
	schema := ListSchema{
		Fields:        assetSchema,
		SearchColumns: []string{"a.name"},
		SortColumns:   map[string]string{"createdAt": "a.created_at"},
		DefaultSort:   "createdAt",
	}
	filter := types.Filter{
		Search:         "x",
		Values:         map[string]interface{}{"asset_type": "phone"},
		Limit:          10,
		Offset:         20,
		WithPagination: true,
	}

	builder, err := ApplyFilters(sq.Select("a.id").From("assets a").Where(sq.Eq{"a.is_active": true}), filter, schema)
	require.NoError(t, err)
	builder = ApplyOrderAndPage(builder, filter, schema)

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT a.id FROM assets a WHERE a.is_active = $1 AND (a.asset_type = $2) AND (a.name ILIKE $3) ORDER BY a.created_at DESC LIMIT 10 OFFSET 20",
		query)
	assert.Equal(t, []interface{}{true, "phone", "%x%"}, args)
}
