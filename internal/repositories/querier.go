package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier - общее у пула и транзакции, чтобы репозитории работали с обоими.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// pick возвращает tx, если он передан, иначе пул.
func pick(storage querier, tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return storage
}

func queryRow(ctx context.Context, q querier, builder sq.Sqlizer) (pgx.Row, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	return q.QueryRow(ctx, query, args...), nil
}

func query(ctx context.Context, q querier, builder sq.Sqlizer) (pgx.Rows, error) {
	sqlText, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	return q.Query(ctx, sqlText, args...)
}

func exec(ctx context.Context, q querier, builder sq.Sqlizer) (pgconn.CommandTag, error) {
	sqlText, args, err := builder.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return q.Exec(ctx, sqlText, args...)
}

func count(ctx context.Context, q querier, builder sq.SelectBuilder) (uint64, error) {
	row, err := queryRow(ctx, q, builder)
	if err != nil {
		return 0, err
	}
	var total uint64
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// prefixedRow добавляет приёмники перед колонками, которые сканирует общий scan-хелпер.
type prefixedRow struct {
	row  pgx.Row
	head []interface{}
}

func (p prefixedRow) Scan(dest ...interface{}) error {
	return p.row.Scan(append(p.head, dest...)...)
}
