package store

import (
	"context"
	"fmt"

	namedParameterQuery "github.com/Knetic/go-namedParameterQuery"
	"github.com/jmoiron/sqlx"

	"github.com/minsukang/channel-sales-manager/internal/dependency"
)

// rebindNamed expands :name parameters (IN-lists included) and rebinds the
// query to Postgres dollar placeholders.
func rebindNamed(query string, params map[string]any) (string, []any, error) {
	queryNamed := namedParameterQuery.NewNamedParameterQuery(query)
	queryNamed.SetValuesFromMap(params)
	q, args, err := sqlx.In(queryNamed.GetParsedQuery(), queryNamed.GetParsedParameters()...)
	if err != nil {
		return "", nil, fmt.Errorf("in: %w", err)
	}
	return sqlx.Rebind(sqlx.DOLLAR, q), args, nil
}

func QueryListNamed[T any](
	ctx context.Context,
	conn dependency.DB,
	query string,
	params map[string]any,
) ([]T, error) {
	q, args, err := rebindNamed(query, params)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var target []T
	for rows.Next() {
		var t T
		if err := rows.StructScan(&t); err != nil {
			return nil, fmt.Errorf("struct scan: %w", err)
		}
		target = append(target, t)
	}
	return target, rows.Err()
}

func QueryNamedOne[T any](ctx context.Context, conn dependency.DB, query string, params map[string]any) (T, error) {
	var target T
	q, args, err := rebindNamed(query, params)
	if err != nil {
		return target, err
	}

	row := conn.QueryRowxContext(ctx, q, args...)
	if err := row.Err(); err != nil {
		return target, fmt.Errorf("query row: %w", err)
	}

	if err := row.StructScan(&target); err != nil {
		return target, fmt.Errorf("struct scan: %w", err)
	}
	return target, nil
}

// ExecNamed runs a statement with :name parameters.
func ExecNamed(ctx context.Context, conn dependency.DB, query string, params map[string]any) error {
	q, args, err := rebindNamed(query, params)
	if err != nil {
		return err
	}
	if _, err := conn.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}
