package database

import (
	"context"
	"fmt"

	"github.com/ekaya-inc/sparkify-etl/pkg/sql"
)

// CreateTables runs the catalog's create statements in creation order.
func CreateTables(ctx context.Context, q Querier) error {
	for _, stmt := range sql.CreateTableQueries {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// DropTables runs the catalog's drop statements in drop order.
func DropTables(ctx context.Context, q Querier) error {
	for _, stmt := range sql.DropTableQueries {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}

// EnsureSchema creates any missing star-schema table.
func (db *DB) EnsureSchema(ctx context.Context) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		q, _ := GetQuerier(ctx)
		return CreateTables(ctx, q)
	})
}

// ResetSchema drops and recreates every star-schema table in one transaction.
func (db *DB) ResetSchema(ctx context.Context) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		q, _ := GetQuerier(ctx)
		if err := DropTables(ctx, q); err != nil {
			return err
		}
		return CreateTables(ctx, q)
	})
}

// TableCounts returns the row count of every star-schema table keyed by table name.
func TableCounts(ctx context.Context, q Querier) (map[string]int64, error) {
	counts := make(map[string]int64, len(sql.TableNames))
	for _, table := range sql.TableNames {
		var n int64
		// Table names come from the catalog, never from input.
		if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
