package bridge

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Query runs a generic statement. The facade is read-only, so it always
// returns false.
func (db *DB) Query(ctx context.Context, query string) bool {
	db.record(MethodQuery, query)
	db.reject(ctx, MethodQuery, query)
	return false
}

// Insert always returns false.
func (db *DB) Insert(ctx context.Context, table string, data map[string]any) bool {
	query := fmt.Sprintf("INSERT INTO %s (%s)", table, columnList(data))
	db.record(MethodInsert, query)
	db.reject(ctx, MethodInsert, query)
	return false
}

// Update always returns false.
func (db *DB) Update(ctx context.Context, table string, data, where map[string]any) bool {
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, columnList(data), columnList(where))
	db.record(MethodUpdate, query)
	db.reject(ctx, MethodUpdate, query)
	return false
}

// Delete always returns false.
func (db *DB) Delete(ctx context.Context, table string, where map[string]any) bool {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", table, columnList(where))
	db.record(MethodDelete, query)
	db.reject(ctx, MethodDelete, query)
	return false
}

func (db *DB) reject(ctx context.Context, method, query string) {
	db.logger.InfoContext(ctx, "write rejected",
		"request_id", db.RequestID,
		"method", method,
		"query", query,
	)
}

// columnList renders map keys sorted, so log entries are deterministic.
func columnList(m map[string]any) string {
	return strings.Join(slices.Sorted(maps.Keys(m)), ", ")
}
