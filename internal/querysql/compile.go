package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/wp4bd/internal/entityquery"
	"github.com/roach88/wp4bd/internal/record"
)

// table describes how an entity kind is stored.
type table struct {
	name       string
	id         string
	bundle     string // empty when the kind has no bundles
	properties map[string]bool
}

var tables = map[record.Kind]table{
	record.KindNode: {
		name:   "node",
		id:     "nid",
		bundle: "type",
		properties: set("nid", "uid", "type", "title", "status", "comment",
			"promote", "sticky", "langcode", "created", "changed"),
	},
	record.KindUser: {
		name:       "users",
		id:         "uid",
		properties: set("uid", "name", "mail", "display_name", "status", "created"),
	},
	record.KindTerm: {
		name:       "taxonomy_term_data",
		id:         "tid",
		bundle:     "vocabulary",
		properties: set("tid", "vocabulary", "name", "machine_name", "parent", "weight"),
	},
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// SQLCompiler compiles entity queries to parameterized SQL for SQLite.
//
// Every query orders by the entity id as a final tiebreaker so equal sort
// keys come back in a stable order. Values are always parameterized.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// Compile converts an entity query to SQL selecting matching ids.
// Returns (sql, params, error) tuple.
func (c *SQLCompiler) Compile(q *entityquery.Query) (string, []any, error) {
	t, where, params, err := c.compileBase(q)
	if err != nil {
		return "", nil, err
	}

	orderBy, err := c.compileOrder(t, q.Orders)
	if err != nil {
		return "", nil, err
	}

	sql := fmt.Sprintf("SELECT base.%s FROM %s base%s ORDER BY %s", t.id, t.name, where, orderBy)

	if q.Ranged {
		sql += " LIMIT ? OFFSET ?"
		params = append(params, q.Limit, q.Offset)
	}

	return sql, params, nil
}

// CompileCount converts an entity query to SQL counting matches. Range and
// ordering are ignored.
func (c *SQLCompiler) CompileCount(q *entityquery.Query) (string, []any, error) {
	t, where, params, err := c.compileBase(q)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s base%s", t.name, where), params, nil
}

// compileBase resolves the table and builds the WHERE clause.
func (c *SQLCompiler) compileBase(q *entityquery.Query) (table, string, []any, error) {
	if q == nil {
		return table{}, "", nil, fmt.Errorf("cannot compile nil query")
	}

	t, ok := tables[q.Kind]
	if !ok {
		return table{}, "", nil, entityquery.NewUnsupported("entity kind %q", q.Kind)
	}

	var parts []string
	var params []any

	if len(q.Bundles) > 0 {
		if t.bundle == "" {
			return table{}, "", nil, entityquery.NewUnsupported("entity kind %q has no bundles", q.Kind)
		}
		sql, p := compileIn("base."+t.bundle, stringsToAny(q.Bundles))
		parts = append(parts, sql)
		params = append(params, p...)
	}

	for _, cond := range q.Conditions {
		sql, p, err := c.compileCondition(t, cond)
		if err != nil {
			return table{}, "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, p...)
	}

	for _, fc := range q.FieldConditions {
		parts = append(parts, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM field_data f WHERE f.entity_type = ? AND f.entity_id = base.%s "+
				"AND f.field_name = ? AND f.column_name = ? AND f.value = ?)", t.id))
		params = append(params, string(q.Kind), fc.Field, fc.Column, fc.Value)
	}

	where := ""
	if len(parts) > 0 {
		where = " WHERE " + strings.Join(parts, " AND ")
	}
	return t, where, params, nil
}

// compileCondition compiles one property condition.
// CRITICAL: Values are NEVER interpolated - always use ? placeholders.
func (c *SQLCompiler) compileCondition(t table, cond entityquery.Condition) (string, []any, error) {
	if !t.properties[cond.Field] {
		return "", nil, entityquery.NewUnknownProperty(cond.Field)
	}
	column := "base." + cond.Field

	switch cond.Op {
	case entityquery.OpEq, "":
		return column + " = ?", []any{cond.Value}, nil
	case entityquery.OpLike:
		return column + ` LIKE ? ESCAPE '\'`, []any{cond.Value}, nil
	case entityquery.OpIn:
		values, ok := cond.Value.([]any)
		if !ok {
			return "", nil, entityquery.NewUnsupported("IN condition on %s needs []any, got %T", cond.Field, cond.Value)
		}
		sql, params := compileIn(column, values)
		return sql, params, nil
	default:
		return "", nil, entityquery.NewUnsupported("operator %q", cond.Op)
	}
}

// compileOrder builds the ORDER BY list, always ending with the id.
func (c *SQLCompiler) compileOrder(t table, orders []entityquery.Order) (string, error) {
	var parts []string
	for _, o := range orders {
		if !t.properties[o.Field] {
			return "", entityquery.NewUnknownProperty(o.Field)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, fmt.Sprintf("base.%s %s", o.Field, dir))
	}
	parts = append(parts, fmt.Sprintf("base.%s ASC", t.id))
	return strings.Join(parts, ", "), nil
}

// compileIn renders "column IN (?, ?)". An empty list matches nothing.
func compileIn(column string, values []any) (string, []any) {
	if len(values) == 0 {
		return "1 = 0", nil
	}
	if len(values) == 1 {
		return column + " = ?", values
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	return fmt.Sprintf("%s IN (%s)", column, placeholders), values
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
