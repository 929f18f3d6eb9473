package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/wp4bd/internal/entityquery"
	"github.com/roach88/wp4bd/internal/record"
)

// LoadRecord loads one record by identifier.
// Returns (nil, nil) when no such record exists.
func (s *Store) LoadRecord(ctx context.Context, kind record.Kind, id int64) (record.Record, error) {
	recs, err := s.LoadRecords(ctx, kind, []int64{id})
	if err != nil {
		return nil, err
	}
	rec, ok := recs[id]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

// LoadRecords bulk-loads records by identifier. Missing ids are absent from
// the returned map.
func (s *Store) LoadRecords(ctx context.Context, kind record.Kind, ids []int64) (map[int64]record.Record, error) {
	out := make(map[int64]record.Record, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	switch kind {
	case record.KindNode:
		return out, s.loadNodes(ctx, ids, out)
	case record.KindUser:
		return out, s.loadAccounts(ctx, ids, out)
	case record.KindTerm:
		return out, s.loadTerms(ctx, ids, out)
	default:
		return nil, entityquery.NewUnsupported("cannot load records of kind %q", kind)
	}
}

func (s *Store) loadNodes(ctx context.Context, ids []int64, out map[int64]record.Record) error {
	in, args := inList(ids)
	rows, err := s.db.QueryContext(ctx, `
		SELECT n.nid, n.uid, n.type, n.title, n.status, n.comment, n.promote, n.sticky,
		       n.langcode, n.created, n.changed, n.comment_count,
		       COALESCE((SELECT a.alias FROM url_alias a WHERE a.source = 'node/' || n.nid ORDER BY a.alias LIMIT 1), '')
		FROM node n
		WHERE n.nid IN (`+in+`)
		ORDER BY n.nid ASC
	`, args...)
	if err != nil {
		return fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	nodes := make(map[int64]*record.Node, len(ids))
	for rows.Next() {
		var n record.Node
		var created, changed sql.NullInt64
		if err := rows.Scan(&n.NID, &n.UID, &n.Type, &n.Title, &n.Status, &n.Comment, &n.Promote,
			&n.Sticky, &n.Language, &created, &changed, &n.CommentCount, &n.Path); err != nil {
			return fmt.Errorf("scan node: %w", err)
		}
		n.Created = nullEpoch(created)
		n.Changed = nullEpoch(changed)
		n.Fields = record.Fields{}
		nodes[n.NID] = &n
		out[n.NID] = &n
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate nodes: %w", err)
	}

	return s.attachFields(ctx, record.KindNode, ids, func(id int64) record.Fields {
		if n, ok := nodes[id]; ok {
			return n.Fields
		}
		return nil
	})
}

func (s *Store) loadAccounts(ctx context.Context, ids []int64, out map[int64]record.Record) error {
	in, args := inList(ids)
	rows, err := s.db.QueryContext(ctx, `
		SELECT uid, name, mail, display_name, status, created
		FROM users
		WHERE uid IN (`+in+`)
		ORDER BY uid ASC
	`, args...)
	if err != nil {
		return fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	accounts := make(map[int64]*record.Account, len(ids))
	for rows.Next() {
		var a record.Account
		var created sql.NullInt64
		if err := rows.Scan(&a.UID, &a.Name, &a.Mail, &a.DisplayName, &a.Status, &created); err != nil {
			return fmt.Errorf("scan user: %w", err)
		}
		a.Created = nullEpoch(created)
		accounts[a.UID] = &a
		out[a.UID] = &a
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate users: %w", err)
	}

	roleRows, err := s.db.QueryContext(ctx, `
		SELECT uid, role FROM users_roles
		WHERE uid IN (`+in+`)
		ORDER BY uid ASC, role ASC
	`, args...)
	if err != nil {
		return fmt.Errorf("query roles: %w", err)
	}
	defer roleRows.Close()

	for roleRows.Next() {
		var uid int64
		var role string
		if err := roleRows.Scan(&uid, &role); err != nil {
			return fmt.Errorf("scan role: %w", err)
		}
		if a, ok := accounts[uid]; ok {
			a.Roles = append(a.Roles, role)
		}
	}
	if err := roleRows.Err(); err != nil {
		return fmt.Errorf("iterate roles: %w", err)
	}
	return nil
}

func (s *Store) loadTerms(ctx context.Context, ids []int64, out map[int64]record.Record) error {
	in, args := inList(ids)
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.tid, t.vocabulary, t.name, t.machine_name, t.parent, t.weight,
		       (SELECT COUNT(*) FROM taxonomy_index i WHERE i.tid = t.tid)
		FROM taxonomy_term_data t
		WHERE t.tid IN (`+in+`)
		ORDER BY t.tid ASC
	`, args...)
	if err != nil {
		return fmt.Errorf("query terms: %w", err)
	}
	defer rows.Close()

	terms := make(map[int64]*record.Term, len(ids))
	for rows.Next() {
		var t record.Term
		if err := rows.Scan(&t.TID, &t.Vocabulary, &t.Name, &t.MachineName, &t.Parent, &t.Weight, &t.Count); err != nil {
			return fmt.Errorf("scan term: %w", err)
		}
		t.Fields = record.Fields{}
		terms[t.TID] = &t
		out[t.TID] = &t
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate terms: %w", err)
	}

	return s.attachFields(ctx, record.KindTerm, ids, func(id int64) record.Fields {
		if t, ok := terms[id]; ok {
			return t.Fields
		}
		return nil
	})
}

// attachFields loads field_data rows for ids and stores them via target.
func (s *Store) attachFields(ctx context.Context, kind record.Kind, ids []int64, target func(int64) record.Fields) error {
	in, args := inList(ids)
	rows, err := s.db.QueryContext(ctx, `
		SELECT entity_id, field_name, langcode, delta, column_name, value
		FROM field_data
		WHERE entity_type = ? AND entity_id IN (`+in+`)
		ORDER BY entity_id ASC, field_name ASC, langcode ASC, delta ASC, column_name ASC
	`, append([]any{string(kind)}, args...)...)
	if err != nil {
		return fmt.Errorf("query fields: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var field, lang, column, value string
		var delta int
		if err := rows.Scan(&id, &field, &lang, &delta, &column, &value); err != nil {
			return fmt.Errorf("scan field: %w", err)
		}
		fields := target(id)
		if fields == nil {
			continue
		}
		byLang, ok := fields[field]
		if !ok {
			byLang = make(map[string][]record.Item)
			fields[field] = byLang
		}
		for len(byLang[lang]) <= delta {
			byLang[lang] = append(byLang[lang], record.Item{})
		}
		byLang[lang][delta][column] = value
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate fields: %w", err)
	}
	return nil
}

// Execute runs an entity query and returns the matched ids in order.
func (s *Store) Execute(ctx context.Context, q *entityquery.Query) (entityquery.Matches, error) {
	sqlStr, params, err := s.compiler.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, params...)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return entityquery.Matches{q.Kind: ids}, nil
}

// Count returns the number of records matching q, ignoring its range.
func (s *Store) Count(ctx context.Context, q *entityquery.Query) (int, error) {
	sqlStr, params, err := s.compiler.CompileCount(q)
	if err != nil {
		return 0, fmt.Errorf("compile count: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, sqlStr, params...).Scan(&n); err != nil {
		return 0, fmt.Errorf("execute count: %w", err)
	}
	return n, nil
}

// FieldColumns returns the stored columns of a field, or an unknown-field
// error when the field has no values at all.
func (s *Store) FieldColumns(ctx context.Context, field string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT column_name FROM field_data
		WHERE field_name = ?
		ORDER BY column_name ASC
	`, field)
	if err != nil {
		return nil, fmt.Errorf("query field columns: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan field column: %w", err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate field columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, entityquery.NewUnknownField(field)
	}
	return columns, nil
}

// LookupAlias resolves a path alias to its internal path, e.g.
// "about-us" -> "node/4".
func (s *Store) LookupAlias(ctx context.Context, alias string) (string, bool, error) {
	var source string
	err := s.db.QueryRowContext(ctx, `SELECT source FROM url_alias WHERE alias = ?`,
		strings.Trim(alias, "/")).Scan(&source)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup alias: %w", err)
	}
	return source, true, nil
}

// LoadConfig loads a configuration blob by name.
// Returns (nil, nil) when it does not exist.
func (s *Store) LoadConfig(ctx context.Context, name string) (*record.Config, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM config WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", name, err)
	}

	cfg := &record.Config{Name: name, Data: map[string]any{}}
	if err := json.Unmarshal([]byte(data), &cfg.Data); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", name, err)
	}
	return cfg, nil
}

// Config reads one configuration value. Read failures are logged and
// reported as absent.
func (s *Store) Config(ctx context.Context, namespace, key string) (any, bool) {
	cfg, err := s.LoadConfig(ctx, namespace)
	if err != nil {
		s.logger.Debug("config read failed", "namespace", namespace, "key", key, "error", err)
		return nil, false
	}
	return cfg.Get(key)
}

func inList(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}

func nullEpoch(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return record.Epoch(v.Int64)
}
