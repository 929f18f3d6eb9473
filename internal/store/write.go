package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/wp4bd/internal/record"
)

// PutNode inserts or replaces a node with its fields and alias.
func (s *Store) PutNode(ctx context.Context, n *record.Node) error {
	if n == nil || n.NID == 0 {
		return fmt.Errorf("put node: missing nid")
	}
	lang := n.Language
	if lang == "" {
		lang = record.LanguageNone
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO node
			(nid, uid, type, title, status, comment, promote, sticky, langcode, created, changed, comment_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, n.NID, n.UID, n.Type, n.Title, n.Status, n.Comment, n.Promote, n.Sticky, lang,
			epochArg(n.Created), epochArg(n.Changed), n.CommentCount)
		if err != nil {
			return fmt.Errorf("put node %d: %w", n.NID, err)
		}

		if err := writeFields(ctx, tx, record.KindNode, n.NID, n.Fields); err != nil {
			return fmt.Errorf("put node %d: %w", n.NID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM url_alias WHERE source = ?`, record.NodeSource(n.NID)); err != nil {
			return fmt.Errorf("put node %d: clear alias: %w", n.NID, err)
		}
		if alias := strings.Trim(n.Path, "/"); alias != "" {
			if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO url_alias (alias, source) VALUES (?, ?)`,
				alias, record.NodeSource(n.NID)); err != nil {
				return fmt.Errorf("put node %d: alias: %w", n.NID, err)
			}
		}
		return nil
	})
}

// PutAccount inserts or replaces an account and its roles.
func (s *Store) PutAccount(ctx context.Context, a *record.Account) error {
	if a == nil || a.UID == 0 {
		return fmt.Errorf("put account: missing uid")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO users (uid, name, mail, display_name, status, created)
			VALUES (?, ?, ?, ?, ?, ?)
		`, a.UID, a.Name, a.Mail, a.DisplayName, a.Status, epochArg(a.Created))
		if err != nil {
			return fmt.Errorf("put account %d: %w", a.UID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM users_roles WHERE uid = ?`, a.UID); err != nil {
			return fmt.Errorf("put account %d: clear roles: %w", a.UID, err)
		}
		for _, role := range a.Roles {
			if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO users_roles (uid, role) VALUES (?, ?)`,
				a.UID, role); err != nil {
				return fmt.Errorf("put account %d: role %s: %w", a.UID, role, err)
			}
		}
		return nil
	})
}

// PutTerm inserts or replaces a taxonomy term and its fields.
func (s *Store) PutTerm(ctx context.Context, t *record.Term) error {
	if t == nil || t.TID == 0 {
		return fmt.Errorf("put term: missing tid")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO taxonomy_term_data (tid, vocabulary, name, machine_name, parent, weight)
			VALUES (?, ?, ?, ?, ?, ?)
		`, t.TID, t.Vocabulary, t.Name, t.MachineName, t.Parent, t.Weight)
		if err != nil {
			return fmt.Errorf("put term %d: %w", t.TID, err)
		}
		if err := writeFields(ctx, tx, record.KindTerm, t.TID, t.Fields); err != nil {
			return fmt.Errorf("put term %d: %w", t.TID, err)
		}
		return nil
	})
}

// TagNode links a node to a term.
func (s *Store) TagNode(ctx context.Context, nid, tid int64) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO taxonomy_index (tid, nid) VALUES (?, ?)`, tid, nid)
	if err != nil {
		return fmt.Errorf("tag node %d with term %d: %w", nid, tid, err)
	}
	return nil
}

// PutConfig inserts or replaces a configuration blob.
func (s *Store) PutConfig(ctx context.Context, c *record.Config) error {
	if c == nil || c.Name == "" {
		return fmt.Errorf("put config: missing name")
	}
	data := c.Data
	if data == nil {
		data = map[string]any{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("put config %s: %w", c.Name, err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO config (name, data) VALUES (?, ?)`,
		c.Name, string(encoded)); err != nil {
		return fmt.Errorf("put config %s: %w", c.Name, err)
	}
	return nil
}

func writeFields(ctx context.Context, tx *sql.Tx, kind record.Kind, id int64, fields record.Fields) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM field_data WHERE entity_type = ? AND entity_id = ?`,
		string(kind), id); err != nil {
		return fmt.Errorf("clear fields: %w", err)
	}
	for name, byLang := range fields {
		for lang, items := range byLang {
			for delta, item := range items {
				for column, value := range item {
					_, err := tx.ExecContext(ctx, `
						INSERT INTO field_data (entity_type, entity_id, field_name, langcode, delta, column_name, value)
						VALUES (?, ?, ?, ?, ?, ?, ?)
					`, string(kind), id, name, lang, delta, column, value)
					if err != nil {
						return fmt.Errorf("write field %s: %w", name, err)
					}
				}
			}
		}
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func epochArg(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
