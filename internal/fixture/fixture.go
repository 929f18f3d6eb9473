package fixture

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/wp4bd/internal/record"
)

// Fixture is a set of records to seed.
type Fixture struct {
	// Name identifies the fixture in logs and errors.
	Name string `yaml:"name"`

	// Description is free text.
	Description string `yaml:"description,omitempty"`

	Nodes    []Node                    `yaml:"nodes,omitempty"`
	Accounts []Account                 `yaml:"accounts,omitempty"`
	Terms    []Term                    `yaml:"terms,omitempty"`
	Tags     []Tag                     `yaml:"tags,omitempty"`
	Config   map[string]map[string]any `yaml:"config,omitempty"`
}

// Node is a fixture node.
type Node struct {
	NID          int64         `yaml:"nid"`
	UID          int64         `yaml:"uid"`
	Type         string        `yaml:"type"`
	Title        string        `yaml:"title"`
	Status       int           `yaml:"status"`
	Comment      int           `yaml:"comment,omitempty"`
	Promote      int           `yaml:"promote,omitempty"`
	Sticky       int           `yaml:"sticky,omitempty"`
	Language     string        `yaml:"language,omitempty"`
	Created      *int64        `yaml:"created,omitempty"`
	Changed      *int64        `yaml:"changed,omitempty"`
	Path         string        `yaml:"path,omitempty"`
	CommentCount int           `yaml:"comment_count,omitempty"`
	Fields       record.Fields `yaml:"fields,omitempty"`
}

// Account is a fixture user account.
type Account struct {
	UID         int64    `yaml:"uid"`
	Name        string   `yaml:"name"`
	Mail        string   `yaml:"mail,omitempty"`
	DisplayName string   `yaml:"display_name,omitempty"`
	Status      int      `yaml:"status,omitempty"`
	Created     *int64   `yaml:"created,omitempty"`
	Roles       []string `yaml:"roles,omitempty"`
}

// Term is a fixture taxonomy term.
type Term struct {
	TID         int64         `yaml:"tid"`
	Vocabulary  string        `yaml:"vocabulary"`
	Name        string        `yaml:"name"`
	MachineName string        `yaml:"machine_name,omitempty"`
	Parent      int64         `yaml:"parent,omitempty"`
	Weight      int           `yaml:"weight,omitempty"`
	Fields      record.Fields `yaml:"fields,omitempty"`
}

// Tag links a node to a term.
type Tag struct {
	NID int64 `yaml:"nid"`
	TID int64 `yaml:"tid"`
}

// Record converts the fixture node.
func (n Node) Record() *record.Node {
	return &record.Node{
		NID: n.NID, UID: n.UID, Type: n.Type, Title: n.Title, Status: n.Status,
		Comment: n.Comment, Promote: n.Promote, Sticky: n.Sticky, Language: n.Language,
		Created: n.Created, Changed: n.Changed, Path: n.Path, CommentCount: n.CommentCount,
		Fields: n.Fields,
	}
}

// Record converts the fixture account.
func (a Account) Record() *record.Account {
	return &record.Account{
		UID: a.UID, Name: a.Name, Mail: a.Mail, DisplayName: a.DisplayName,
		Status: a.Status, Created: a.Created, Roles: a.Roles,
	}
}

// Record converts the fixture term.
func (t Term) Record() *record.Term {
	return &record.Term{
		TID: t.TID, Vocabulary: t.Vocabulary, Name: t.Name, MachineName: t.MachineName,
		Parent: t.Parent, Weight: t.Weight, Fields: t.Fields,
	}
}

// Load reads and parses a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return Parse(data)
}

// Parse parses fixture YAML. Unknown fields are rejected.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateFixture(&f); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &f, nil
}

// validateFixture checks identifiers are present and unique.
func validateFixture(f *Fixture) error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}

	nids := make(map[int64]bool, len(f.Nodes))
	for i, n := range f.Nodes {
		if n.NID <= 0 {
			return fmt.Errorf("nodes[%d]: nid must be positive", i)
		}
		if nids[n.NID] {
			return fmt.Errorf("nodes[%d]: duplicate nid %d", i, n.NID)
		}
		if n.Type == "" {
			return fmt.Errorf("nodes[%d]: type is required", i)
		}
		nids[n.NID] = true
	}

	uids := make(map[int64]bool, len(f.Accounts))
	for i, a := range f.Accounts {
		if a.UID <= 0 {
			return fmt.Errorf("accounts[%d]: uid must be positive", i)
		}
		if uids[a.UID] {
			return fmt.Errorf("accounts[%d]: duplicate uid %d", i, a.UID)
		}
		if a.Name == "" {
			return fmt.Errorf("accounts[%d]: name is required", i)
		}
		uids[a.UID] = true
	}

	tids := make(map[int64]bool, len(f.Terms))
	for i, t := range f.Terms {
		if t.TID <= 0 {
			return fmt.Errorf("terms[%d]: tid must be positive", i)
		}
		if tids[t.TID] {
			return fmt.Errorf("terms[%d]: duplicate tid %d", i, t.TID)
		}
		if t.Vocabulary == "" {
			return fmt.Errorf("terms[%d]: vocabulary is required", i)
		}
		tids[t.TID] = true
	}

	for i, tag := range f.Tags {
		if !nids[tag.NID] {
			return fmt.Errorf("tags[%d]: unknown nid %d", i, tag.NID)
		}
		if !tids[tag.TID] {
			return fmt.Errorf("tags[%d]: unknown tid %d", i, tag.TID)
		}
	}
	return nil
}

// Writer is the store surface Apply needs.
type Writer interface {
	PutNode(ctx context.Context, n *record.Node) error
	PutAccount(ctx context.Context, a *record.Account) error
	PutTerm(ctx context.Context, t *record.Term) error
	TagNode(ctx context.Context, nid, tid int64) error
	PutConfig(ctx context.Context, c *record.Config) error
}

// Stats counts what Apply wrote.
type Stats struct {
	Nodes    int `json:"nodes"`
	Accounts int `json:"accounts"`
	Terms    int `json:"terms"`
	Tags     int `json:"tags"`
	Config   int `json:"config"`
}

// Apply writes every record of f. Existing records with the same
// identifiers are replaced.
func (f *Fixture) Apply(ctx context.Context, w Writer) (Stats, error) {
	var stats Stats

	for _, a := range f.Accounts {
		if err := w.PutAccount(ctx, a.Record()); err != nil {
			return stats, fmt.Errorf("fixture %s: %w", f.Name, err)
		}
		stats.Accounts++
	}
	for _, t := range f.Terms {
		if err := w.PutTerm(ctx, t.Record()); err != nil {
			return stats, fmt.Errorf("fixture %s: %w", f.Name, err)
		}
		stats.Terms++
	}
	for _, n := range f.Nodes {
		if err := w.PutNode(ctx, n.Record()); err != nil {
			return stats, fmt.Errorf("fixture %s: %w", f.Name, err)
		}
		stats.Nodes++
	}
	for _, tag := range f.Tags {
		if err := w.TagNode(ctx, tag.NID, tag.TID); err != nil {
			return stats, fmt.Errorf("fixture %s: %w", f.Name, err)
		}
		stats.Tags++
	}

	names := make([]string, 0, len(f.Config))
	for name := range f.Config {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := w.PutConfig(ctx, &record.Config{Name: name, Data: f.Config[name]}); err != nil {
			return stats, fmt.Errorf("fixture %s: %w", f.Name, err)
		}
		stats.Config++
	}
	return stats, nil
}
