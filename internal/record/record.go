package record

// Kind identifies the entity type a record belongs to.
type Kind string

const (
	KindNode   Kind = "node"
	KindUser   Kind = "user"
	KindTerm   Kind = "taxonomy_term"
	KindConfig Kind = "config"
)

// NodePublished is the status flag of a published node.
const NodePublished = 1

// Comment settings stored on a node.
const (
	CommentHidden = 0
	CommentClosed = 1
	CommentOpen   = 2
)

// Record is a native record returned by the target store.
//
// This is a sealed interface - only types in this package implement it.
type Record interface {
	Kind() Kind
	// Key returns the primary identifier, or 0 when it is missing.
	Key() int64
	record()
}

// Node is a content item.
type Node struct {
	NID      int64
	UID      int64
	Type     string
	Title    string
	Status   int
	Comment  int
	Promote  int
	Sticky   int
	Language string

	// Created and Changed are unix epochs. Nil when the store has no value.
	Created *int64
	Changed *int64

	// Path is the explicit URL alias, without the leading slash.
	Path string

	CommentCount int
	Fields       Fields
}

func (*Node) Kind() Kind { return KindNode }
func (n *Node) Key() int64 {
	if n == nil {
		return 0
	}
	return n.NID
}
func (*Node) record() {}

// Published reports whether the node carries the published status flag.
func (n *Node) Published() bool {
	return n != nil && n.Status == NodePublished
}

// Account is a user account.
type Account struct {
	UID         int64
	Name        string
	Mail        string
	DisplayName string
	Status      int
	Created     *int64
	Roles       []string
}

func (*Account) Kind() Kind { return KindUser }
func (a *Account) Key() int64 {
	if a == nil {
		return 0
	}
	return a.UID
}
func (*Account) record() {}

// Term is a taxonomy term.
type Term struct {
	TID         int64
	Vocabulary  string
	Name        string
	MachineName string
	Parent      int64
	Weight      int
	Count       int
	Fields      Fields
}

func (*Term) Kind() Kind { return KindTerm }
func (t *Term) Key() int64 {
	if t == nil {
		return 0
	}
	return t.TID
}
func (*Term) record() {}

// Config is a named configuration blob, e.g. "system.core".
type Config struct {
	Name string
	Data map[string]any
}

func (*Config) Kind() Kind { return KindConfig }

// Key always returns 0: configuration blobs are keyed by name.
func (*Config) Key() int64 { return 0 }
func (*Config) record()    {}

// Get returns the value stored under key.
func (c *Config) Get(key string) (any, bool) {
	if c == nil || c.Data == nil {
		return nil, false
	}
	v, ok := c.Data[key]
	return v, ok
}

// Epoch returns a pointer to v, for populating optional timestamps.
func Epoch(v int64) *int64 {
	return &v
}
