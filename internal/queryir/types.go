package queryir

import "github.com/roach88/wp4bd/internal/wp"

// EntityKind is the entity a descriptor targets.
type EntityKind string

const (
	KindUnknown EntityKind = ""
	KindPost    EntityKind = "post"
	KindUser    EntityKind = "user"
	KindTerm    EntityKind = "term"
	KindOption  EntityKind = "option"
	KindComment EntityKind = "comment"
)

// Aggregate selects an aggregate answer instead of records.
type Aggregate int

const (
	AggregateNone Aggregate = iota
	AggregateCount
)

// Status values accepted by StatusIs.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
	StatusAny     = "any"
)

// Ordering fields understood by the executor.
const (
	OrderCreated = "created"
	OrderChanged = "changed"
	OrderTitle   = "title"
	OrderID      = "id"
	OrderAuthor  = "author"
)

// Predicate is a filter condition on a descriptor.
//
// This is a sealed interface - only types in this package implement it.
type Predicate interface {
	predicateNode()
}

// TypeIn restricts posts to one or more post types, or terms to one or
// more taxonomies.
type TypeIn struct {
	Types []string
}

func (TypeIn) predicateNode() {}

// StatusIs restricts posts by status: StatusPublish, StatusDraft or
// StatusAny.
type StatusIs struct {
	Status string
}

func (StatusIs) predicateNode() {}

// AuthorIs restricts posts to one author, by ID or by login name. ID wins
// when both are set.
type AuthorIs struct {
	ID   int64
	Name string
}

func (AuthorIs) predicateNode() {}

// Search matches a term anywhere in the title.
type Search struct {
	Term string
}

func (Search) predicateNode() {}

// FieldEquals matches a custom field value exactly.
type FieldEquals struct {
	Field string
	Value string
}

func (FieldEquals) predicateNode() {}

// Order is an ordering field and direction.
type Order struct {
	Field string
	Desc  bool
}

// DefaultOrder is newest first.
var DefaultOrder = Order{Field: OrderCreated, Desc: true}

// Descriptor is the classified intent of one data request.
type Descriptor struct {
	Kind EntityKind

	// ID selects a single record. Zero means "not a single-ID request".
	ID int64

	// Slug selects a single record by URL slug.
	Slug string

	// Name is the option name for KindOption requests.
	Name string

	Predicates []Predicate
	Order      Order

	// Limit is the page size. Zero means the executor's default page size.
	Limit int
	// NoLimit requests every matching record. Limit must be zero.
	NoLimit bool
	// Offset skips records. Ignored when Page > 1.
	Offset int
	// Page is 1-based; pages past the first override Offset.
	Page int

	Aggregate Aggregate

	// Columns is the projected column list, in request order. Empty means
	// every column.
	Columns []string

	Output wp.OutputShape
}

// New returns a descriptor for kind with the default ordering.
func New(kind EntityKind) Descriptor {
	return Descriptor{Kind: kind, Order: DefaultOrder}
}

// Single reports whether the descriptor targets exactly one record.
func (d Descriptor) Single() bool {
	return d.ID > 0 || d.Slug != ""
}

// With returns a copy of d with p appended.
func (d Descriptor) With(p Predicate) Descriptor {
	preds := make([]Predicate, 0, len(d.Predicates)+1)
	preds = append(preds, d.Predicates...)
	d.Predicates = append(preds, p)
	return d
}

// Status returns the status predicate value, or "" when unset.
func (d Descriptor) Status() string {
	for _, p := range d.Predicates {
		if s, ok := p.(StatusIs); ok {
			return s.Status
		}
	}
	return ""
}

// Types returns the types of the first TypeIn predicate.
func (d Descriptor) Types() []string {
	for _, p := range d.Predicates {
		if t, ok := p.(TypeIn); ok {
			return t.Types
		}
	}
	return nil
}
