package entityquery

import (
	"strings"

	"github.com/roach88/wp4bd/internal/record"
)

// Operator is a property comparison.
type Operator string

const (
	OpEq   Operator = "="
	OpIn   Operator = "IN"
	OpLike Operator = "LIKE"
)

// Condition compares a base property. Value is a []any for OpIn.
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// FieldCondition matches a column of a free-form field by equality.
type FieldCondition struct {
	Field  string
	Column string
	Value  string
}

// Order sorts by a base property.
type Order struct {
	Field string
	Desc  bool
}

// Query is an entity query under construction.
type Query struct {
	Kind            record.Kind
	Bundles         []string
	Conditions      []Condition
	FieldConditions []FieldCondition
	Orders          []Order

	Offset int
	Limit  int
	// Ranged is false until Range is called; an unranged query returns
	// every match.
	Ranged bool
}

// New starts a query against kind.
func New(kind record.Kind) *Query {
	return &Query{Kind: kind}
}

// Bundle restricts the query to one or more bundles.
func (q *Query) Bundle(bundles ...string) *Query {
	q.Bundles = append(q.Bundles, bundles...)
	return q
}

// Property adds a base property condition.
func (q *Query) Property(field string, value any, op Operator) *Query {
	q.Conditions = append(q.Conditions, Condition{Field: field, Op: op, Value: value})
	return q
}

// Field adds a field condition.
func (q *Query) Field(cond FieldCondition) *Query {
	q.FieldConditions = append(q.FieldConditions, cond)
	return q
}

// Range limits the result window.
func (q *Query) Range(offset, limit int) *Query {
	q.Offset = offset
	q.Limit = limit
	q.Ranged = true
	return q
}

// OrderBy appends a sort key.
func (q *Query) OrderBy(field string, desc bool) *Query {
	q.Orders = append(q.Orders, Order{Field: field, Desc: desc})
	return q
}

// Unranged returns a copy without range or ordering, for counting.
func (q *Query) Unranged() *Query {
	c := *q
	c.Orders = nil
	c.Offset, c.Limit, c.Ranged = 0, 0, false
	return &c
}

// Matches groups matched identifiers by entity kind, in result order.
type Matches map[record.Kind][]int64

// IDs returns the identifiers matched for kind. Never nil.
func (m Matches) IDs(kind record.Kind) []int64 {
	if ids, ok := m[kind]; ok && ids != nil {
		return ids
	}
	return []int64{}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so s matches literally. Patterns built
// from the result must be compiled with ESCAPE '\'.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Contains builds a LIKE pattern matching s anywhere.
func Contains(s string) string {
	return "%" + EscapeLike(s) + "%"
}
