package entityquery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/wp4bd/internal/record"
)

func TestQuery_Builder(t *testing.T) {
	q := New(record.KindNode).
		Bundle("article").
		Bundle("page").
		Property("status", 1, OpEq).
		Field(FieldCondition{Field: "color", Column: "value", Value: "red"}).
		OrderBy("created", true).
		Range(10, 5)

	assert.Equal(t, record.KindNode, q.Kind)
	assert.Equal(t, []string{"article", "page"}, q.Bundles)
	assert.Equal(t, []Condition{{Field: "status", Op: OpEq, Value: 1}}, q.Conditions)
	assert.Len(t, q.FieldConditions, 1)
	assert.Equal(t, []Order{{Field: "created", Desc: true}}, q.Orders)
	assert.True(t, q.Ranged)
	assert.Equal(t, 10, q.Offset)
	assert.Equal(t, 5, q.Limit)
}

func TestQuery_Unranged(t *testing.T) {
	q := New(record.KindNode).Property("status", 1, OpEq).OrderBy("title", false).Range(0, 10)
	c := q.Unranged()

	assert.False(t, c.Ranged)
	assert.Nil(t, c.Orders)
	assert.Equal(t, q.Conditions, c.Conditions)
	assert.True(t, q.Ranged, "original untouched")
}

func TestMatches_IDs(t *testing.T) {
	m := Matches{record.KindNode: {3, 1, 2}}
	assert.Equal(t, []int64{3, 1, 2}, m.IDs(record.KindNode))
	assert.NotNil(t, m.IDs(record.KindUser))
	assert.Empty(t, m.IDs(record.KindUser))

	var empty Matches
	assert.Empty(t, empty.IDs(record.KindNode))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now`, EscapeLike("50% off_now"))
	assert.Equal(t, `a\\b`, EscapeLike(`a\b`))
	assert.Equal(t, `%hello%`, Contains("hello"))
}

func TestError(t *testing.T) {
	err := fmt.Errorf("execute: %w", NewUnknownField("color"))
	assert.True(t, IsUnknownField(err))
	assert.Equal(t, "execute: UNKNOWN_FIELD: no such field (field=color)", err.Error())

	assert.False(t, IsUnknownField(NewUnknownProperty("x")))
	assert.False(t, IsUnknownField(fmt.Errorf("plain")))
	assert.Equal(t, "UNSUPPORTED: kind config", NewUnsupported("kind %s", "config").Error())
}
