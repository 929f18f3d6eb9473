package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_DefaultOrder(t *testing.T) {
	d := New(KindPost)
	assert.Equal(t, KindPost, d.Kind)
	assert.Equal(t, OrderCreated, d.Order.Field)
	assert.True(t, d.Order.Desc)
	assert.Equal(t, 0, d.Limit)
	assert.False(t, d.NoLimit, "zero limit must not mean unlimited")
}

func TestDescriptor_Single(t *testing.T) {
	assert.False(t, New(KindPost).Single())

	byID := New(KindPost)
	byID.ID = 4
	assert.True(t, byID.Single())

	bySlug := New(KindPost)
	bySlug.Slug = "hello-world"
	assert.True(t, bySlug.Single())
}

func TestDescriptor_WithDoesNotAlias(t *testing.T) {
	base := New(KindPost).With(TypeIn{Types: []string{"post"}})
	a := base.With(StatusIs{Status: StatusPublish})
	b := base.With(StatusIs{Status: StatusDraft})

	assert.Len(t, base.Predicates, 1)
	assert.Equal(t, StatusPublish, a.Status())
	assert.Equal(t, StatusDraft, b.Status())
}

func TestDescriptor_Accessors(t *testing.T) {
	d := New(KindPost)
	assert.Equal(t, "", d.Status())
	assert.Nil(t, d.Types())

	d = d.With(TypeIn{Types: []string{"post", "page"}}).With(StatusIs{Status: StatusAny})
	assert.Equal(t, []string{"post", "page"}, d.Types())
	assert.Equal(t, StatusAny, d.Status())
}

func TestPredicate_Sealed(t *testing.T) {
	preds := []Predicate{
		TypeIn{Types: []string{"post"}},
		StatusIs{Status: StatusPublish},
		AuthorIs{ID: 1},
		Search{Term: "hello"},
		FieldEquals{Field: "color", Value: "red"},
	}

	for _, p := range preds {
		switch p.(type) {
		case TypeIn, StatusIs, AuthorIs, Search, FieldEquals:
		default:
			t.Fatalf("unexpected predicate %T", p)
		}
	}
}
