package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wp4bd/internal/record"
)

func TestPutNode_ReplacesFieldsAndAlias(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutNode(ctx, &record.Node{NID: 1, Type: "article", Title: "v1", Path: "old-path",
		Fields: record.Fields{"body": {record.LanguageNone: {{"value": "old"}}}}}))
	require.NoError(t, s.PutNode(ctx, &record.Node{NID: 1, Type: "article", Title: "v2", Path: "new-path",
		Fields: record.Fields{"body": {record.LanguageNone: {{"value": "new"}}}}}))

	rec, err := s.LoadRecord(ctx, record.KindNode, 1)
	require.NoError(t, err)
	n := rec.(*record.Node)
	assert.Equal(t, "v2", n.Title)
	assert.Equal(t, "new-path", n.Path)
	body, _ := n.Fields.Value("body", "", "value")
	assert.Equal(t, "new", body)

	_, ok, err := s.LookupAlias(ctx, "old-path")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutAccount_ReplacesRoles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutAccount(ctx, &record.Account{UID: 5, Name: "u", Roles: []string{"editor"}}))
	require.NoError(t, s.PutAccount(ctx, &record.Account{UID: 5, Name: "u", Roles: []string{"author"}}))

	rec, err := s.LoadRecord(ctx, record.KindUser, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"author"}, rec.(*record.Account).Roles)
}

func TestPut_RejectsMissingKeys(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	assert.Error(t, s.PutNode(ctx, &record.Node{Title: "no id"}))
	assert.Error(t, s.PutAccount(ctx, &record.Account{Name: "no id"}))
	assert.Error(t, s.PutTerm(ctx, &record.Term{Name: "no id"}))
	assert.Error(t, s.PutConfig(ctx, &record.Config{}))
	assert.Error(t, s.PutNode(ctx, nil))
}
