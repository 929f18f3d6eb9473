package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wp4bd/internal/adapter"
	"github.com/roach88/wp4bd/internal/classify"
	"github.com/roach88/wp4bd/internal/entityquery"
	"github.com/roach88/wp4bd/internal/executor"
	"github.com/roach88/wp4bd/internal/record"
	"github.com/roach88/wp4bd/internal/testutil"
)

func testEnv() adapter.Env {
	return adapter.Env{BaseURL: "http://example.com", Location: time.UTC}
}

func newExecutor(t *testing.T) *executor.Executor {
	t.Helper()
	return executor.New(testutil.NewSiteStore(t), executor.WithLogger(testutil.DiscardLogger()))
}

type recorder struct {
	events []Event
}

func (r *recorder) listen(ev Event, _ *Query) {
	r.events = append(r.events, ev)
}

func newLoop(t *testing.T, exec *executor.Executor, args classify.Args, rec *recorder) *Query {
	t.Helper()
	opts := []Option{WithLogger(testutil.DiscardLogger())}
	if rec != nil {
		opts = append(opts, WithListener(rec.listen))
	}
	return New(context.Background(), exec, testEnv(), args, opts...)
}

func TestNew_DefaultListing(t *testing.T) {
	q := newLoop(t, newExecutor(t), classify.Args{}, nil)

	require.NoError(t, q.Err())
	assert.Equal(t, 3, q.PostCount())
	assert.Equal(t, 3, q.FoundPosts())
	assert.Equal(t, 1, q.MaxNumPages())
	assert.Equal(t, -1, q.CurrentPost())
	assert.Nil(t, q.Post())
	assert.True(t, q.IsHome())
	assert.False(t, q.IsArchive())
	assert.False(t, q.IsSingle())
	assert.False(t, q.Is404())
	assert.Equal(t, classify.ModeMulti, q.Mode())
}

func TestNew_Paging(t *testing.T) {
	exec := newExecutor(t)

	q := newLoop(t, exec, classify.Args{PostsPerPage: 2}, nil)
	assert.Equal(t, 2, q.PostCount())
	assert.Equal(t, 3, q.FoundPosts())
	assert.Equal(t, 2, q.MaxNumPages())

	q = newLoop(t, exec, classify.Args{PostsPerPage: 2, Paged: 2}, nil)
	require.Equal(t, 1, q.PostCount())
	assert.Equal(t, "Hello World", q.Posts()[0].PostTitle)

	q = newLoop(t, exec, classify.Args{PostsPerPage: -1}, nil)
	assert.Equal(t, 3, q.PostCount())
	assert.Equal(t, 1, q.MaxNumPages())
}

func TestNew_SingleModes(t *testing.T) {
	exec := newExecutor(t)

	tests := []struct {
		name       string
		args       classify.Args
		wantTitle  string
		wantSingle bool
		wantPage   bool
	}{
		{"post id", classify.Args{P: 2}, "Second Post", true, false},
		{"page id", classify.Args{PageID: 5}, "About Us", false, true},
		{"name via alias", classify.Args{Name: "hello-world"}, "Hello World", true, false},
		{"name via title", classify.Args{Name: "third-post"}, "Third Post", true, false},
		{"pagename", classify.Args{PageName: "about-us"}, "About Us", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newLoop(t, exec, tt.args, nil)
			require.Equal(t, 1, q.PostCount())
			assert.Equal(t, tt.wantTitle, q.Posts()[0].PostTitle)
			assert.Equal(t, tt.wantSingle, q.IsSingle())
			assert.Equal(t, tt.wantPage, q.IsPage())
			assert.False(t, q.Is404())
			assert.Equal(t, 1, q.MaxNumPages())
		})
	}
}

func TestNew_NotFound(t *testing.T) {
	exec := newExecutor(t)

	for _, args := range []classify.Args{{P: 999}, {P: 4}, {PageID: 1}, {Name: "missing"}} {
		q := newLoop(t, exec, args, nil)
		assert.True(t, q.Is404(), "%+v", args)
		assert.Empty(t, q.Posts())
		assert.False(t, q.IsSingle())
		assert.False(t, q.HavePosts())
		assert.Zero(t, q.MaxNumPages())
	}
}

func TestNew_EmptyListIsNot404(t *testing.T) {
	q := newLoop(t, newExecutor(t), classify.Args{S: "nothing matches this"}, nil)
	assert.False(t, q.Is404())
	assert.True(t, q.IsSearch())
	assert.Zero(t, q.PostCount())
}

func TestNew_Archive(t *testing.T) {
	q := newLoop(t, newExecutor(t), classify.Args{PostType: []string{"page"}}, nil)
	assert.True(t, q.IsArchive())
	assert.False(t, q.IsHome())
	assert.Equal(t, 2, q.PostCount())
}

func TestCursorInvariant(t *testing.T) {
	exec := newExecutor(t)

	for k := 0; k <= 3; k++ {
		q := newLoop(t, exec, classify.Args{}, nil)
		for i := 0; i < k; i++ {
			require.True(t, q.ThePost())
		}
		assert.Equal(t, k-1, q.CurrentPost())
		assert.Equal(t, q.CurrentPost()+1 < q.PostCount(), q.HavePosts())
	}
}

func TestThePost_StopsAtEnd(t *testing.T) {
	q := newLoop(t, newExecutor(t), classify.Args{}, nil)

	for q.HavePosts() {
		q.ThePost()
	}
	assert.Equal(t, 2, q.CurrentPost())
	assert.False(t, q.ThePost())
	assert.Equal(t, 2, q.CurrentPost())
	assert.Equal(t, "Hello World", q.Post().PostTitle)
}

func TestEvents_FullPass(t *testing.T) {
	rec := &recorder{}
	q := newLoop(t, newExecutor(t), classify.Args{}, rec)

	var titles []string
	for q.HavePosts() {
		q.ThePost()
		titles = append(titles, q.Post().PostTitle)
	}

	assert.Equal(t, []string{"Third Post", "Second Post", "Hello World"}, titles)
	assert.Equal(t, []Event{EventLoopStart, EventThePost, EventThePost, EventThePost, EventLoopEnd}, rec.events)
	assert.False(t, q.InTheLoop())
}

func TestEvents_LoopEndFiresOnce(t *testing.T) {
	rec := &recorder{}
	q := newLoop(t, newExecutor(t), classify.Args{P: 1}, rec)

	q.ThePost()
	for i := 0; i < 5; i++ {
		assert.False(t, q.HavePosts())
	}
	assert.Equal(t, []Event{EventLoopStart, EventThePost, EventLoopEnd}, rec.events)
}

func TestEvents_EmptyLoopIsSilent(t *testing.T) {
	rec := &recorder{}
	q := newLoop(t, newExecutor(t), classify.Args{P: 999}, rec)

	assert.False(t, q.HavePosts())
	assert.False(t, q.ThePost())
	assert.Empty(t, rec.events)
}

func TestRewind_StartsNewPass(t *testing.T) {
	rec := &recorder{}
	q := newLoop(t, newExecutor(t), classify.Args{PostsPerPage: 1}, rec)

	for q.HavePosts() {
		q.ThePost()
	}
	q.Rewind()
	assert.Equal(t, -1, q.CurrentPost())
	assert.Nil(t, q.Post())

	for q.HavePosts() {
		q.ThePost()
	}
	assert.Equal(t, []Event{
		EventLoopStart, EventThePost, EventLoopEnd,
		EventLoopStart, EventThePost, EventLoopEnd,
	}, rec.events)
}

func TestReset(t *testing.T) {
	rec := &recorder{}
	q := newLoop(t, newExecutor(t), classify.Args{}, rec)

	for q.HavePosts() {
		q.ThePost()
	}
	q.Reset()
	assert.Equal(t, 0, q.CurrentPost())
	assert.Equal(t, "Third Post", q.Post().PostTitle)
	assert.True(t, q.HavePosts())

	q.ThePost()
	q.ThePost()
	assert.False(t, q.HavePosts())

	ends := 0
	for _, ev := range rec.events {
		if ev == EventLoopEnd {
			ends++
		}
	}
	assert.Equal(t, 2, ends)
}

func TestReset_EmptyIsNoop(t *testing.T) {
	q := newLoop(t, newExecutor(t), classify.Args{P: 999}, nil)
	q.Reset()
	assert.Equal(t, -1, q.CurrentPost())
	assert.Nil(t, q.Post())
	assert.True(t, q.Is404())
}

type brokenBackend struct{}

var errBroken = errors.New("entity query unavailable")

func (brokenBackend) LoadRecord(context.Context, record.Kind, int64) (record.Record, error) {
	return nil, errBroken
}

func (brokenBackend) LoadRecords(context.Context, record.Kind, []int64) (map[int64]record.Record, error) {
	return nil, errBroken
}

func (brokenBackend) Execute(context.Context, *entityquery.Query) (entityquery.Matches, error) {
	return nil, errBroken
}

func (brokenBackend) Count(context.Context, *entityquery.Query) (int, error) {
	return 0, errBroken
}

func (brokenBackend) FieldColumns(context.Context, string) ([]string, error) {
	return nil, errBroken
}

func (brokenBackend) LookupAlias(context.Context, string) (string, bool, error) {
	return "", false, errBroken
}

func TestNew_CollaboratorFailure(t *testing.T) {
	exec := executor.New(brokenBackend{}, executor.WithLogger(testutil.DiscardLogger()))
	q := newLoop(t, exec, classify.Args{}, nil)

	assert.ErrorIs(t, q.Err(), errBroken)
	assert.Empty(t, q.Posts())
	assert.False(t, q.HavePosts())

	q = newLoop(t, nil, classify.Args{}, nil)
	assert.ErrorIs(t, q.Err(), executor.ErrNoBackend)
}

func TestConditionals(t *testing.T) {
	exec := newExecutor(t)

	assert.Equal(t, []string{"home"}, newLoop(t, exec, classify.Args{}, nil).Conditionals())
	assert.Equal(t, []string{"single"}, newLoop(t, exec, classify.Args{P: 1}, nil).Conditionals())
	assert.Equal(t, []string{"page"}, newLoop(t, exec, classify.Args{PageID: 5}, nil).Conditionals())
	assert.Equal(t, []string{"404"}, newLoop(t, exec, classify.Args{P: 999}, nil).Conditionals())
	assert.Contains(t, newLoop(t, exec, classify.Args{S: "Post"}, nil).Conditionals(), "search")
}
