package loop

import (
	"context"
	"log/slog"

	"github.com/roach88/wp4bd/internal/adapter"
	"github.com/roach88/wp4bd/internal/classify"
	"github.com/roach88/wp4bd/internal/executor"
	"github.com/roach88/wp4bd/internal/record"
	"github.com/roach88/wp4bd/internal/wp"
)

// Event is a loop lifecycle notification.
type Event string

const (
	EventLoopStart Event = "loop_start"
	EventThePost   Event = "the_post"
	EventLoopEnd   Event = "loop_end"
)

// Listener receives lifecycle events. It runs synchronously inside the
// call that triggered it.
type Listener func(event Event, q *Query)

// Query is one loop over a resolved post list. It is not safe for
// concurrent use; create one per request.
type Query struct {
	args classify.Args
	mode classify.Mode

	posts       []*wp.Post
	foundPosts  int
	maxNumPages int

	current   int
	post      *wp.Post
	inTheLoop bool

	// per-pass latches
	started bool
	ended   bool

	isSingle  bool
	isPage    bool
	isHome    bool
	isArchive bool
	isSearch  bool
	is404     bool

	err error

	listeners []Listener
	logger    *slog.Logger
}

// Option configures a Query.
type Option func(*Query)

// WithListener registers a lifecycle listener. Listeners run in
// registration order.
func WithListener(l Listener) Option {
	return func(q *Query) {
		if l != nil {
			q.listeners = append(q.listeners, l)
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(q *Query) {
		if l != nil {
			q.logger = l
		}
	}
}

// New resolves args through exec and returns a loop positioned before the
// first post. A nil executor yields an empty loop with Err set.
func New(ctx context.Context, exec *executor.Executor, env adapter.Env, args classify.Args, opts ...Option) *Query {
	q := &Query{
		args:    args,
		mode:    args.Mode(),
		posts:   []*wp.Post{},
		current: -1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}

	d := classify.FromArgs(args)
	res := exec.Execute(ctx, d)
	if res.Err != nil {
		q.err = res.Err
		q.logger.Warn("loop query failed", "mode", q.mode, "error", res.Err)
	}

	for _, rec := range res.Records {
		if n, ok := rec.(*record.Node); ok {
			if p := adapter.Post(n, env); p != nil {
				q.posts = append(q.posts, p)
			}
		}
	}

	q.foundPosts = res.Found
	if q.foundPosts < len(q.posts) {
		q.foundPosts = len(q.posts)
	}

	switch {
	case q.foundPosts == 0:
		q.maxNumPages = 0
	case d.NoLimit:
		q.maxNumPages = 1
	default:
		size := d.Limit
		if size <= 0 {
			size = exec.PageSize()
		}
		q.maxNumPages = (q.foundPosts + size - 1) / size
	}

	q.classify()

	q.logger.Debug("loop resolved",
		"mode", q.mode,
		"post_count", len(q.posts),
		"found_posts", q.foundPosts,
		"max_num_pages", q.maxNumPages,
		"is_404", q.is404,
	)
	return q
}

// classify sets the conditional flags. Single-record modes that resolve
// nothing are 404s.
func (q *Query) classify() {
	a := q.args
	if q.mode != classify.ModeMulti {
		if len(q.posts) == 0 {
			q.is404 = true
			return
		}
		if a.IsPageRequest() {
			q.isPage = true
		} else {
			q.isSingle = true
		}
		return
	}

	q.isSearch = a.S != ""
	filtered := len(a.PostType) > 0 || a.Author > 0 || a.AuthorName != "" || a.MetaKey != ""
	q.isArchive = filtered && !q.isSearch
	q.isHome = !filtered && !q.isSearch
}

// HavePosts reports whether ThePost can advance. The first time it
// reports false for a non-empty list in the current pass, listeners
// receive loop_end.
func (q *Query) HavePosts() bool {
	if q.current+1 < len(q.posts) {
		return true
	}
	if len(q.posts) > 0 && !q.ended {
		q.ended = true
		q.emit(EventLoopEnd)
	}
	q.inTheLoop = false
	return false
}

// ThePost advances to the next post and reports whether it did. Moving
// from before the first post emits loop_start once per pass; every
// advance emits the_post.
func (q *Query) ThePost() bool {
	if q.current+1 >= len(q.posts) {
		return false
	}
	q.inTheLoop = true
	if q.current == -1 && !q.started {
		q.started = true
		q.emit(EventLoopStart)
	}
	q.current++
	q.post = q.posts[q.current]
	q.emit(EventThePost)
	return true
}

// Reset points the cursor at the first post without re-querying. It does
// nothing for an empty list.
func (q *Query) Reset() {
	if len(q.posts) == 0 {
		return
	}
	q.current = 0
	q.post = q.posts[0]
	q.ended = false
}

// Rewind moves the cursor back before the first post and clears the
// current post.
func (q *Query) Rewind() {
	q.current = -1
	q.post = nil
	q.inTheLoop = false
	q.started = false
	q.ended = false
}

func (q *Query) emit(ev Event) {
	for _, l := range q.listeners {
		l(ev, q)
	}
}

// Posts returns the resolved posts. The slice must not be modified.
func (q *Query) Posts() []*wp.Post { return q.posts }

// Post returns the current post, or nil before the first ThePost.
func (q *Query) Post() *wp.Post { return q.post }

// CurrentPost returns the cursor: -1 before the first post.
func (q *Query) CurrentPost() int { return q.current }

// PostCount is the number of posts on this page.
func (q *Query) PostCount() int { return len(q.posts) }

// FoundPosts is the number of matches across all pages.
func (q *Query) FoundPosts() int { return q.foundPosts }

// MaxNumPages is the page count at the current page size.
func (q *Query) MaxNumPages() int { return q.maxNumPages }

// InTheLoop reports whether iteration is under way.
func (q *Query) InTheLoop() bool { return q.inTheLoop }

// Mode returns the resolution mode chosen at construction.
func (q *Query) Mode() classify.Mode { return q.mode }

// Args returns the arguments the loop was built from.
func (q *Query) Args() classify.Args { return q.args }

func (q *Query) IsSingle() bool  { return q.isSingle }
func (q *Query) IsPage() bool    { return q.isPage }
func (q *Query) IsHome() bool    { return q.isHome }
func (q *Query) IsArchive() bool { return q.isArchive }
func (q *Query) IsSearch() bool  { return q.isSearch }
func (q *Query) Is404() bool     { return q.is404 }

// Conditionals names the conditional tags that hold, in the order single,
// page, home, archive, search, 404. Never nil.
func (q *Query) Conditionals() []string {
	out := []string{}
	for _, c := range []struct {
		name string
		set  bool
	}{
		{"single", q.isSingle},
		{"page", q.isPage},
		{"home", q.isHome},
		{"archive", q.isArchive},
		{"search", q.isSearch},
		{"404", q.is404},
	} {
		if c.set {
			out = append(out, c.name)
		}
	}
	return out
}

// Err reports a content store failure during resolution. The post list is
// then empty.
func (q *Query) Err() error { return q.err }
