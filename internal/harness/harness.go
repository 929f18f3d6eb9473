package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/wp4bd/internal/adapter"
	"github.com/roach88/wp4bd/internal/bridge"
	"github.com/roach88/wp4bd/internal/classify"
	"github.com/roach88/wp4bd/internal/config"
	"github.com/roach88/wp4bd/internal/executor"
	"github.com/roach88/wp4bd/internal/fixture"
	"github.com/roach88/wp4bd/internal/loop"
	"github.com/roach88/wp4bd/internal/store"
	"github.com/roach88/wp4bd/internal/wp"
)

// DefaultRequestID is the facade request ID when a scenario sets none.
const DefaultRequestID = "test-request-default"

// Harness executes one scenario against one facade.
type Harness struct {
	store  *store.Store
	exec   *executor.Executor
	db     *bridge.DB
	env    adapter.Env
	logger *slog.Logger
}

type fixedID string

func (id fixedID) Generate() string { return string(id) }

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database and seed the fixture
// 2. Build the facade from the scenario environment
// 3. Execute steps, validating expect clauses
// 4. Evaluate log assertions
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	fx, err := fixture.Load(scenario.Fixture)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}

	cfg, err := scenarioConfig(scenario.Env)
	if err != nil {
		return nil, fmt.Errorf("invalid env: %w", err)
	}
	env, err := cfg.Env()
	if err != nil {
		return nil, fmt.Errorf("invalid env: %w", err)
	}

	requestID := scenario.RequestID
	if requestID == "" {
		requestID = DefaultRequestID
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	st, err := store.Open(":memory:", store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if _, err := fx.Apply(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to seed fixture: %w", err)
	}

	exec := executor.New(st, executor.WithPageSize(cfg.PostsPerPage), executor.WithLogger(logger))
	h := &Harness{
		store: st,
		exec:  exec,
		db: bridge.New(exec, st, env,
			bridge.WithPrefix(cfg.TablePrefix),
			bridge.WithIDGenerator(fixedID(requestID)),
			bridge.WithLogger(logger),
		),
		env:    env,
		logger: logger,
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		ev, err := h.execute(ctx, i, step)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		result.AddTrace(ev)
		for _, msg := range checkExpect(i, step, ev.Result) {
			result.AddError(msg)
		}
	}

	result.Log = h.db.QueryLog()
	for _, msg := range EvaluateAssertions(result.Log, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// scenarioConfig applies scenario overrides on top of the configuration
// defaults, validating them the same way a config file is.
func scenarioConfig(spec *EnvSpec) (*config.Config, error) {
	cfg := config.Default()
	if spec == nil {
		return cfg, nil
	}
	if spec.BaseURL != "" {
		cfg.BaseURL = spec.BaseURL
	}
	if spec.Language != "" {
		cfg.Language = spec.Language
	}
	if spec.Timezone != "" {
		cfg.Timezone = spec.Timezone
	}
	if spec.PostsPerPage < 0 {
		return nil, fmt.Errorf("posts_per_page must be positive")
	}
	if spec.PostsPerPage > 0 {
		cfg.PostsPerPage = spec.PostsPerPage
	}
	if spec.TablePrefix != "" {
		cfg.TablePrefix = spec.TablePrefix
	}
	if spec.Theme != "" {
		cfg.Theme = spec.Theme
	}
	return cfg, nil
}

// execute runs one step and returns its trace event.
func (h *Harness) execute(ctx context.Context, i int, step Step) (TraceEvent, error) {
	ev := TraceEvent{Step: i, Call: step.Call, Query: step.Query, Args: step.Args}
	if len(step.Params) > 0 {
		ev.Query = bridge.Prepare(step.Query, step.Params...)
	}

	shape, err := wp.ParseOutputShape(step.Shape)
	if err != nil {
		return ev, err
	}

	switch step.Call {
	case CallGetResults:
		ev.Result = h.db.GetResults(ctx, ev.Query, shape)
	case CallGetRow:
		ev.Result = h.db.GetRow(ctx, ev.Query, shape)
	case CallGetVar:
		ev.Result = h.db.GetVar(ctx, ev.Query)
	case CallGetCol:
		ev.Result = h.db.GetCol(ctx, ev.Query)
	case CallQuery:
		ev.Result = h.db.Query(ctx, ev.Query)
	case CallInsert:
		ev.Result = h.db.Insert(ctx, h.table(step.Table), step.Data)
	case CallUpdate:
		ev.Result = h.db.Update(ctx, h.table(step.Table), step.Data, step.Where)
	case CallDelete:
		ev.Result = h.db.Delete(ctx, h.table(step.Table), step.Where)
	case CallOption:
		ev.Args = step.Option
		ev.Result = adapter.GetOption(ctx, h.store, h.env, step.Option)
	case CallLoop:
		summary, err := h.runLoop(ctx, step.Args)
		if err != nil {
			return ev, err
		}
		ev.Result = summary
	default:
		return ev, fmt.Errorf("unknown call %q", step.Call)
	}

	h.logger.Info("step completed", "step", i, "call", step.Call, "query", ev.Query)
	return ev, nil
}

// table maps a bare table name such as "posts" to its prefixed form.
func (h *Harness) table(name string) string {
	if _, ok := knownTables[name]; ok {
		return h.db.Prefix + name
	}
	return name
}

var knownTables = map[string]struct{}{
	"posts": {}, "postmeta": {}, "users": {}, "usermeta": {}, "comments": {},
	"options": {}, "terms": {}, "term_taxonomy": {}, "term_relationships": {},
}

// runLoop iterates a loop to the end, the way a template does.
func (h *Harness) runLoop(ctx context.Context, raw string) (*LoopSummary, error) {
	args, err := classify.ParseArgs(raw)
	if err != nil {
		return nil, fmt.Errorf("loop args: %w", err)
	}

	s := &LoopSummary{IDs: []int64{}, Flags: []string{}, Events: []loop.Event{}}
	q := loop.New(ctx, h.exec, h.env, args,
		loop.WithLogger(h.logger),
		loop.WithListener(func(ev loop.Event, _ *loop.Query) {
			s.Events = append(s.Events, ev)
		}),
	)
	if err := q.Err(); err != nil {
		return nil, fmt.Errorf("loop: %w", err)
	}

	for q.HavePosts() {
		q.ThePost()
		s.IDs = append(s.IDs, q.Post().ID)
		s.posts = append(s.posts, q.Post())
	}

	s.Mode = q.Mode().String()
	s.FoundPosts = q.FoundPosts()
	s.MaxNumPages = q.MaxNumPages()
	s.Flags = q.Conditionals()
	return s, nil
}
