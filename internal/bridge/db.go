package bridge

import (
	"log/slog"
	"sync"

	"github.com/roach88/wp4bd/internal/adapter"
	"github.com/roach88/wp4bd/internal/executor"
)

// DefaultPrefix is the table prefix when none is configured.
const DefaultPrefix = "wp_"

// DB is the read-only database facade.
//
// The table name fields are set once by New and must be treated as
// constants by callers.
type DB struct {
	Prefix            string
	Posts             string
	Postmeta          string
	Users             string
	Usermeta          string
	Comments          string
	Options           string
	Terms             string
	TermTaxonomy      string
	TermRelationships string

	// RequestID correlates this facade's log records.
	RequestID string

	exec   *executor.Executor
	config adapter.ConfigReader
	env    adapter.Env
	clock  Clock
	logger *slog.Logger

	mu  sync.Mutex
	log []LogEntry
}

// Option configures a DB.
type Option func(*settings)

type settings struct {
	prefix string
	clock  Clock
	ids    IDGenerator
	logger *slog.Logger
}

// WithPrefix sets the table prefix. Default: "wp_".
func WithPrefix(prefix string) Option {
	return func(s *settings) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithClock shares a sequence source, e.g. across facades of one test.
func WithClock(c Clock) Option {
	return func(s *settings) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIDGenerator sets how the request ID is produced.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *settings) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a facade. exec and config may be nil; requests then come
// back empty and options fall back to their defaults.
func New(exec *executor.Executor, config adapter.ConfigReader, env adapter.Env, opts ...Option) *DB {
	s := settings{
		prefix: DefaultPrefix,
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.clock == nil {
		s.clock = &counter{}
	}

	p := s.prefix
	return &DB{
		Prefix:            p,
		Posts:             p + "posts",
		Postmeta:          p + "postmeta",
		Users:             p + "users",
		Usermeta:          p + "usermeta",
		Comments:          p + "comments",
		Options:           p + "options",
		Terms:             p + "terms",
		TermTaxonomy:      p + "term_taxonomy",
		TermRelationships: p + "term_relationships",
		RequestID:         s.ids.Generate(),
		exec:              exec,
		config:            config,
		env:               env,
		clock:             s.clock,
		logger:            s.logger,
		log:               []LogEntry{},
	}
}

// QueryLog returns a snapshot of the log in call order.
func (db *DB) QueryLog() []LogEntry {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]LogEntry, len(db.log))
	copy(out, db.log)
	return out
}

// record appends one log entry.
func (db *DB) record(method, query string) {
	db.mu.Lock()
	entry := LogEntry{Method: method, Query: query, Seq: db.clock.Next()}
	db.log = append(db.log, entry)
	db.mu.Unlock()

	db.logger.Debug("db call",
		"request_id", db.RequestID,
		"method", method,
		"sequence", entry.Seq,
		"query", query,
	)
}
