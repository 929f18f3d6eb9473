package executor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/wp4bd/internal/adapter"
	"github.com/roach88/wp4bd/internal/entityquery"
	"github.com/roach88/wp4bd/internal/queryir"
	"github.com/roach88/wp4bd/internal/record"
)

// DefaultPageSize is used when neither the descriptor nor the executor
// options set a page size.
const DefaultPageSize = 10

// Backend is the content store contract the executor needs.
type Backend interface {
	LoadRecord(ctx context.Context, kind record.Kind, id int64) (record.Record, error)
	LoadRecords(ctx context.Context, kind record.Kind, ids []int64) (map[int64]record.Record, error)
	Execute(ctx context.Context, q *entityquery.Query) (entityquery.Matches, error)
	Count(ctx context.Context, q *entityquery.Query) (int, error)
	FieldColumns(ctx context.Context, field string) ([]string, error)
	LookupAlias(ctx context.Context, alias string) (string, bool, error)
}

// Result is the outcome of one descriptor.
type Result struct {
	// Records are in query order. Never nil.
	Records []record.Record

	// Found is the number of matches ignoring the range.
	Found int

	// Err is set when the store could not answer; Records is then empty.
	Err error
}

// Executor resolves descriptors. It holds no per-request state and is
// safe for concurrent use when the backend is.
type Executor struct {
	backend  Backend
	pageSize int
	logger   *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithPageSize sets the default page size for descriptors without a limit.
// Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.pageSize = n
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Executor over b. A nil backend is allowed; every Execute
// then reports ErrNoBackend.
func New(b Backend, opts ...Option) *Executor {
	e := &Executor{
		backend:  b,
		pageSize: DefaultPageSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PageSize returns the default page size.
func (e *Executor) PageSize() int {
	if e == nil {
		return DefaultPageSize
	}
	return e.pageSize
}

// Execute resolves d to native records.
func (e *Executor) Execute(ctx context.Context, d queryir.Descriptor) Result {
	if e == nil || e.backend == nil {
		return failed(ErrNoBackend)
	}

	if v := queryir.Validate(d); !v.Valid {
		e.logger.Debug("descriptor warnings", "kind", d.Kind, "warnings", v.Warnings)
	}

	kind, ok := recordKind(d.Kind)
	if !ok {
		e.logger.Debug("descriptor kind has no records", "kind", d.Kind)
		return Result{Records: []record.Record{}}
	}

	var res Result
	switch {
	case d.ID > 0:
		res = e.executeID(ctx, kind, d)
	case d.Slug != "":
		res = e.executeSlug(ctx, kind, d)
	default:
		res = e.executeMulti(ctx, kind, d)
	}

	if res.Err != nil {
		e.logger.Warn("query failed", "kind", d.Kind, "error", res.Err)
	}
	return res
}

// Count answers a COUNT(*) descriptor without loading records.
func (e *Executor) Count(ctx context.Context, d queryir.Descriptor) (int, error) {
	if e == nil || e.backend == nil {
		return 0, ErrNoBackend
	}
	kind, ok := recordKind(d.Kind)
	if !ok {
		return 0, nil
	}

	if d.Single() {
		res := e.Execute(ctx, d)
		return len(res.Records), res.Err
	}

	q, err := e.buildQuery(ctx, kind, d)
	if err != nil {
		return 0, err
	}
	n, err := e.backend.Count(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

func (e *Executor) executeID(ctx context.Context, kind record.Kind, d queryir.Descriptor) Result {
	rec, err := e.backend.LoadRecord(ctx, kind, d.ID)
	if err != nil {
		return failed(fmt.Errorf("load %s %d: %w", kind, d.ID, err))
	}
	return single(visible(rec, d))
}

func (e *Executor) executeSlug(ctx context.Context, kind record.Kind, d queryir.Descriptor) Result {
	if kind == record.KindNode {
		source, ok, err := e.backend.LookupAlias(ctx, d.Slug)
		if err != nil {
			return failed(fmt.Errorf("lookup alias %q: %w", d.Slug, err))
		}
		if ok {
			if nid, ok := record.ParseNodeSource(source); ok {
				rec, err := e.backend.LoadRecord(ctx, kind, nid)
				if err != nil {
					return failed(fmt.Errorf("load node %d: %w", nid, err))
				}
				if rec = visible(rec, d); rec != nil {
					return single(rec)
				}
			}
		}
	}

	q, err := e.slugQuery(kind, d)
	if err != nil {
		return failed(err)
	}
	res := e.run(ctx, kind, q.Range(0, 1), false)
	if res.Err != nil {
		return res
	}
	if len(res.Records) == 0 {
		return res
	}
	return single(res.Records[0])
}

// slugQuery builds the fallback lookup for a slug that has no alias.
func (e *Executor) slugQuery(kind record.Kind, d queryir.Descriptor) (*entityquery.Query, error) {
	q := entityquery.New(kind)
	switch kind {
	case record.KindNode:
		title := norm.NFC.String(strings.ReplaceAll(d.Slug, "-", " "))
		q.Property("title", entityquery.EscapeLike(title), entityquery.OpLike).
			Property("status", record.NodePublished, entityquery.OpEq)
		if types := d.Types(); len(types) > 0 {
			q.Bundle(bundlesFor(types)...)
		}
	case record.KindTerm:
		q.Property("machine_name", d.Slug, entityquery.OpEq)
		if types := d.Types(); len(types) > 0 {
			q.Bundle(vocabulariesFor(types)...)
		}
	case record.KindUser:
		q.Property("name", d.Slug, entityquery.OpEq)
	default:
		return nil, entityquery.NewUnsupported("slug lookup on %q", kind)
	}
	return q.OrderBy(idField(kind), false), nil
}

func (e *Executor) executeMulti(ctx context.Context, kind record.Kind, d queryir.Descriptor) Result {
	q, err := e.buildQuery(ctx, kind, d)
	if err != nil {
		return failed(err)
	}

	if !d.NoLimit {
		size := d.Limit
		if size <= 0 {
			size = e.pageSize
		}
		offset := d.Offset
		if d.Page > 1 {
			offset = (d.Page - 1) * size
		}
		q.Range(offset, size)
	}

	return e.run(ctx, kind, q, true)
}

// run executes q, optionally counts all matches, then bulk-loads records
// in match order.
func (e *Executor) run(ctx context.Context, kind record.Kind, q *entityquery.Query, count bool) Result {
	matches, err := e.backend.Execute(ctx, q)
	if err != nil {
		return failed(fmt.Errorf("query %s: %w", kind, err))
	}
	ids := matches.IDs(kind)

	found := len(ids)
	if count && (q.Ranged || q.Offset > 0) {
		found, err = e.backend.Count(ctx, q)
		if err != nil {
			return failed(fmt.Errorf("count %s: %w", kind, err))
		}
	}

	if len(ids) == 0 {
		return Result{Records: []record.Record{}, Found: found}
	}

	loaded, err := e.backend.LoadRecords(ctx, kind, ids)
	if err != nil {
		return failed(fmt.Errorf("load %s records: %w", kind, err))
	}

	records := make([]record.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := loaded[id]; ok && rec != nil {
			records = append(records, rec)
		}
	}
	return Result{Records: records, Found: found}
}

// buildQuery translates predicates and ordering, without range.
func (e *Executor) buildQuery(ctx context.Context, kind record.Kind, d queryir.Descriptor) (*entityquery.Query, error) {
	q := entityquery.New(kind)

	if types := d.Types(); types != nil {
		switch kind {
		case record.KindNode:
			q.Bundle(bundlesFor(types)...)
		case record.KindTerm:
			q.Bundle(vocabulariesFor(types)...)
		}
	}

	if kind == record.KindNode {
		switch d.Status() {
		case queryir.StatusAny:
		case queryir.StatusDraft:
			q.Property("status", 0, entityquery.OpEq)
		default:
			q.Property("status", record.NodePublished, entityquery.OpEq)
		}
	}

	for _, p := range d.Predicates {
		switch pred := p.(type) {
		case queryir.AuthorIs:
			if kind != record.KindNode {
				continue
			}
			uid, err := e.resolveAuthor(ctx, pred)
			if err != nil {
				return nil, err
			}
			q.Property("uid", uid, entityquery.OpEq)
		case queryir.Search:
			term := norm.NFC.String(pred.Term)
			q.Property(titleField(kind), entityquery.Contains(term), entityquery.OpLike)
		case queryir.FieldEquals:
			if cond, ok := e.fieldCondition(ctx, pred); ok {
				q.Field(cond)
			}
		}
	}

	if field, ok := orderField(kind, d.Order.Field); ok {
		q.OrderBy(field, d.Order.Desc)
	}
	return q, nil
}

// resolveAuthor returns the uid for an author predicate. An unknown name
// resolves to -1 so the query matches nothing.
func (e *Executor) resolveAuthor(ctx context.Context, a queryir.AuthorIs) (int64, error) {
	if a.ID > 0 || a.Name == "" {
		return a.ID, nil
	}
	q := entityquery.New(record.KindUser).
		Property("name", a.Name, entityquery.OpEq).
		Range(0, 1)
	matches, err := e.backend.Execute(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("resolve author %q: %w", a.Name, err)
	}
	ids := matches.IDs(record.KindUser)
	if len(ids) == 0 {
		e.logger.Debug("author not found", "name", a.Name)
		return -1, nil
	}
	return ids[0], nil
}

// fieldCondition builds a custom field condition. Lookup failures are
// logged and the condition dropped, widening the result.
func (e *Executor) fieldCondition(ctx context.Context, f queryir.FieldEquals) (entityquery.FieldCondition, bool) {
	columns, err := e.backend.FieldColumns(ctx, f.Field)
	if err != nil {
		e.logger.Warn("field condition skipped", "field", f.Field, "error", err)
		return entityquery.FieldCondition{}, false
	}
	column := columns[0]
	if slices.Contains(columns, "value") {
		column = "value"
	}
	return entityquery.FieldCondition{Field: f.Field, Column: column, Value: f.Value}, true
}

func failed(err error) Result {
	return Result{Records: []record.Record{}, Err: err}
}

func single(rec record.Record) Result {
	if rec == nil {
		return Result{Records: []record.Record{}}
	}
	return Result{Records: []record.Record{rec}, Found: 1}
}

// visible filters a single loaded record: nodes must be published and,
// when the descriptor names types, of a matching bundle.
func visible(rec record.Record, d queryir.Descriptor) record.Record {
	if rec == nil || rec.Key() == 0 {
		return nil
	}
	n, ok := rec.(*record.Node)
	if !ok {
		return rec
	}
	if !n.Published() {
		return nil
	}
	if types := d.Types(); len(types) > 0 && !slices.Contains(bundlesFor(types), n.Type) {
		return nil
	}
	return n
}

func recordKind(k queryir.EntityKind) (record.Kind, bool) {
	switch k {
	case queryir.KindPost:
		return record.KindNode, true
	case queryir.KindUser:
		return record.KindUser, true
	case queryir.KindTerm:
		return record.KindTerm, true
	default:
		return "", false
	}
}

func bundlesFor(postTypes []string) []string {
	var out []string
	for _, t := range postTypes {
		for _, b := range adapter.Bundles(t) {
			if !slices.Contains(out, b) {
				out = append(out, b)
			}
		}
	}
	return out
}

func vocabulariesFor(taxonomies []string) []string {
	var out []string
	for _, t := range taxonomies {
		for _, v := range adapter.Vocabularies(t) {
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	return out
}

func idField(kind record.Kind) string {
	switch kind {
	case record.KindUser:
		return "uid"
	case record.KindTerm:
		return "tid"
	default:
		return "nid"
	}
}

func titleField(kind record.Kind) string {
	if kind == record.KindNode {
		return "title"
	}
	return "name"
}

// orderField maps a descriptor ordering field to a store property.
func orderField(kind record.Kind, field string) (string, bool) {
	switch field {
	case queryir.OrderID:
		return idField(kind), true
	case queryir.OrderTitle:
		return titleField(kind), true
	}

	switch kind {
	case record.KindNode:
		switch field {
		case queryir.OrderCreated:
			return "created", true
		case queryir.OrderChanged:
			return "changed", true
		case queryir.OrderAuthor:
			return "uid", true
		}
	case record.KindUser:
		if field == queryir.OrderCreated {
			return "created", true
		}
	}
	return "", false
}
