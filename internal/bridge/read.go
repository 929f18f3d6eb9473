package bridge

import (
	"context"

	"github.com/roach88/wp4bd/internal/adapter"
	"github.com/roach88/wp4bd/internal/classify"
	"github.com/roach88/wp4bd/internal/queryir"
	"github.com/roach88/wp4bd/internal/record"
	"github.com/roach88/wp4bd/internal/wp"
)

// GetResults returns every matching object in the requested shape. The
// result is never nil.
//
// With wp.OutputAssoc and wp.OutputPositional a plain column list in the
// request narrows each row to those columns. wp.OutputObject always
// returns whole objects.
func (db *DB) GetResults(ctx context.Context, query string, shape wp.OutputShape) []any {
	db.record(MethodGetResults, query)
	d, objs := db.resolve(ctx, query)
	return reshape(objs, d.Columns, shape)
}

// GetRow returns the first matching object in the requested shape, or
// nil when nothing matches.
func (db *DB) GetRow(ctx context.Context, query string, shape wp.OutputShape) any {
	db.record(MethodGetRow, query)
	d, objs := db.resolve(ctx, query)
	if len(objs) == 0 {
		return nil
	}
	return reshape(objs[:1], d.Columns, shape)[0]
}

// GetVar returns a single value: the count for COUNT(*) requests,
// otherwise the first column of the first match. Nil when nothing
// matches.
func (db *DB) GetVar(ctx context.Context, query string) any {
	db.record(MethodGetVar, query)

	d := classify.Classify(query)
	if d.Aggregate == queryir.AggregateCount {
		if d.Kind == queryir.KindOption {
			return len(db.allOptions(ctx, d))
		}
		n, err := db.exec.Count(ctx, d)
		if err != nil {
			db.logger.Warn("count failed", "request_id", db.RequestID, "query", query, "error", err)
			return nil
		}
		return n
	}

	objs := db.objects(ctx, d)
	if len(objs) == 0 {
		return nil
	}
	v, _ := firstColumn(objs[0], d.Columns)
	return v
}

// GetCol returns the first requested column, or the first column when
// none is named, of every match. Never nil.
func (db *DB) GetCol(ctx context.Context, query string) []any {
	db.record(MethodGetCol, query)
	d, objs := db.resolve(ctx, query)

	out := make([]any, 0, len(objs))
	for _, o := range objs {
		if v, ok := firstColumn(o, d.Columns); ok {
			out = append(out, v)
		}
	}
	return out
}

func (db *DB) resolve(ctx context.Context, query string) (queryir.Descriptor, []wp.Object) {
	d := classify.Classify(query)
	return d, db.objects(ctx, d)
}

// objects resolves d to adapted objects.
func (db *DB) objects(ctx context.Context, d queryir.Descriptor) []wp.Object {
	if d.Kind == queryir.KindOption {
		return db.options(ctx, d)
	}

	res := db.exec.Execute(ctx, d)
	if res.Err != nil {
		db.logger.Warn("query failed", "request_id", db.RequestID, "kind", d.Kind, "error", res.Err)
		return nil
	}

	objs := make([]wp.Object, 0, len(res.Records))
	for _, rec := range res.Records {
		if o := db.adapt(rec); o != nil {
			objs = append(objs, o)
		}
	}
	return objs
}

// adapt converts one native record. Records missing a primary key are
// dropped.
func (db *DB) adapt(rec record.Record) wp.Object {
	switch r := rec.(type) {
	case *record.Node:
		if p := adapter.Post(r, db.env); p != nil {
			return p
		}
	case *record.Account:
		if u := adapter.User(r, db.env); u != nil {
			return u
		}
	case *record.Term:
		if t := adapter.Term(r, db.env); t != nil {
			return t
		}
	}
	return nil
}

// options answers options-table requests, honoring the request's
// limit and offset.
func (db *DB) options(ctx context.Context, d queryir.Descriptor) []wp.Object {
	objs := db.allOptions(ctx, d)
	if d.Offset > 0 {
		objs = objs[min(d.Offset, len(objs)):]
	}
	if d.Limit > 0 && len(objs) > d.Limit {
		objs = objs[:d.Limit]
	}
	return objs
}

// allOptions resolves every option the request names. A named option that
// does not exist yields no rows; an unnamed request lists every known
// option.
func (db *DB) allOptions(ctx context.Context, d queryir.Descriptor) []wp.Object {
	names := []string{d.Name}
	if d.Name == "" {
		names = adapter.OptionNames()
	}

	objs := make([]wp.Object, 0, len(names))
	for _, name := range names {
		v := adapter.GetOption(ctx, db.config, db.env, name)
		if missing, ok := v.(bool); ok && !missing && !adapter.KnownOption(name) {
			continue
		}
		objs = append(objs, &wp.Option{OptionName: name, OptionValue: v, Autoload: "yes"})
	}
	return objs
}

func reshape(objs []wp.Object, columns []string, shape wp.OutputShape) []any {
	if len(columns) == 0 || shape == wp.OutputObject {
		return wp.Reshape(objs, shape)
	}

	out := make([]any, 0, len(objs))
	for _, o := range objs {
		row := wp.RowOf(o).Project(columns)
		if shape == wp.OutputPositional {
			out = append(out, row.Values())
		} else {
			out = append(out, row)
		}
	}
	return out
}

func firstColumn(o wp.Object, columns []string) (any, bool) {
	if len(columns) > 0 {
		return o.Column(columns[0])
	}
	cols := o.Columns()
	if len(cols) == 0 {
		return nil, false
	}
	return cols[0].Value, true
}
