// Package dbtest provides an in-memory db.Querier for repository tests.
// Results are matched by SQL substring in registration order.
package dbtest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNoResult is returned when no registered result matches a statement.
var ErrNoResult = errors.New("dbtest: no result registered for statement")

// Result is the canned answer for statements containing Match.
type Result struct {
	Err   error
	Match string
	Tag   string
	Rows  [][]any
}

// Call records one statement sent to the Querier.
type Call struct {
	SQL  string
	Args []any
}

// Querier answers Exec, Query and QueryRow from canned results.
type Querier struct {
	results []Result
	calls   []Call
	mu      sync.Mutex
}

// New creates a Querier with the given results.
func New(results ...Result) *Querier {
	return &Querier{results: results}
}

// Calls returns every statement received so far.
func (q *Querier) Calls() []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Call(nil), q.calls...)
}

func (q *Querier) match(sql string, args []any) (Result, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls = append(q.calls, Call{SQL: sql, Args: args})
	for _, r := range q.results {
		if strings.Contains(sql, r.Match) {
			return r, nil
		}
	}
	return Result{}, fmt.Errorf("%w: %s", ErrNoResult, sql)
}

// Exec implements db.Querier.
func (q *Querier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r, err := q.match(sql, args)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	if r.Err != nil {
		return pgconn.CommandTag{}, r.Err
	}
	return pgconn.NewCommandTag(r.Tag), nil
}

// Query implements db.Querier.
func (q *Querier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r, err := q.match(sql, args)
	if err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return &rows{data: r.Rows, pos: -1}, nil
}

// QueryRow implements db.Querier.
func (q *Querier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		return row{err: err}
	}
	r := rs.(*rows)
	if len(r.data) == 0 {
		return row{err: pgx.ErrNoRows}
	}
	return row{values: r.data[0]}
}

type row struct {
	err    error
	values []any
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

type rows struct {
	data [][]any
	pos  int
}

func (r *rows) Close()                                       {}
func (r *rows) Err() error                                   { return nil }
func (r *rows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *rows) RawValues() [][]byte                          { return nil }
func (r *rows) Conn() *pgx.Conn                              { return nil }

func (r *rows) Next() bool {
	r.pos++
	return r.pos < len(r.data)
}

func (r *rows) Scan(dest ...any) error {
	if r.pos < 0 || r.pos >= len(r.data) {
		return errors.New("dbtest: scan outside of row")
	}
	return assign(r.data[r.pos], dest)
}

func (r *rows) Values() ([]any, error) {
	if r.pos < 0 || r.pos >= len(r.data) {
		return nil, errors.New("dbtest: values outside of row")
	}
	return r.data[r.pos], nil
}

// assign copies values into scan destinations. nil leaves the zero value.
func assign(values, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("dbtest: %d values for %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		target := reflect.ValueOf(dest[i])
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("dbtest: destination %d is not a pointer", i)
		}
		elem := target.Elem()
		if v == nil {
			elem.SetZero()
			continue
		}
		val := reflect.ValueOf(v)
		switch {
		case val.Type().AssignableTo(elem.Type()):
			elem.Set(val)
		case val.Type().ConvertibleTo(elem.Type()):
			elem.Set(val.Convert(elem.Type()))
		default:
			return fmt.Errorf("dbtest: cannot scan %T into %s", v, elem.Type())
		}
	}
	return nil
}
