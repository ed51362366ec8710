package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	perr "chatter/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dst ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := range dst {
		switch d := dst[i].(type) {
		case *bool:
			*d = r.vals[i].(bool)
		case *int:
			*d = r.vals[i].(int)
		case *string:
			*d = r.vals[i].(string)
		}
	}
	return nil
}

type fakeRows struct {
	data [][]any
	i    int
	err  error
}

func (r *fakeRows) Next() bool            { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Scan(dst ...any) error { return fakeRow{vals: r.data[r.i-1]}.Scan(dst...) }
func (r *fakeRows) Err() error            { return r.err }
func (r *fakeRows) Close()                {}
func (r *fakeRows) Columns() []string     { return nil }

type fakeDB struct {
	row     fakeRow
	rows    *fakeRows
	pingErr error
	closed  bool
}

func (f *fakeDB) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (f *fakeDB) Query(context.Context, string, ...any) (Rows, error)      { return f.rows, nil }
func (f *fakeDB) QueryRow(context.Context, string, ...any) Row             { return f.row }
func (f *fakeDB) Tx(ctx context.Context, fn func(RowQuerier) error) error  { return fn(f) }
func (f *fakeDB) Ping(context.Context) error                               { return f.pingErr }
func (f *fakeDB) Close() error                                             { f.closed = true; return nil }

type fakeCH struct {
	pingErr  error
	closeErr error
}

func (f *fakeCH) Insert(context.Context, string, [][]any) error     { return nil }
func (f *fakeCH) Exec(context.Context, string, ...any) error        { return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (Rows, error) { return &fakeRows{}, nil }
func (f *fakeCH) Ping(context.Context) error                        { return f.pingErr }
func (f *fakeCH) Close() error                                      { return f.closeErr }

func TestGuardJoinsFailures(t *testing.T) {
	t.Parallel()
	s := &Store{PG: &fakeDB{pingErr: errors.New("pg down")}, CH: &fakeCH{pingErr: errors.New("ch down")}}
	err := s.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "pg: pg down") || !strings.Contains(err.Error(), "ch: ch down") {
		t.Fatalf("Guard = %v", err)
	}
	if err := (&Store{PG: &fakeDB{}}).Guard(context.Background()); err != nil {
		t.Fatalf("healthy Guard = %v", err)
	}
	var nilStore *Store
	if nilStore.Guard(context.Background()) == nil {
		t.Fatal("nil store should fail Guard")
	}
}

func TestCloseClosesBackends(t *testing.T) {
	t.Parallel()
	db := &fakeDB{}
	s := &Store{PG: db, CH: &fakeCH{closeErr: errors.New("ch close")}}
	err := s.Close(context.Background())
	if !db.closed {
		t.Fatal("pg not closed")
	}
	if err == nil || !strings.Contains(err.Error(), "ch close") {
		t.Fatalf("Close = %v", err)
	}
}

func TestScalarAndClaimed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	n, err := Scalar[int](ctx, &fakeDB{row: fakeRow{vals: []any{7}}}, "SELECT 7")
	if err != nil || n != 7 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}
	if _, err := Scalar[int](ctx, &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}, "SELECT"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("Scalar no rows = %v", err)
	}

	ok, err := Claimed(ctx, &fakeDB{row: fakeRow{vals: []any{true}}}, "UPDATE ... RETURNING true")
	if err != nil || !ok {
		t.Fatalf("Claimed = %v, %v", ok, err)
	}
	ok, err = Claimed(ctx, &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}, "UPDATE")
	if err != nil || ok {
		t.Fatalf("Claimed lost = %v, %v", ok, err)
	}
}

func TestMany(t *testing.T) {
	t.Parallel()
	db := &fakeDB{rows: &fakeRows{data: [][]any{{"a.com"}, {"b.com"}}}}
	got, err := Many(context.Background(), db, func(r Row) (string, error) {
		var s string
		err := r.Scan(&s)
		return s, err
	}, "SELECT domain FROM domains")
	if err != nil || len(got) != 2 || got[1] != "b.com" {
		t.Fatalf("Many = %v, %v", got, err)
	}

	db = &fakeDB{rows: &fakeRows{err: errors.New("cursor")}}
	if _, err := Many(context.Background(), db, func(Row) (string, error) { return "", nil }, "SELECT"); err == nil {
		t.Fatal("expected rows error")
	}
}
