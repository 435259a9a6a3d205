package catalog

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type executedQuery struct {
	Query  string
	Params map[string]interface{}
}

type MockGraphDriver struct {
	Executed   []executedQuery
	MockResult neo4j.EagerResult
	Err        error
	Indexed    bool
}

func (m *MockGraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Executed = append(m.Executed, executedQuery{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockGraphDriver) BuildIndices(ctx context.Context) error {
	m.Indexed = true
	return nil
}

func (m *MockGraphDriver) Close(ctx context.Context) error {
	return nil
}

func (m *MockGraphDriver) Last() executedQuery {
	if len(m.Executed) == 0 {
		return executedQuery{}
	}
	return m.Executed[len(m.Executed)-1]
}

// MockSQL answers every Query with the same rows.
type MockSQL struct {
	Rows    [][]any
	Err     error
	RowsErr error
	PingErr error

	LastSQL  string
	LastArgs []any
}

func (m *MockSQL) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.LastSQL = sql
	m.LastArgs = args
	if m.Err != nil {
		return nil, m.Err
	}
	return &fakeRows{rows: m.Rows, err: m.RowsErr, pos: -1}, nil
}

func (m *MockSQL) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.LastSQL = sql
	m.LastArgs = args
	return &fakeRows{rows: m.Rows, err: m.Err, pos: 0}
}

func (m *MockSQL) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.LastSQL = sql
	m.LastArgs = args
	return pgconn.CommandTag{}, m.Err
}

func (m *MockSQL) Ping(ctx context.Context) error {
	return m.PingErr
}

type fakeRows struct {
	rows [][]any
	err  error
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.rows)
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.pos], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.pos >= len(r.rows) {
		return pgx.ErrNoRows
	}
	row := r.rows[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}
