package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// The repositories are exercised without a MySQL server by registering a
// scripted database/sql driver.  Queries are matched by substring against
// the scripted result sets; execs succeed with incrementing insert IDs
// unless the statement matches failOn.  The conn records begin/commit/
// rollback so transaction discipline can be asserted.

type stubResultSet struct {
	match string // statements containing this return the set
	cols  []string
	rows  [][]driver.Value
}

type stubConn struct {
	mu        sync.Mutex
	results   []stubResultSet
	failOn    string // non-empty: statements containing this fail
	execLog   []string
	begun     int
	commits   int
	rollbacks int
	nextID    int64
}

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("stub driver: prepared statements not scripted")
}
func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.begun++
	return stubTx{c: c}, nil
}

type stubTx struct{ c *stubConn }

func (t stubTx) Commit() error {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	t.c.commits++
	return nil
}

func (t stubTx) Rollback() error {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	t.c.rollbacks++
	return nil
}

func (c *stubConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.execLog = append(c.execLog, query)
	if c.failOn != "" && strings.Contains(query, c.failOn) {
		return nil, fmt.Errorf("stub driver: forced failure on %q", c.failOn)
	}
	c.nextID++
	return stubResult{id: c.nextID}, nil
}

func (c *stubConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failOn != "" && strings.Contains(query, c.failOn) {
		return nil, fmt.Errorf("stub driver: forced failure on %q", c.failOn)
	}
	for i := range c.results {
		if strings.Contains(query, c.results[i].match) {
			return &stubRows{set: &c.results[i]}, nil
		}
	}
	return &stubRows{set: &stubResultSet{}}, nil
}

type stubResult struct{ id int64 }

func (r stubResult) LastInsertId() (int64, error) { return r.id, nil }
func (r stubResult) RowsAffected() (int64, error) { return 1, nil }

type stubRows struct {
	set *stubResultSet
	i   int
}

func (r *stubRows) Columns() []string { return r.set.cols }
func (r *stubRows) Close() error      { return nil }
func (r *stubRows) Next(dest []driver.Value) error {
	if r.i >= len(r.set.rows) {
		return io.EOF
	}
	copy(dest, r.set.rows[r.i])
	r.i++
	return nil
}

type stubDriver struct{ conn *stubConn }

func (d stubDriver) Open(name string) (driver.Conn, error) { return d.conn, nil }

var stubDriverSeq atomic.Int64

func openStubDB(t *testing.T, conn *stubConn) *sql.DB {
	t.Helper()
	name := fmt.Sprintf("repostub%d", stubDriverSeq.Add(1))
	sql.Register(name, stubDriver{conn: conn})
	db, err := sql.Open(name, "")
	if err != nil {
		t.Fatalf("open stub db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
